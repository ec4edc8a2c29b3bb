package ledger

import (
	"time"

	"github.com/google/uuid"

	"binder/internal/catalog"
)

// EventID uniquely identifies one ledger event across all devices.
type EventID string

// NewEventID returns a fresh unique event identifier.
func NewEventID() EventID {
	return EventID(uuid.NewString())
}

// Kind discriminates the event variants on the wire and in storage.
type Kind string

const (
	KindAdd          Kind = "add"
	KindRemove       Kind = "remove"
	KindMove         Kind = "move"
	KindSetCondition Kind = "set_condition"
	KindSetLanguage  Kind = "set_language"
	KindSetNote      Kind = "set_note"
)

// Event is the closed interface over all ledger event variants. Only the
// types in this package implement it.
type Event interface {
	EventID() EventID
	EntryID() catalog.EntryID
	Time() time.Time
	Kind() Kind

	sealed()
}

// Meta carries the fields every event shares. Embedded by each variant.
type Meta struct {
	ID    EventID
	Entry catalog.EntryID
	At    time.Time
}

// NewMeta builds event metadata with a fresh id.
func NewMeta(entry catalog.EntryID, at time.Time) Meta {
	return Meta{ID: NewEventID(), Entry: entry, At: at.UTC()}
}

func (m Meta) EventID() EventID         { return m.ID }
func (m Meta) EntryID() catalog.EntryID { return m.Entry }
func (m Meta) Time() time.Time          { return m.At }
func (m Meta) sealed()                  {}

// Add records acquiring copies of a printing.
type Add struct {
	Meta
	Quantity  int
	Condition string
	Language  string
	Foil      bool
	Location  string
}

func (Add) Kind() Kind { return KindAdd }

// Remove records giving up copies, optionally from a named location.
type Remove struct {
	Meta
	Quantity int
	Location string
}

func (Remove) Kind() Kind { return KindRemove }

// Move shifts copies between named locations without changing the total.
type Move struct {
	Meta
	Quantity int
	From     string
	To       string
}

func (Move) Kind() Kind { return KindMove }

// SetCondition records the most recently observed condition.
type SetCondition struct {
	Meta
	Condition string
}

func (SetCondition) Kind() Kind { return KindSetCondition }

// SetLanguage records the most recently observed language.
type SetLanguage struct {
	Meta
	Language string
}

func (SetLanguage) Kind() Kind { return KindSetLanguage }

// SetNote attaches free-form text to a printing's holdings.
type SetNote struct {
	Meta
	Note string
}

func (SetNote) Kind() Kind { return KindSetNote }
