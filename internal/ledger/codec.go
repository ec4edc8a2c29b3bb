package ledger

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"binder/internal/catalog"
)

// envelope is the wire/storage shape of one event. One flat object per
// event keeps the sync payload diffable; kind decides which fields are
// meaningful.
type envelope struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	EntryID   string    `json:"entry_id"`
	At        time.Time `json:"at"`
	Quantity  int       `json:"quantity,omitempty"`
	Location  string    `json:"location,omitempty"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Condition string    `json:"condition,omitempty"`
	Language  string    `json:"language,omitempty"`
	Note      string    `json:"note,omitempty"`
	Foil      bool      `json:"foil,omitempty"`
}

// EncodeEvent serializes one event for storage or a sync push.
func EncodeEvent(ev Event) ([]byte, error) {
	if ev == nil {
		return nil, ErrInvalidEvent
	}
	return json.Marshal(toEnvelope(ev))
}

// DecodeEvent deserializes one stored or pulled event.
func DecodeEvent(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode ledger event: %w", err)
	}
	return fromEnvelope(env)
}

// EncodeBatch serializes events in order for a sync push.
func EncodeBatch(events []Event) ([]byte, error) {
	envelopes := make([]envelope, 0, len(events))
	for _, ev := range events {
		if ev == nil {
			return nil, ErrInvalidEvent
		}
		envelopes = append(envelopes, toEnvelope(ev))
	}
	return json.Marshal(envelopes)
}

// DecodeBatch deserializes a pulled sync batch, preserving order.
func DecodeBatch(data []byte) ([]Event, error) {
	var envelopes []envelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return nil, fmt.Errorf("decode ledger batch: %w", err)
	}
	events := make([]Event, 0, len(envelopes))
	for _, env := range envelopes {
		ev, err := fromEnvelope(env)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func toEnvelope(ev Event) envelope {
	env := envelope{
		ID:      string(ev.EventID()),
		Kind:    ev.Kind(),
		EntryID: string(ev.EntryID()),
		At:      ev.Time(),
	}
	switch e := ev.(type) {
	case Add:
		env.Quantity = e.Quantity
		env.Condition = e.Condition
		env.Language = e.Language
		env.Foil = e.Foil
		env.Location = e.Location
	case Remove:
		env.Quantity = e.Quantity
		env.Location = e.Location
	case Move:
		env.Quantity = e.Quantity
		env.From = e.From
		env.To = e.To
	case SetCondition:
		env.Condition = e.Condition
	case SetLanguage:
		env.Language = e.Language
	case SetNote:
		env.Note = e.Note
	}
	return env
}

func fromEnvelope(env envelope) (Event, error) {
	if env.ID == "" || env.EntryID == "" {
		return nil, ErrInvalidEvent
	}
	meta := Meta{ID: EventID(env.ID), Entry: catalog.EntryID(env.EntryID), At: env.At}

	switch env.Kind {
	case KindAdd:
		return Add{Meta: meta, Quantity: env.Quantity, Condition: env.Condition, Language: env.Language, Foil: env.Foil, Location: env.Location}, nil
	case KindRemove:
		return Remove{Meta: meta, Quantity: env.Quantity, Location: env.Location}, nil
	case KindMove:
		return Move{Meta: meta, Quantity: env.Quantity, From: env.From, To: env.To}, nil
	case KindSetCondition:
		return SetCondition{Meta: meta, Condition: env.Condition}, nil
	case KindSetLanguage:
		return SetLanguage{Meta: meta, Language: env.Language}, nil
	case KindSetNote:
		return SetNote{Meta: meta, Note: env.Note}, nil
	default:
		return nil, fmt.Errorf("decode ledger event %s: unknown kind %q", env.ID, env.Kind)
	}
}
