package ledger

import (
	"errors"
	"sort"
	"sync"

	"binder/internal/catalog"
)

// ErrInvalidEvent rejects events missing an id or entry reference.
var ErrInvalidEvent = errors.New("ledger: event missing id or entry reference")

// Log is an append-only, id-deduplicated event log. Multiple sessions may
// append concurrently; events are immutable so a mutex around the slice is
// all the coordination needed.
type Log struct {
	mu     sync.Mutex
	events []Event
	seen   map[EventID]struct{}
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{seen: make(map[EventID]struct{})}
}

// Append records an event. An id already present is a silent no-op, not
// an error: retried sync pushes must not double-count.
func (l *Log) Append(ev Event) error {
	if ev == nil || ev.EventID() == "" || ev.EntryID() == "" {
		return ErrInvalidEvent
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, dup := l.seen[ev.EventID()]; dup {
		return nil
	}
	l.seen[ev.EventID()] = struct{}{}
	l.events = append(l.events, ev)
	return nil
}

// Merge appends a batch pulled from a remote log, skipping already-seen
// ids, and reports how many events were actually added.
func (l *Log) Merge(batch []Event) (int, error) {
	added := 0
	for _, ev := range batch {
		if ev == nil || ev.EventID() == "" || ev.EntryID() == "" {
			return added, ErrInvalidEvent
		}
		l.mu.Lock()
		if _, dup := l.seen[ev.EventID()]; !dup {
			l.seen[ev.EventID()] = struct{}{}
			l.events = append(l.events, ev)
			added++
		}
		l.mu.Unlock()
	}
	return added, nil
}

// Len reports how many distinct events the log holds.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Events returns the log ordered by timestamp, ties broken by insertion
// order. The returned slice is a copy.
func (l *Log) Events() []Event {
	l.mu.Lock()
	ordered := make([]Event, len(l.events))
	copy(ordered, l.events)
	l.mu.Unlock()

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Time().Before(ordered[j].Time())
	})
	return ordered
}

// Materialize folds the log's ordered events into holdings.
func (l *Log) Materialize() map[catalog.EntryID]Holdings {
	return Materialize(l.Events())
}
