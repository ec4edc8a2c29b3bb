package ledger

import "binder/internal/catalog"

// Holdings is the derived per-entry state: never stored, always recomputed
// by replaying the full event log.
type Holdings struct {
	Total      int
	ByLocation map[string]int
	Condition  string
	Language   string
	Note       string
}

// Materialize folds an ordered event sequence into per-entry holdings.
// It is a pure function: same input order, same output. Totals may read
// negative when a remove replays before its add; that is surfaced as
// data, not an error. Locations that net to zero are pruned from the
// breakdown.
func Materialize(events []Event) map[catalog.EntryID]Holdings {
	holdings := make(map[catalog.EntryID]Holdings)

	for _, ev := range events {
		if ev == nil {
			continue
		}
		h := holdings[ev.EntryID()]

		switch e := ev.(type) {
		case Add:
			h.Total += e.Quantity
			h.ByLocation = adjustLocation(h.ByLocation, e.Location, e.Quantity)
			if e.Condition != "" {
				h.Condition = e.Condition
			}
			if e.Language != "" {
				h.Language = e.Language
			}
		case Remove:
			h.Total -= e.Quantity
			h.ByLocation = adjustLocation(h.ByLocation, e.Location, -e.Quantity)
		case Move:
			h.ByLocation = adjustLocation(h.ByLocation, e.From, -e.Quantity)
			h.ByLocation = adjustLocation(h.ByLocation, e.To, e.Quantity)
		case SetCondition:
			h.Condition = e.Condition
		case SetLanguage:
			h.Language = e.Language
		case SetNote:
			h.Note = e.Note
		}

		holdings[ev.EntryID()] = h
	}
	return holdings
}

// adjustLocation applies a signed delta to a named location. An absent
// location record is equivalent to zero quantity there, so moves and
// removes against unknown locations simply create a zero-based entry.
// Entries that land exactly on zero are pruned.
func adjustLocation(byLocation map[string]int, location string, delta int) map[string]int {
	if location == "" || delta == 0 {
		return byLocation
	}
	if byLocation == nil {
		byLocation = make(map[string]int)
	}
	next := byLocation[location] + delta
	if next == 0 {
		delete(byLocation, location)
	} else {
		byLocation[location] = next
	}
	return byLocation
}
