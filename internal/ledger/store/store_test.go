package store_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"binder/internal/catalog"
	"binder/internal/ledger"
	"binder/internal/ledger/store"
	"binder/internal/testsupport"
)

const boltID = catalog.EntryID("bolt-m21")

func eventAt(id string, sec int, build func(ledger.Meta) ledger.Event) ledger.Event {
	meta := ledger.Meta{
		ID:    ledger.EventID(id),
		Entry: boltID,
		At:    time.Date(2026, 8, 30, 12, 0, sec, 0, time.UTC),
	}
	return build(meta)
}

func TestAppendAndMaterialize(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	events := []ledger.Event{
		eventAt("e1", 1, func(m ledger.Meta) ledger.Event {
			return ledger.Add{Meta: m, Quantity: 3, Location: "binder"}
		}),
		eventAt("e2", 2, func(m ledger.Meta) ledger.Event {
			return ledger.Move{Meta: m, Quantity: 1, From: "binder", To: "deck"}
		}),
		eventAt("e3", 3, func(m ledger.Meta) ledger.Event {
			return ledger.Remove{Meta: m, Quantity: 1, Location: "deck"}
		}),
	}
	for _, ev := range events {
		if err := s.Append(ctx, ev); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	holdings, err := s.Materialize(ctx)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	got := holdings[boltID]
	if got.Total != 2 {
		t.Errorf("Total = %d, want 2", got.Total)
	}
	if !reflect.DeepEqual(got.ByLocation, map[string]int{"binder": 2}) {
		t.Errorf("ByLocation = %v", got.ByLocation)
	}
}

func TestAppendDuplicateIDIsNoop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	ev := eventAt("e1", 1, func(m ledger.Meta) ledger.Event {
		return ledger.Add{Meta: m, Quantity: 3}
	})
	if err := s.Append(ctx, ev); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(ctx, ev); err != nil {
		t.Fatalf("duplicate Append: %v", err)
	}

	events, err := s.Events(ctx)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("events = %d, want 1", len(events))
	}
}

func TestEventsOrderedByTimestampThenInsertion(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	// Inserted out of timestamp order; a tie on e2a/e2b resolves by rowid.
	inserts := []ledger.Event{
		eventAt("e3", 3, func(m ledger.Meta) ledger.Event { return ledger.Remove{Meta: m, Quantity: 1} }),
		eventAt("e1", 1, func(m ledger.Meta) ledger.Event { return ledger.Add{Meta: m, Quantity: 2} }),
		eventAt("e2a", 2, func(m ledger.Meta) ledger.Event {
			return ledger.SetCondition{Meta: m, Condition: "near_mint"}
		}),
		eventAt("e2b", 2, func(m ledger.Meta) ledger.Event {
			return ledger.SetCondition{Meta: m, Condition: "played"}
		}),
	}
	for _, ev := range inserts {
		if err := s.Append(ctx, ev); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	events, err := s.Events(ctx)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	ids := make([]ledger.EventID, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.EventID())
	}
	want := []ledger.EventID{"e1", "e2a", "e2b", "e3"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
}

func TestAppendBatchReportsNewEvents(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := eventAt("e1", 1, func(m ledger.Meta) ledger.Event {
		return ledger.Add{Meta: m, Quantity: 3}
	})
	if err := s.Append(ctx, first); err != nil {
		t.Fatalf("Append: %v", err)
	}

	added, err := s.AppendBatch(ctx, []ledger.Event{
		first,
		eventAt("e2", 2, func(m ledger.Meta) ledger.Event { return ledger.Remove{Meta: m, Quantity: 1} }),
	})
	if err != nil {
		t.Fatalf("AppendBatch: %v", err)
	}
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
}

func TestOpenSecondWriterFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	_ = testsupport.MustOpenStore(t, cfg)

	if _, err := store.Open(cfg); err == nil {
		t.Error("expected second Open on the same data dir to fail")
	}
}

func TestReopenPreservesLog(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ev := eventAt("e1", 1, func(m ledger.Meta) ledger.Event {
		return ledger.Add{Meta: m, Quantity: 4, Location: "binder"}
	})
	if err := s.Append(context.Background(), ev); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	holdings, err := reopened.Materialize(context.Background())
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if holdings[boltID].Total != 4 {
		t.Errorf("Total after reopen = %d, want 4", holdings[boltID].Total)
	}
}
