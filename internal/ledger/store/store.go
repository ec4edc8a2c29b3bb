package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"binder/internal/catalog"
	"binder/internal/config"
	"binder/internal/ledger"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; the database rebuilds from the synchronized log.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match
// the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrLocked indicates another binder process holds the ledger lock.
var ErrLocked = errors.New("ledger database is locked by another process")

// Store manages ledger persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the ledger database, acquires the
// writer lock, and verifies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "ledger.lock"))
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire ledger lock: %w", err)
	}
	if !held {
		return nil, ErrLocked
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "ledger.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: dbPath, lock: lock}
	if err := s.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return s, nil
}

// Close releases the database connection and the writer lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && dbErr == nil {
			dbErr = err
		}
	}
	return dbErr
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Append persists one event. An id already recorded is a silent no-op.
func (s *Store) Append(ctx context.Context, ev ledger.Event) error {
	payload, err := ledger.EncodeEvent(ev)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO ledger_events (id, kind, entry_id, at, payload)
         VALUES (?, ?, ?, ?, ?)`,
		string(ev.EventID()),
		string(ev.Kind()),
		string(ev.EntryID()),
		ev.Time().UTC().Format(time.RFC3339Nano),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert ledger event: %w", err)
	}
	return nil
}

// AppendBatch persists a pulled sync batch and reports how many events
// were newly recorded.
func (s *Store) AppendBatch(ctx context.Context, events []ledger.Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	added := 0
	for _, ev := range events {
		payload, err := ledger.EncodeEvent(ev)
		if err != nil {
			return 0, err
		}
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO ledger_events (id, kind, entry_id, at, payload)
             VALUES (?, ?, ?, ?, ?)`,
			string(ev.EventID()),
			string(ev.Kind()),
			string(ev.EntryID()),
			ev.Time().UTC().Format(time.RFC3339Nano),
			string(payload),
		)
		if err != nil {
			return 0, fmt.Errorf("insert ledger event %s: %w", ev.EventID(), err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}
	return added, nil
}

// Events returns the full log ordered by timestamp with insertion order
// breaking ties, which is the order Materialize expects.
func (s *Store) Events(ctx context.Context) ([]ledger.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM ledger_events ORDER BY at ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query ledger events: %w", err)
	}
	defer rows.Close()

	var events []ledger.Event
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan ledger event: %w", err)
		}
		ev, err := ledger.DecodeEvent([]byte(payload))
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger events: %w", err)
	}
	return events, nil
}

// Materialize loads the full log and folds it into holdings.
func (s *Store) Materialize(ctx context.Context) (map[catalog.EntryID]ledger.Holdings, error) {
	events, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.Materialize(events), nil
}
