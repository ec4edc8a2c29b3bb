// Package store persists the ledger event log in SQLite.
//
// Events are written once and never updated; INSERT OR IGNORE on the
// event id gives the same idempotent-append contract as the in-memory
// log, so retried sync pushes are harmless. Reads come back ordered by
// timestamp with rowid breaking ties, which is exactly the order the
// fold requires.
//
// A file lock next to the database serializes writers across CLI
// invocations. Schema changes bump schemaVersion; the database is a
// replica of the synchronized log, so rebuilding it is always safe.
package store
