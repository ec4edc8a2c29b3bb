// Package ledger is the system of record for collection changes: an
// append-only log of immutable events and a pure fold that materializes
// current holdings from it.
//
// Events form a closed set of variants matched exhaustively in the fold.
// Corrections are new events, never edits. Append is idempotent on event
// id so retried sync pushes cannot double-count. Materialization is a
// full, repeatable replay: same ordered input, same output. That
// determinism is what makes offline/online merge reconciliation safe.
//
// Totals are never clamped. A remove folded before its add (partial sync)
// reads as a negative total; callers surface that as a sync-completeness
// signal instead of hiding it.
package ledger
