// Package scan decides when a stream of per-frame OCR readings is stable
// enough to spend an identification lookup.
//
// The gate is a finite-state machine carried as an immutable value and
// advanced by a pure transition function taking (state, reading, now).
// Callers inject the clock, which keeps every transition testable without
// sleeping. Window durations come from configuration: the stability window
// filters transient blur, the dedup window stops the same physical card
// from re-triggering on every frame while it stays in view.
//
// At most one lookup is ever in flight per gate; frames that arrive while
// a lookup is pending still surface live feedback but never trigger.
package scan
