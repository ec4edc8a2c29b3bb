// Package session drives the scan gate and identification pipeline for
// one scanning session.
//
// Frames arrive sequentially from a single camera; the lookup an approved
// frame triggers runs on its own goroutine because the catalog call can
// suspend, and the gate keeps surfacing feedback meanwhile. A generation
// counter tags each lookup so a result arriving after Close is discarded
// instead of applied.
package session
