// Package config loads, normalizes, and validates binder's TOML
// configuration.
//
// Every tunable the scan pipeline depends on (gate windows, identify
// thresholds, catalog source) lives here rather than as a hidden
// constant. Load falls back to defaults when no file exists, expands ~
// in paths, and rejects values the pipeline cannot run with.
package config
