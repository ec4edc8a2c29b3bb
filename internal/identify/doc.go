// Package identify orchestrates normalization and catalog search for one
// gate-approved reading and decides whether the top candidate can be
// accepted without user review.
//
// Auto-confirm requires a high absolute score and a clear lead over the
// runner-up; anything weaker goes to manual choice, filtered so the
// confirmation surface never shows noise matches. Thresholds live in
// Options and default to the calibrated values.
package identify
