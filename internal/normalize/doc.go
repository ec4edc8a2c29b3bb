// Package normalize canonicalizes raw OCR text before catalog lookup.
//
// Every function here is pure and total: garbage input degrades to an empty
// string or a low confidence score, never an error. Name normalization is
// idempotent so feedback text can be re-fed through the pipeline safely.
//
// The confidence score estimates how trustworthy a single OCR reading is,
// independent of whether the catalog contains a match. Its additive
// constants are calibration data carried over from field tuning; adjust
// them together, not individually.
package normalize
