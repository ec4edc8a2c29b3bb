// Package textutil provides small text helpers shared by normalization and
// candidate ranking.
//
// The primary use cases are:
//   - Bounded Levenshtein distance for fuzzy name ranking
//   - Lowercase token sanitization for location and set-code labels
//
// Distance computation caps input length so pathological OCR output cannot
// turn a catalog scan quadratic; over-length inputs compare as "too far".
package textutil
