package normalize

import "regexp"

// wellFormedCollectorNumber matches the canonical "123" / "123a" shape a
// clean OCR pass produces for a collector number.
var wellFormedCollectorNumber = regexp.MustCompile(`^[0-9]+[A-Z]?$`)

// wellFormedSetCode matches 2-5 alphanumeric characters.
var wellFormedSetCode = regexp.MustCompile(`^[A-Z0-9]{2,5}$`)

// Scoring weights for OCR reliability. These are calibration values; they
// are additive and the sum is clamped to 100.
const (
	scoreNameUsable     = 40
	scoreNameLong       = 10
	scoreNumberShaped   = 30
	scoreNumberPresent  = 15
	scoreSetCodeShaped  = 20
	minUsableNameLength = 3
	longNameLength      = 6
	maxConfidence       = 100
)

// Confidence scores how reliable one OCR reading looks, from 0 to 100.
// It judges only the text shape; catalog matching has its own scoring.
func Confidence(rawName, rawCollectorNumber, rawSetCode string) int {
	score := 0

	name := Name(rawName)
	if len(name) >= minUsableNameLength {
		score += scoreNameUsable
		if len(name) >= longNameLength {
			score += scoreNameLong
		}
	}

	if number := CollectorNumber(rawCollectorNumber); number != "" {
		if wellFormedCollectorNumber.MatchString(number) {
			score += scoreNumberShaped
		} else {
			score += scoreNumberPresent
		}
	}

	if code := SetCode(rawSetCode); wellFormedSetCode.MatchString(code) {
		score += scoreSetCodeShaped
	}

	if score > maxConfidence {
		score = maxConfidence
	}
	return score
}
