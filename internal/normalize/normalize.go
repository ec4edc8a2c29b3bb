package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Reading is the canonical form of one OCR attempt.
type Reading struct {
	Name            string
	CollectorNumber string
	SetCode         string
	Confidence      int
}

// FromRaw normalizes all three OCR fields and scores the result.
func FromRaw(rawName, rawCollectorNumber, rawSetCode string) Reading {
	return Reading{
		Name:            Name(rawName),
		CollectorNumber: CollectorNumber(rawCollectorNumber),
		SetCode:         SetCode(rawSetCode),
		Confidence:      Confidence(rawName, rawCollectorNumber, rawSetCode),
	}
}

// typographicReplacer maps curly quotes and exotic dashes to their ASCII
// equivalents before the printable-ASCII filter runs.
var typographicReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	"−", "-",
)

// Name canonicalizes a raw OCR card name: typographic characters fold to
// ASCII, accented letters decompose so their base letter survives the
// ASCII filter, whitespace runs collapse to a single space, and anything
// outside printable ASCII is dropped.
func Name(raw string) string {
	if raw == "" {
		return ""
	}
	s := typographicReplacer.Replace(raw)
	s = norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			space = b.Len() > 0
			continue
		}
		if r < '!' || r > '~' {
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// collectorSubstitutions lists letter/digit look-alike corrections in the
// order they are applied. Only positions adjacent to a digit are rewritten
// so genuine letters in promo numbers survive.
var collectorSubstitutions = []struct {
	from byte
	to   byte
}{
	{'O', '0'},
	{'I', '1'},
	{'L', '1'},
	{'S', '5'},
	{'B', '8'},
}

// CollectorNumber canonicalizes a raw collector number: uppercase, OCR
// confusion substitutions in digit-adjacent positions, then a strict
// letters/digits/slash filter.
func CollectorNumber(raw string) string {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if upper == "" {
		return ""
	}

	buf := []byte(upper)
	for i := range buf {
		if !digitAdjacent(buf, i) {
			continue
		}
		for _, sub := range collectorSubstitutions {
			if buf[i] == sub.from {
				buf[i] = sub.to
				break
			}
		}
	}

	var b strings.Builder
	b.Grow(len(buf))
	for _, c := range buf {
		switch {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '/':
			b.WriteByte(c)
		}
	}
	return b.String()
}

func digitAdjacent(buf []byte, i int) bool {
	if i > 0 && isDigit(buf[i-1]) {
		return true
	}
	if i+1 < len(buf) && isDigit(buf[i+1]) {
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// SetCode canonicalizes a raw set code: uppercase, letters and digits only.
func SetCode(raw string) string {
	upper := strings.ToUpper(raw)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
