package textutil

import "strings"

// SanitizeToken converts a string to a lowercase label token. Letters are
// lowercased, digits and hyphens/underscores are kept, everything else
// becomes an underscore. Returns "" for input with no usable characters.
//
// Location labels in ledger events pass through this so "Trade Binder" and
// "trade binder" fold to the same breakdown key.
func SanitizeToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_-")
}
