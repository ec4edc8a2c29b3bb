package textutil

import (
	"strings"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{"identical", "lightning bolt", "lightning bolt", 0},
		{"empty both", "", "", 0},
		{"empty left", "", "bolt", 4},
		{"empty right", "bolt", "", 4},
		{"single substitution", "bolt", "belt", 1},
		{"insertion", "bolt", "boltt", 1},
		{"deletion", "bolt", "blt", 1},
		{"two edits", "lightning", "lighfning!", 2},
		{"unrelated", "abc", "xyz", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a, b := "lightning bolt", "lightning strike"
	if Distance(a, b) != Distance(b, a) {
		t.Errorf("Distance not symmetric for %q / %q", a, b)
	}
}

func TestDistanceOverLengthInputs(t *testing.T) {
	long := strings.Repeat("a", MaxDistanceInput+1)
	if got := Distance(long, "a"); got != DistanceFar {
		t.Errorf("Distance(long, short) = %d, want DistanceFar", got)
	}
	if got := Distance("a", long); got != DistanceFar {
		t.Errorf("Distance(short, long) = %d, want DistanceFar", got)
	}
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Binder", "binder"},
		{"spaces become underscores", "Trade Binder", "trade_binder"},
		{"keeps digits and hyphens", "deck-2", "deck-2"},
		{"trims edge punctuation", "  !binder!  ", "binder"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeToken(tt.in); got != tt.want {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
