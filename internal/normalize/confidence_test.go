package normalize

import "testing"

func TestConfidence(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		number string
		set    string
		want   int
	}{
		{"empty everything", "", "", "", 0},
		{"name too short", "ab", "", "", 0},
		{"short usable name", "Fog", "", "", 40},
		{"long name", "Lightning Bolt", "", "", 50},
		{"well formed number", "Lightning Bolt", "123", "", 80},
		{"number with trailing letter", "Lightning Bolt", "123a", "", 80},
		{"malformed number still counts", "Lightning Bolt", "12/34", "", 65},
		{"set code", "Lightning Bolt", "", "m21", 70},
		{"full reading", "Lightning Bolt", "123", "m21", 100},
		{"set code too long ignored", "Lightning Bolt", "123", "toolong", 80},
		{"garbage name with good fields", "★", "123", "neo", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.raw, tt.number, tt.set)
			if got != tt.want {
				t.Errorf("Confidence(%q, %q, %q) = %d, want %d", tt.raw, tt.number, tt.set, got, tt.want)
			}
		})
	}
}

func TestConfidenceBounded(t *testing.T) {
	inputs := []struct{ name, number, set string }{
		{"", "", ""},
		{"Lightning Bolt", "036/264", "m21"},
		{"x", "1", "zz"},
		{"Some Extremely Long Card Name That Keeps Going", "123a", "2x2"},
	}
	for _, in := range inputs {
		got := Confidence(in.name, in.number, in.set)
		if got < 0 || got > 100 {
			t.Errorf("Confidence(%q, %q, %q) = %d, out of [0,100]", in.name, in.number, in.set, got)
		}
	}
}
