package text

import "testing"

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"multibyte", "こんにちは", 5},
		{"mixed", "hello世界", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountRunes(tt.in); got != tt.want {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
