package normalize

import (
	"math"
	"testing"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   any
		fb   float64
		want float64
	}{
		{42.5, 0, 42.5},
		{0.0, 9, 0},
		{int(7), 0, 7},
		{int64(-3), 0, -3},
		{float32(1.5), 0, 1.5},
		{"12", 5, 5},
		{true, 5, 5},
		{nil, 5, 5},
		{math.NaN(), 1, 1},
		{math.Inf(1), 2, 2},
		{map[string]any{}, 3, 3},
	}
	for _, tt := range tests {
		if got := Number(tt.in, tt.fb); got != tt.want {
			t.Errorf("Number(%#v, %v) = %v, want %v", tt.in, tt.fb, got, tt.want)
		}
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"hello", "hello"},
		{"  padded ", "  padded "},
		{"", Placeholder},
		{" \t\n", Placeholder},
		{nil, Placeholder},
		{12, Placeholder},
		{[]any{"x"}, Placeholder},
	}
	for _, tt := range tests {
		if got := Text(tt.in, Placeholder); got != tt.want {
			t.Errorf("Text(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Text(nil, "n/a"); got != "n/a" {
		t.Errorf("custom fallback: got %q", got)
	}
}
