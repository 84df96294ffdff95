package tokens

import (
	"strings"
	"testing"
)

func TestNewEstimatingCounter(t *testing.T) {
	tests := []struct {
		name     string
		ratio    float64
		expected float64
	}{
		{name: "custom ratio", ratio: 3.0, expected: 3.0},
		{name: "zero ratio uses default", ratio: 0, expected: DefaultCharsPerToken},
		{name: "negative ratio uses default", ratio: -1, expected: DefaultCharsPerToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewEstimatingCounter(tt.ratio)
			if c.CharsPerToken != tt.expected {
				t.Errorf("expected CharsPerToken %v, got %v", tt.expected, c.CharsPerToken)
			}
		})
	}
}

func TestEstimatingCounter_Count(t *testing.T) {
	c := NewEstimatingCounter(0)

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{name: "empty string", text: "", expected: 0},
		{name: "four chars", text: "abcd", expected: 1},
		{name: "rounds up at half", text: "abcdef", expected: 2},
		{name: "rounds down below half", text: "abcde", expected: 1},
		{name: "counts runes not bytes", text: "日本語です", expected: 1},
		{name: "long text", text: strings.Repeat("a", 400), expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Count(tt.text); got != tt.expected {
				t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.expected)
			}
		})
	}
}

func TestEstimatingCounter_ZeroValue(t *testing.T) {
	var c EstimatingCounter
	if got := c.Count("Hello, world!"); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

func TestEstimatingCounter_CustomRatio(t *testing.T) {
	c := NewEstimatingCounter(2)
	if got := c.Count("abcdef"); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

func TestEstimatingCounter_ImplementsCounter(t *testing.T) {
	var c Counter = NewEstimatingCounter(0)
	if got := c.Count(strings.Repeat("ab", 4)); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}
