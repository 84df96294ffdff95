package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStructured(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSource Source
		wantData   any
	}{
		{
			name:       "fenced json block",
			input:      "```json\n{\"a\":1}\n```",
			wantSource: SourceFenced,
			wantData:   map[string]any{"a": float64(1)},
		},
		{
			name:       "fenced block surrounded by prose",
			input:      "Here you go:\n```json\n[1, 2]\n```\nanything else?",
			wantSource: SourceFenced,
			wantData:   []any{float64(1), float64(2)},
		},
		{
			name:       "first fenced block wins",
			input:      "```json\n{\"n\":1}\n```\n```json\n{\"n\":2}\n```",
			wantSource: SourceFenced,
			wantData:   map[string]any{"n": float64(1)},
		},
		{
			name:       "whole output is json",
			input:      "  {\"status\": \"ok\"}\n",
			wantSource: SourceWhole,
			wantData:   map[string]any{"status": "ok"},
		},
		{
			name:       "bare scalar",
			input:      "42",
			wantSource: SourceWhole,
			wantData:   float64(42),
		},
		{
			name:       "plain prose",
			input:      "not json at all",
			wantSource: SourceNone,
		},
		{
			name:       "empty output",
			input:      "   ",
			wantSource: SourceNone,
		},
		{
			name:       "null output is absent",
			input:      "null",
			wantSource: SourceNone,
		},
		{
			name:       "fenced null is absent",
			input:      "```json\nnull\n```",
			wantSource: SourceNone,
		},
		{
			name:       "broken fenced block does not fall back",
			input:      "```json\n{broken\n```",
			wantSource: SourceNone,
		},
		{
			name:       "untagged fence is not structured",
			input:      "```\n{\"a\":1}\n```",
			wantSource: SourceNone,
		},
		{
			name:       "json followed by prose",
			input:      "{\"a\":1} and more",
			wantSource: SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStructured(tt.input)

			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantSource != SourceNone, got.Present())
			data, ok := got.Value()
			assert.Equal(t, got.Present(), ok)
			assert.Equal(t, tt.wantData, data)
		})
	}
}

func TestAbsent(t *testing.T) {
	var zero Structured

	assert.Equal(t, zero, Absent())
	assert.False(t, Absent().Present())
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "none", SourceNone.String())
	assert.Equal(t, "fenced", SourceFenced.String())
	assert.Equal(t, "whole", SourceWhole.String())
}
