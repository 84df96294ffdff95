package parser

import (
	"encoding/json"
	"strings"
)

// Source records where structured data was found.
type Source int

const (
	// SourceNone means no structured data was found.
	SourceNone Source = iota

	// SourceFenced means the data came from a ```json fenced block.
	SourceFenced

	// SourceWhole means the entire trimmed output parsed as JSON.
	SourceWhole
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceFenced:
		return "fenced"
	case SourceWhole:
		return "whole"
	default:
		return "none"
	}
}

// Structured is the outcome of probing output for JSON data.
// The zero value is an absent result.
type Structured struct {
	// Data is the decoded JSON value. Objects decode to map[string]any,
	// arrays to []any, numbers to float64.
	Data any

	// Source is where Data was found, or SourceNone when absent.
	Source Source
}

// Absent returns the "no structured data" result.
func Absent() Structured {
	return Structured{}
}

// Present reports whether structured data was found.
func (s Structured) Present() bool {
	return s.Source != SourceNone
}

// Value returns the decoded data and whether it is present.
func (s Structured) Value() (any, bool) {
	return s.Data, s.Present()
}

// ParseStructured probes text for JSON data.
//
// If text holds a ```json fenced block, only the first such block is parsed.
// Otherwise the whole trimmed text is parsed. Any decode failure yields an
// absent result, as does a JSON null, so a present result always carries
// non-nil Data. This function never reports an error.
func (p *Parser) ParseStructured(text string) Structured {
	text = strings.TrimSpace(text)

	if match := p.jsonFenceRegex.FindStringSubmatch(text); match != nil {
		data, ok := decodeJSON(match[1])
		if !ok {
			return Absent()
		}
		return Structured{Data: data, Source: SourceFenced}
	}

	data, ok := decodeJSON(text)
	if !ok {
		return Absent()
	}
	return Structured{Data: data, Source: SourceWhole}
}

// ParseStructured is a convenience function using the default parser.
func ParseStructured(text string) Structured {
	return defaultParser.ParseStructured(text)
}

func decodeJSON(text string) (any, bool) {
	var data any
	if err := json.Unmarshal([]byte(text), &data); err != nil || data == nil {
		return nil, false
	}
	return data, true
}
