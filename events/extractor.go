package events

import (
	"encoding/json"
	"strings"
)

// Default line framing for server-sent events.
const (
	DefaultLinePrefix = "data: "
	DefaultDoneLine   = "[DONE]"
)

// Extractor turns a multi-line event payload into plain text.
type Extractor struct {
	// LinePrefix is stripped from the start of each line when present.
	LinePrefix string

	// DoneLine marks the end of the stream. It is dropped, and Extract
	// reports done=true when it is seen.
	DoneLine string

	// Strategies are tried in order on each record; the first non-empty
	// result wins. Nil means DefaultStrategies.
	Strategies []Strategy
}

// NewExtractor creates an Extractor with SSE framing and the default strategies.
func NewExtractor() *Extractor {
	return &Extractor{
		LinePrefix: DefaultLinePrefix,
		DoneLine:   DefaultDoneLine,
		Strategies: DefaultStrategies(),
	}
}

// Extract concatenates the text of every record in payload, in line order.
// Blank lines, lines that are not JSON objects, and records no strategy
// understands contribute nothing.
func (x *Extractor) Extract(payload string) (text string, done bool) {
	strategies := x.Strategies
	if strategies == nil {
		strategies = DefaultStrategies()
	}

	var b strings.Builder
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if x.LinePrefix != "" {
			line = strings.TrimSpace(strings.TrimPrefix(line, x.LinePrefix))
		}
		if x.DoneLine != "" && line == x.DoneLine {
			done = true
			continue
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			continue
		}

		for _, strategy := range strategies {
			if s := strategy(record); s != "" {
				b.WriteString(s)
				break
			}
		}
	}

	return b.String(), done
}
