package stream

import "unicode/utf8"

// Stats summarizes what a Processor has consumed. Token counts are estimates.
type Stats struct {
	Chunks          int  `json:"chunks"`
	RawChars        int  `json:"raw_chars"`
	ReasoningChars  int  `json:"reasoning_chars"`
	OutputChars     int  `json:"output_chars"`
	RawTokens       int  `json:"raw_tokens"`
	ReasoningTokens int  `json:"reasoning_tokens"`
	OutputTokens    int  `json:"output_tokens"`
	Completed       bool `json:"completed"`
}

// Stats returns counts for everything processed so far. Chars are runes;
// tokens come from the Processor's Counter.
func (p *Processor) Stats() Stats {
	raw, reasoning, output := p.Raw(), p.Reasoning(), p.Output()
	return Stats{
		Chunks:          p.chunks,
		RawChars:        utf8.RuneCountInString(raw),
		ReasoningChars:  utf8.RuneCountInString(reasoning),
		OutputChars:     utf8.RuneCountInString(output),
		RawTokens:       p.counter.Count(raw),
		ReasoningTokens: p.counter.Count(reasoning),
		OutputTokens:    p.counter.Count(output),
		Completed:       p.completed,
	}
}
