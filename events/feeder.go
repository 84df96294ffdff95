package events

import "github.com/randalmurphal/thinkstream/stream"

// Feeder drives a stream.Processor with event payloads.
type Feeder struct {
	extractor *Extractor
	processor *stream.Processor
}

// NewFeeder creates a Feeder. A nil extractor uses NewExtractor().
func NewFeeder(x *Extractor, p *stream.Processor) *Feeder {
	if x == nil {
		x = NewExtractor()
	}
	return &Feeder{extractor: x, processor: p}
}

// Processor returns the processor being fed.
func (f *Feeder) Processor() *stream.Processor {
	return f.processor
}

// Feed extracts text from payload and processes it as a single chunk.
// If payload holds the terminator line, the processor is finalized after
// the text is processed. It reports whether the stream ended.
func (f *Feeder) Feed(payload string, cb stream.Callbacks) bool {
	text, done := f.extractor.Extract(payload)

	f.processor.Process(text, cb)
	if done {
		f.processor.Finalize()
	}

	return done
}
