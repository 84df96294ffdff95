// Package events unwraps newline-delimited JSON event payloads into text.
//
// Streaming HTTP APIs rarely send bare text. Ollama sends one JSON object per
// line with the text under message.content, OpenAI-compatible servers send
// SSE "data: " lines with choices[0].delta.content, and generate-style
// endpoints put it under response. An Extractor pulls the text out of each
// line so a stream.Processor sees only the model's words.
//
//	x := events.NewExtractor()
//	text, done := x.Extract(payload)
//
// A Feeder wires an Extractor to a Processor and finalizes the processor when
// the terminator line arrives:
//
//	f := events.NewFeeder(x, stream.New())
//	for payload := range payloads {
//	    f.Feed(payload, cb)
//	}
package events
