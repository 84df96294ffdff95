// Package thinkstream splits streamed model output into reasoning and answer.
//
// Models that "think out loud" wrap their reasoning in delimiters such as
// <think>...</think> and write the answer after it. thinkstream consumes that
// text chunk by chunk, reports each piece as it arrives through callbacks, and
// once the stream ends probes the answer for JSON. Each subpackage can be used
// on its own:
//
//   - stream: the incremental processor, callbacks, chunk normalizer and finalizer
//   - parser: JSON, YAML, and code-block extraction plus JSON Schema checks
//   - events: unwraps newline-delimited JSON events (Ollama, OpenAI SSE, generate)
//   - config: file and environment configuration for a processor
//   - source: chunk sources over files, readers, and growing logs
//   - tokens: character and token estimates for stream statistics
//
// # Quick Start
//
// Plain text chunks:
//
//	import "github.com/randalmurphal/thinkstream/stream"
//	p := stream.New()
//	cb := stream.Callbacks{
//	    OnReasoningChunk: func(text string) { fmt.Fprint(os.Stderr, text) },
//	    OnOutputChunk:    func(text string) { fmt.Print(text) },
//	    OnFinish: func(reasoning, output string, data parser.Structured) {
//	        if data.Present() {
//	            fmt.Printf("\n%v\n", data.Data)
//	        }
//	    },
//	}
//	for chunk := range chunks {
//	    p.Process(chunk, cb)
//	}
//	p.Finalize()
//
// Server-sent events:
//
//	import "github.com/randalmurphal/thinkstream/events"
//	f := events.NewFeeder(nil, stream.New())
//	for payload := range payloads {
//	    if f.Feed(payload, cb) {
//	        break
//	    }
//	}
//
// A Processor is not safe for concurrent use. Feed it from one goroutine.
package thinkstream
