// Package stream splits a streamed LLM response into reasoning and output.
//
// Models that think out loud wrap their reasoning in a delimited segment,
// by default <think>...</think>, and write the answer around it. A Processor
// consumes the response chunk by chunk, classifies each span, and fires
// callbacks as text arrives. When the stream ends, Finalize closes any open
// reasoning, probes the output for JSON, and fires the terminal callbacks.
//
// # Usage
//
//	p := stream.New(stream.WithEndMarker("[DONE]"))
//	cb := stream.Callbacks{
//	    OnReasoningChunk: func(text string) { fmt.Fprint(os.Stderr, text) },
//	    OnOutputChunk:    func(text string) { fmt.Print(text) },
//	    OnFinish: func(reasoning, output string, data parser.Structured) {
//	        if v, ok := data.Value(); ok {
//	            fmt.Printf("\nparsed: %v\n", v)
//	        }
//	    },
//	}
//	for chunk := range chunks {
//	    p.Process(chunk, cb)
//	}
//	p.Finalize()
//
// # Chunk boundaries
//
// Delimiters are searched within the current chunk only. A delimiter whose
// text is split across two chunks is not recognized and its characters are
// delivered as ordinary text. Any other slicing of the input produces the
// same accumulated reasoning and output.
//
// # Errors
//
// Process and Finalize never panic and never return errors. Unexpected faults,
// including panics raised by callbacks, are reported once through OnError as
// an *Error wrapping ErrPanic. Output that holds no JSON is not a fault: it
// surfaces as an absent parser.Structured.
//
// # Concurrency
//
// A Processor is not safe for concurrent use. Drive it from the goroutine that
// consumes the stream.
package stream
