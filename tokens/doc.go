// Package tokens estimates token counts for streamed text.
//
// Estimation uses the rule of thumb that roughly 4 characters make 1 token
// for English text. It is fast and needs no model-specific tokenizer.
//
//	counter := tokens.NewEstimatingCounter(0)
//	n := counter.Count("Hello, world!") // ~3 tokens
//
// Any Counter can be handed to a stream.Processor with stream.WithCounter
// to drive the token figures in its Stats.
package tokens
