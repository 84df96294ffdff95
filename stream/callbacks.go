package stream

import "github.com/randalmurphal/thinkstream/parser"

// Callbacks is the set of lifecycle hooks a Processor fires. Every field is
// optional. The value passed to the most recent Process call is the one
// Finalize uses.
type Callbacks struct {
	// OnStart fires once, before any other callback, on the first non-empty chunk.
	OnStart func()

	// OnReasoningStart fires each time an opening delimiter is consumed.
	OnReasoningStart func()

	// OnReasoningChunk receives each new piece of reasoning text.
	OnReasoningChunk func(text string)

	// OnReasoningFinish receives all reasoning text so far when a reasoning
	// segment closes, or at Finalize if one is still open.
	OnReasoningFinish func(reasoning string)

	// OnOutputStart fires once, before the first output text or after the
	// first reasoning segment closes, whichever comes first.
	OnOutputStart func()

	// OnOutputChunk receives each new piece of output text.
	OnOutputChunk func(text string)

	// OnOutputFinish fires at Finalize with all output text and the
	// structured data probed from it.
	OnOutputFinish func(output string, data parser.Structured)

	// OnFinish fires last at Finalize.
	OnFinish func(reasoning, output string, data parser.Structured)

	// OnError receives faults recovered during Process or Finalize.
	OnError func(err error)
}

// Merge returns callbacks that invoke c's hook and then other's for every role.
func (c Callbacks) Merge(other Callbacks) Callbacks {
	return Callbacks{
		OnStart:           chain0(c.OnStart, other.OnStart),
		OnReasoningStart:  chain0(c.OnReasoningStart, other.OnReasoningStart),
		OnReasoningChunk:  chain1(c.OnReasoningChunk, other.OnReasoningChunk),
		OnReasoningFinish: chain1(c.OnReasoningFinish, other.OnReasoningFinish),
		OnOutputStart:     chain0(c.OnOutputStart, other.OnOutputStart),
		OnOutputChunk:     chain1(c.OnOutputChunk, other.OnOutputChunk),
		OnOutputFinish: func(output string, data parser.Structured) {
			if c.OnOutputFinish != nil {
				c.OnOutputFinish(output, data)
			}
			if other.OnOutputFinish != nil {
				other.OnOutputFinish(output, data)
			}
		},
		OnFinish: func(reasoning, output string, data parser.Structured) {
			if c.OnFinish != nil {
				c.OnFinish(reasoning, output, data)
			}
			if other.OnFinish != nil {
				other.OnFinish(reasoning, output, data)
			}
		},
		OnError: chain1(c.OnError, other.OnError),
	}
}

func chain0(a, b func()) func() {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func() {
		a()
		b()
	}
}

func chain1[T any](a, b func(T)) func(T) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(v T) {
		a(v)
		b(v)
	}
}
