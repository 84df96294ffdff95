package stream

import (
	"io"
	"log/slog"
	"strings"

	"github.com/randalmurphal/thinkstream/parser"
)

// recorder captures every callback as a flat event string.
type recorder struct {
	events         []string
	reasoningParts []string
	outputParts    []string
	errs           []error
	outputData     []parser.Structured
	finishData     []parser.Structured
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnStart:          func() { r.events = append(r.events, "start") },
		OnReasoningStart: func() { r.events = append(r.events, "reasoning-start") },
		OnReasoningChunk: func(text string) {
			r.reasoningParts = append(r.reasoningParts, text)
			r.events = append(r.events, "reasoning-chunk:"+text)
		},
		OnReasoningFinish: func(reasoning string) {
			r.events = append(r.events, "reasoning-finish:"+reasoning)
		},
		OnOutputStart: func() { r.events = append(r.events, "output-start") },
		OnOutputChunk: func(text string) {
			r.outputParts = append(r.outputParts, text)
			r.events = append(r.events, "output-chunk:"+text)
		},
		OnOutputFinish: func(output string, data parser.Structured) {
			r.outputData = append(r.outputData, data)
			r.events = append(r.events, "output-finish:"+output)
		},
		OnFinish: func(reasoning, output string, data parser.Structured) {
			r.finishData = append(r.finishData, data)
			r.events = append(r.events, "finish:"+reasoning+"|"+output)
		},
		OnError: func(err error) {
			r.errs = append(r.errs, err)
			r.events = append(r.events, "error")
		},
	}
}

// lifecycle returns events with the per-chunk deliveries removed.
func (r *recorder) lifecycle() []string {
	var out []string
	for _, e := range r.events {
		if strings.HasPrefix(e, "reasoning-chunk:") || strings.HasPrefix(e, "output-chunk:") {
			continue
		}
		out = append(out, e)
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProcessor(opts ...Option) *Processor {
	return New(append([]Option{WithLogger(quietLogger()), WithID("test")}, opts...)...)
}

func run(p *Processor, chunks ...string) *recorder {
	r := &recorder{}
	cb := r.callbacks()
	for _, c := range chunks {
		p.Process(c, cb)
	}
	p.Finalize()
	return r
}
