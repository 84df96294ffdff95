package stream

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/randalmurphal/thinkstream/parser"
	"github.com/randalmurphal/thinkstream/tokens"
)

// Processor is one streaming session. It accumulates raw, reasoning and
// output text and fires Callbacks as spans are classified.
//
// The zero value is not usable; create one with New.
type Processor struct {
	id         string
	openTag    string
	closeTag   string
	normalizer Normalizer
	parser     *parser.Parser
	schema     *parser.Schema
	logger     *slog.Logger

	raw       strings.Builder
	reasoning strings.Builder
	output    strings.Builder

	started       bool
	inReasoning   bool
	outputStarted bool
	completed     bool

	cb Callbacks

	chunks  int
	counter tokens.Counter
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	if cfg.parser == nil {
		cfg.parser = parser.NewParser()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.counter == nil {
		cfg.counter = tokens.NewEstimatingCounter(0)
	}

	return &Processor{
		id:         cfg.id,
		openTag:    cfg.openTag,
		closeTag:   cfg.closeTag,
		normalizer: cfg.normalizer,
		parser:     cfg.parser,
		schema:     cfg.schema,
		logger:     cfg.logger.With(slog.String("session_id", cfg.id)),
		counter:    cfg.counter,
	}
}

// ID returns the session ID.
func (p *Processor) ID() string { return p.id }

// Raw returns every normalized chunk processed so far, concatenated.
func (p *Processor) Raw() string { return p.raw.String() }

// Reasoning returns all reasoning text delivered so far.
func (p *Processor) Reasoning() string { return p.reasoning.String() }

// Output returns all output text delivered so far.
func (p *Processor) Output() string { return p.output.String() }

// Started reports whether a non-empty chunk has been processed.
func (p *Processor) Started() bool { return p.started }

// InReasoning reports whether a reasoning segment is open.
func (p *Processor) InReasoning() bool { return p.inReasoning }

// Completed reports whether Finalize has run to completion.
func (p *Processor) Completed() bool { return p.completed }

// Process consumes one chunk of the stream.
//
// cb becomes the active callback set, replacing the one from any earlier
// call. If the chunk is an end-of-stream signal, Process runs Finalize
// instead of scanning. Faults are reported through cb.OnError.
func (p *Processor) Process(chunk string, cb Callbacks) {
	p.cb = cb

	text, end := p.normalizer.Normalize(chunk)
	if end {
		p.Finalize()
		return
	}

	defer p.recoverFault("process")

	if text == "" {
		return
	}

	p.raw.WriteString(text)
	p.chunks++

	if !p.started {
		p.started = true
		fire0(p.cb.OnStart)
	}

	p.scan(text)
}

// scan walks chunk left to right, alternating between output and reasoning
// as delimiters are found. Delimiters never match across chunks.
func (p *Processor) scan(chunk string) {
	for cursor := 0; cursor < len(chunk); {
		rest := chunk[cursor:]

		if !p.inReasoning {
			idx := strings.Index(rest, p.openTag)
			if idx < 0 {
				p.deliverOutput(rest)
				return
			}
			p.deliverOutput(rest[:idx])
			cursor += idx + len(p.openTag)
			p.inReasoning = true
			fire0(p.cb.OnReasoningStart)
			continue
		}

		idx := strings.Index(rest, p.closeTag)
		if idx < 0 {
			p.deliverReasoning(rest)
			return
		}
		p.deliverReasoning(rest[:idx])
		cursor += idx + len(p.closeTag)
		p.inReasoning = false
		fire1(p.cb.OnReasoningFinish, p.reasoning.String())
		p.ensureOutputStarted()
	}
}

func (p *Processor) deliverOutput(span string) {
	if span == "" {
		return
	}
	p.ensureOutputStarted()
	p.output.WriteString(span)
	fire1(p.cb.OnOutputChunk, span)
}

func (p *Processor) deliverReasoning(span string) {
	if span == "" {
		return
	}
	p.reasoning.WriteString(span)
	fire1(p.cb.OnReasoningChunk, span)
}

func (p *Processor) ensureOutputStarted() {
	if p.outputStarted {
		return
	}
	p.outputStarted = true
	fire0(p.cb.OnOutputStart)
}

// recoverFault turns a panic into an *Error delivered through OnError.
// It must be deferred directly.
func (p *Processor) recoverFault(op string) {
	r := recover()
	if r == nil {
		return
	}

	err := newPanicError(op, p.id, r)
	p.logger.Warn("recovered fault in stream processor",
		slog.String("op", op),
		slog.Any("error", err))
	p.reportError(err)
}

// reportError calls OnError, swallowing a panic raised by the handler itself.
func (p *Processor) reportError(err error) {
	if p.cb.OnError == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("error callback panicked", slog.Any("panic", r))
		}
	}()
	p.cb.OnError(err)
}

func fire0(fn func()) {
	if fn != nil {
		fn()
	}
}

func fire1[T any](fn func(T), v T) {
	if fn != nil {
		fn(v)
	}
}
