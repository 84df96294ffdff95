package stream

import (
	"log/slog"
	"strings"

	"github.com/randalmurphal/thinkstream/parser"
)

// Finalize ends the stream. It closes an open reasoning segment, makes sure
// OnOutputStart has fired, probes the output for JSON, and fires
// OnOutputFinish then OnFinish with the callbacks from the last Process call.
//
// Finalize completes at most once; later calls do nothing. The processor is
// marked completed only after OnOutputFinish returns, so if that callback
// faults a later Finalize runs the closing steps again.
func (p *Processor) Finalize() {
	if p.completed {
		return
	}
	defer p.recoverFault("finalize")

	if p.inReasoning {
		p.inReasoning = false
		fire1(p.cb.OnReasoningFinish, p.reasoning.String())
	}
	p.ensureOutputStarted()

	output := p.output.String()
	data := p.extract(output)

	if p.cb.OnOutputFinish != nil {
		p.cb.OnOutputFinish(output, data)
	}

	p.completed = true

	if p.cb.OnFinish != nil {
		p.cb.OnFinish(p.reasoning.String(), output, data)
	}
}

// extract probes output for structured data. Failures are never faults.
func (p *Processor) extract(output string) parser.Structured {
	data := p.parser.ParseStructured(strings.TrimSpace(output))
	if !data.Present() {
		p.logger.Debug("no structured data in output",
			slog.Int("output_len", len(output)))
		return data
	}

	if p.schema != nil {
		checked, err := p.schema.Check(data)
		if err != nil {
			p.logger.Debug("structured data rejected by schema",
				slog.String("source", data.Source.String()),
				slog.Any("error", err))
		}
		return checked
	}

	return data
}
