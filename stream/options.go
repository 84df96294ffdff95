package stream

import (
	"log/slog"

	"github.com/randalmurphal/thinkstream/parser"
	"github.com/randalmurphal/thinkstream/tokens"
)

// Default reasoning delimiters.
const (
	DefaultOpenTag  = "<think>"
	DefaultCloseTag = "</think>"
)

// Option configures a Processor.
type Option func(*processorConfig)

// processorConfig holds processor configuration.
type processorConfig struct {
	id         string
	openTag    string
	closeTag   string
	normalizer Normalizer
	parser     *parser.Parser
	schema     *parser.Schema
	logger     *slog.Logger
	counter    tokens.Counter
}

// defaultConfig returns the default processor configuration.
func defaultConfig() processorConfig {
	return processorConfig{
		openTag:  DefaultOpenTag,
		closeTag: DefaultCloseTag,
		counter:  tokens.NewEstimatingCounter(tokens.DefaultCharsPerToken),
	}
}

// WithID sets the session ID used in logs and errors.
// By default a random UUID is generated.
func WithID(id string) Option {
	return func(c *processorConfig) { c.id = id }
}

// WithDelimiters sets the reasoning delimiters. Empty values keep the defaults.
func WithDelimiters(openTag, closeTag string) Option {
	return func(c *processorConfig) {
		if openTag != "" {
			c.openTag = openTag
		}
		if closeTag != "" {
			c.closeTag = closeTag
		}
	}
}

// WithNormalizer replaces the chunk normalizer.
func WithNormalizer(n Normalizer) Option {
	return func(c *processorConfig) { c.normalizer = n }
}

// WithPrefix sets the prefix stripped from the start of each chunk.
func WithPrefix(prefix string) Option {
	return func(c *processorConfig) { c.normalizer.Prefix = prefix }
}

// WithEndMarker sets the marker that ends the stream when it arrives alone.
func WithEndMarker(marker string) Option {
	return func(c *processorConfig) { c.normalizer.EndMarker = marker }
}

// WithParser sets the parser used to probe output for structured data.
func WithParser(p *parser.Parser) Option {
	return func(c *processorConfig) { c.parser = p }
}

// WithSchema requires structured data to satisfy s. Data that fails
// validation is reported as absent.
func WithSchema(s *parser.Schema) Option {
	return func(c *processorConfig) { c.schema = s }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *processorConfig) { c.logger = l }
}

// WithCounter sets the token counter used by Stats.
func WithCounter(counter tokens.Counter) Option {
	return func(c *processorConfig) { c.counter = counter }
}

// WithCharsPerToken estimates Stats tokens with the given ratio.
// A ratio <= 0 keeps the current counter.
func WithCharsPerToken(ratio float64) Option {
	return func(c *processorConfig) {
		if ratio > 0 {
			c.counter = tokens.NewEstimatingCounter(ratio)
		}
	}
}
