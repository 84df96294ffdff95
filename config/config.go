package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/thinkstream/events"
	"github.com/randalmurphal/thinkstream/parser"
	"github.com/randalmurphal/thinkstream/stream"
)

// ErrInvalidConfig indicates the configuration failed validation.
var ErrInvalidConfig = errors.New("invalid config")

// ErrUnsupportedFormat indicates a config file extension that cannot be parsed.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config holds the settings for a processing session.
type Config struct {
	// ChunkPrefix is stripped once from the start of each raw chunk.
	ChunkPrefix string `json:"chunk_prefix,omitempty" yaml:"chunk_prefix" toml:"chunk_prefix" jsonschema:"description=Prefix stripped from the start of each chunk"`

	// EndMarker ends the stream when a chunk holds nothing else.
	EndMarker string `json:"end_marker,omitempty" yaml:"end_marker" toml:"end_marker" jsonschema:"description=Marker that signals end of stream"`

	// OpenTag and CloseTag delimit reasoning.
	OpenTag  string `json:"open_tag,omitempty" yaml:"open_tag" toml:"open_tag" jsonschema:"default=<think>"`
	CloseTag string `json:"close_tag,omitempty" yaml:"close_tag" toml:"close_tag" jsonschema:"default=</think>"`

	// SchemaFile is an optional JSON Schema that parsed output must satisfy.
	SchemaFile string `json:"schema_file,omitempty" yaml:"schema_file" toml:"schema_file" jsonschema:"description=Path to a JSON Schema for structured output"`

	// CharsPerToken tunes token estimates. 0 uses the default.
	CharsPerToken float64 `json:"chars_per_token,omitempty" yaml:"chars_per_token" toml:"chars_per_token" jsonschema:"minimum=0"`

	// Events configures the event-line front end.
	Events EventsConfig `json:"events" yaml:"events" toml:"events"`
}

// EventsConfig configures unwrapping of newline-delimited JSON events.
type EventsConfig struct {
	// Enabled routes input through the event extractor.
	Enabled bool `json:"enabled" yaml:"enabled" toml:"enabled"`

	// LinePrefix is stripped from each event line.
	LinePrefix string `json:"line_prefix,omitempty" yaml:"line_prefix" toml:"line_prefix" jsonschema:"default=data: "`

	// DoneLine marks the end of the event stream.
	DoneLine string `json:"done_line,omitempty" yaml:"done_line" toml:"done_line" jsonschema:"default=[DONE]"`
}

// Default returns a Config with the default delimiters and SSE event framing.
func Default() Config {
	return Config{
		OpenTag:  stream.DefaultOpenTag,
		CloseTag: stream.DefaultCloseTag,
		Events: EventsConfig{
			LinePrefix: events.DefaultLinePrefix,
			DoneLine:   events.DefaultDoneLine,
		},
	}
}

// Load reads a config file over the defaults. The format is chosen by
// extension.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromEnv populates config fields from environment variables.
// Environment variables use the THINKSTREAM_ prefix and take precedence
// over existing values.
//
// Supported variables:
//   - THINKSTREAM_CHUNK_PREFIX
//   - THINKSTREAM_END_MARKER
//   - THINKSTREAM_OPEN_TAG
//   - THINKSTREAM_CLOSE_TAG
//   - THINKSTREAM_SCHEMA_FILE
//   - THINKSTREAM_CHARS_PER_TOKEN
//   - THINKSTREAM_EVENTS: "true" or "false"
//   - THINKSTREAM_EVENTS_LINE_PREFIX
//   - THINKSTREAM_EVENTS_DONE_LINE
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("THINKSTREAM_CHUNK_PREFIX"); v != "" {
		c.ChunkPrefix = v
	}
	if v := os.Getenv("THINKSTREAM_END_MARKER"); v != "" {
		c.EndMarker = v
	}
	if v := os.Getenv("THINKSTREAM_OPEN_TAG"); v != "" {
		c.OpenTag = v
	}
	if v := os.Getenv("THINKSTREAM_CLOSE_TAG"); v != "" {
		c.CloseTag = v
	}
	if v := os.Getenv("THINKSTREAM_SCHEMA_FILE"); v != "" {
		c.SchemaFile = v
	}
	if v := os.Getenv("THINKSTREAM_CHARS_PER_TOKEN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.CharsPerToken = f
		}
	}
	if v := os.Getenv("THINKSTREAM_EVENTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Events.Enabled = b
		}
	}
	if v := os.Getenv("THINKSTREAM_EVENTS_LINE_PREFIX"); v != "" {
		c.Events.LinePrefix = v
	}
	if v := os.Getenv("THINKSTREAM_EVENTS_DONE_LINE"); v != "" {
		c.Events.DoneLine = v
	}
}

// FromEnv creates a Config from environment variables with defaults.
func FromEnv() Config {
	cfg := Default()
	cfg.LoadFromEnv()
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.OpenTag == "" || c.CloseTag == "" {
		return fmt.Errorf("%w: open_tag and close_tag are required", ErrInvalidConfig)
	}
	if c.OpenTag == c.CloseTag {
		return fmt.Errorf("%w: open_tag and close_tag must differ, got %q", ErrInvalidConfig, c.OpenTag)
	}
	if c.CharsPerToken < 0 {
		return fmt.Errorf("%w: chars_per_token must be >= 0, got %f", ErrInvalidConfig, c.CharsPerToken)
	}
	return nil
}

// Normalizer returns the chunk normalizer for this config.
func (c Config) Normalizer() stream.Normalizer {
	return stream.Normalizer{Prefix: c.ChunkPrefix, EndMarker: c.EndMarker}
}

// Extractor returns the event extractor for this config.
func (c Config) Extractor() *events.Extractor {
	x := events.NewExtractor()
	x.LinePrefix = c.Events.LinePrefix
	x.DoneLine = c.Events.DoneLine
	return x
}

// ProcessorOptions converts the config into stream options. The schema file,
// if set, is read and compiled.
func (c Config) ProcessorOptions() ([]stream.Option, error) {
	opts := []stream.Option{
		stream.WithDelimiters(c.OpenTag, c.CloseTag),
		stream.WithNormalizer(c.Normalizer()),
		stream.WithCharsPerToken(c.CharsPerToken),
	}

	if c.SchemaFile != "" {
		raw, err := os.ReadFile(c.SchemaFile)
		if err != nil {
			return nil, fmt.Errorf("read schema: %w", err)
		}
		schema, err := parser.CompileSchema(raw)
		if err != nil {
			return nil, err
		}
		opts = append(opts, stream.WithSchema(schema))
	}

	return opts, nil
}
