package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/thinkstream/config"
	"github.com/randalmurphal/thinkstream/events"
	"github.com/randalmurphal/thinkstream/source"
	"github.com/randalmurphal/thinkstream/stream"
)

// parseOptions holds the parse command's flags that are not config values.
type parseOptions struct {
	path      string
	chunkSize int
	follow    bool
	asJSON    bool
	stats     bool
	code      string
	yaml      bool
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a streamed response from a file or stdin",
	Long: `Parse reads a model response, printing the answer to stdout and the
reasoning to stderr as it arrives. When the stream ends, any JSON found in the
answer is printed.

With --events, each input line is treated as a JSON event (Ollama, OpenAI
SSE, or generate-style) and the text is extracted before parsing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		opts := parseOptions{}
		if len(args) == 1 {
			opts.path = args[0]
		}
		opts.chunkSize, _ = cmd.Flags().GetInt("chunk-size")
		opts.follow, _ = cmd.Flags().GetBool("follow")
		opts.asJSON, _ = cmd.Flags().GetBool("json")
		opts.stats, _ = cmd.Flags().GetBool("stats")
		opts.code, _ = cmd.Flags().GetString("code")
		opts.yaml, _ = cmd.Flags().GetBool("yaml")
		if opts.follow && opts.path == "" {
			return errors.New("--follow requires a file argument")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return runParse(ctx, cfg, opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), newLogger())
	},
}

func init() {
	addParseFlags(parseCmd)
	rootCmd.AddCommand(parseCmd)
}

func addParseFlags(cmd *cobra.Command) {
	cmd.Flags().String("prefix", "", "Prefix stripped from the start of each chunk")
	cmd.Flags().String("end-marker", "", "Chunk marker that ends the stream (e.g. [DONE])")
	cmd.Flags().String("open-tag", "", "Opening reasoning delimiter")
	cmd.Flags().String("close-tag", "", "Closing reasoning delimiter")
	cmd.Flags().String("schema", "", "JSON Schema the parsed answer must satisfy")
	cmd.Flags().BoolP("events", "e", false, "Treat input lines as JSON events")
	cmd.Flags().Int("chunk-size", source.DefaultChunkSize, "Bytes per chunk for plain text input")
	cmd.Flags().BoolP("follow", "f", false, "Keep reading as the file grows")
	cmd.Flags().BoolP("json", "j", false, "Print every callback as a JSON line")
	cmd.Flags().Bool("stats", false, "Print stream statistics to stderr")
	cmd.Flags().String("code", "", "Print fenced code blocks of this language from the answer (\"all\" for every block)")
	cmd.Flags().Bool("yaml", false, "Print YAML blocks from the answer as JSON")
}

// applyFlags overrides config values with flags the user set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("prefix") {
		cfg.ChunkPrefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("end-marker") {
		cfg.EndMarker, _ = flags.GetString("end-marker")
	}
	if flags.Changed("open-tag") {
		cfg.OpenTag, _ = flags.GetString("open-tag")
	}
	if flags.Changed("close-tag") {
		cfg.CloseTag, _ = flags.GetString("close-tag")
	}
	if flags.Changed("schema") {
		cfg.SchemaFile, _ = flags.GetString("schema")
	}
	if flags.Changed("events") {
		cfg.Events.Enabled, _ = flags.GetBool("events")
	}
}

// runParse drives one processor over the input and finalizes it.
func runParse(ctx context.Context, cfg config.Config, opts parseOptions, in io.Reader, out, info io.Writer, logger *slog.Logger) error {
	procOpts, err := cfg.ProcessorOptions()
	if err != nil {
		return err
	}
	p := stream.New(append(procOpts, stream.WithLogger(logger))...)
	pr := newPrinter(out, info, opts.asJSON)
	pr.code = opts.code
	pr.yaml = opts.yaml
	cb := pr.callbacks()

	// feed returns false once the stream has ended.
	feed := func(chunk string) bool {
		p.Process(chunk, cb)
		return !p.Completed()
	}
	if cfg.Events.Enabled {
		feeder := events.NewFeeder(cfg.Extractor(), p)
		feed = func(payload string) bool {
			return !feeder.Feed(payload, cb)
		}
	}

	// Cancelling on return releases producers blocked on a send.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	chunks, closeInput, err := openInput(ctx, opts, cfg.Events.Enabled, in)
	if err != nil {
		return err
	}
	defer closeInput()

	logger.Debug("parsing stream",
		slog.String("session_id", p.ID()),
		slog.String("input", inputName(opts.path)),
		slog.Bool("events", cfg.Events.Enabled),
		slog.Bool("follow", opts.follow))

	if err := source.Pump(ctx, chunks, feed); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	p.Finalize()

	if opts.stats {
		data, err := json.Marshal(p.Stats())
		if err == nil {
			fmt.Fprintf(info, "[stats] %s\n", data)
		}
	}

	if pr.faults > 0 {
		return fmt.Errorf("%d fault(s) while parsing", pr.faults)
	}
	return nil
}

// openInput returns a channel of chunks for the input. Event input is read
// line by line; plain text is read in chunkSize pieces.
func openInput(ctx context.Context, opts parseOptions, lines bool, in io.Reader) (<-chan string, func(), error) {
	if opts.path == "" {
		if lines {
			return source.ScanLines(ctx, in), func() {}, nil
		}
		return source.ReadStream(ctx, in, opts.chunkSize), func() {}, nil
	}

	r, err := source.Open(opts.path)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { r.Close() }

	if opts.follow {
		return r.Tail(ctx, true), closeFn, nil
	}

	var chunks []string
	if lines {
		chunks, err = r.ReadLines()
	} else {
		chunks, err = r.ReadChunks(opts.chunkSize)
	}
	if err != nil {
		r.Close()
		return nil, nil, err
	}

	ch := make(chan string, len(chunks))
	for _, c := range chunks {
		ch <- c
	}
	close(ch)
	return ch, closeFn, nil
}

func inputName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}
