// Command thinkstream splits streamed model output into reasoning and answer.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/thinkstream/config"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "thinkstream",
	Short: "Split streamed LLM output into reasoning and answer",
	Long: `thinkstream reads a model response as it streams, separates the
<think>...</think> reasoning from the answer, and reports any JSON the answer
contains once the stream ends.

Environment:
  THINKSTREAM_*   Override config values (see 'thinkstream config show')`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (.yaml, .yml, .toml or .json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file if one was given, then applies
// environment overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	cfg.LoadFromEnv()
	return cfg, nil
}

// newLogger creates a structured logger with the configured verbosity.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
