package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"pirate-speak/internal/ast"
	"pirate-speak/internal/config"
	"pirate-speak/internal/lexer"
	"pirate-speak/internal/parser"
	"strings"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	cfg    = config.Default()
	logger = slog.New(slog.DiscardHandler)
)

// errReported is returned by commands that already wrote their failure to
// the output, so main only sets the exit status.
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "pirate",
	Short: "PirateSpeak toolchain",
	Long: `pirate tokenizes, parses and runs PirateSpeak programs.

A program is a list of ship declarations. Nothing runs on its own:
"pirate run" invokes one adventure (method) of one ship with the
arguments and field values given on the command line.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $PIRATE_CONFIG or ./pirate.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// setup loads the configuration and builds the logger before any command
// runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	logger = newLogger(os.Stderr, cfg.Log, verbose)
	slog.SetDefault(logger)
	logger.Debug("config loaded", "max_steps", cfg.Run.MaxSteps, "diagnostics", cfg.Run.Diagnostics)
	return nil
}

// newLogger builds a text or JSON slog logger at the configured level;
// verbose forces debug.
func newLogger(w io.Writer, lc config.LogConfig, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// readSource reads a program file.
func readSource(filename string) (string, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("cannot read file %s: %w", filename, err)
	}
	return string(source), nil
}

// compile lexes and parses a program.
func compile(source string) ([]*ast.ClassDecl, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return parser.Parse(tokens)
}
