package main

import (
	"pirate-speak/internal/ast"

	"github.com/spf13/cobra"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a program and print its syntax tree",
	Long: `Parses a program and prints the syntax tree together with any
diagnostic. Every node carries its kind and source span.

Examples:
  pirate parse ship.pirate
  pirate parse --format yaml ship.pirate`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "output format: json or yaml")
}

func runParse(cmd *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}

	classes, parseErr := compile(source)
	logger.Debug("parsed", "file", args[0], "ships", len(classes), "ok", parseErr == nil)

	output := map[string]any{
		"ast":         ast.ProgramToMap(classes),
		"diagnostics": diagsToSlice(diagsOf(parseErr)),
	}
	if err := printStructured(cmd.OutOrStdout(), parseFormat, output); err != nil {
		return err
	}
	if parseErr != nil {
		return errReported
	}
	return nil
}
