package main

import (
	"pirate-speak/internal/lexer"

	"github.com/spf13/cobra"
)

var tokensJSON bool

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Tokenize a program and print its tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().BoolVar(&tokensJSON, "json", false, "print tokens as JSON")
}

func runTokens(cmd *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}
	tokens, lexErr := lexer.Tokenize(source)
	logger.Debug("tokenized", "file", args[0], "tokens", len(tokens), "ok", lexErr == nil)

	out := cmd.OutOrStdout()
	if tokensJSON {
		if err := printTokensJSON(out, tokens, diagsOf(lexErr)); err != nil {
			return err
		}
		if lexErr != nil {
			return errReported
		}
		return nil
	}
	if lexErr != nil {
		return lexErr
	}
	printTokensText(out, tokens)
	return nil
}
