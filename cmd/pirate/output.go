package main

import (
	"encoding/json"
	"fmt"
	"io"
	"pirate-speak/internal/diag"
	"pirate-speak/internal/runtime"
	"pirate-speak/internal/token"

	"gopkg.in/yaml.v3"
)

// ---- output helpers ----

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("YAML encoding failed: %w", err)
	}
	return enc.Close()
}

// printStructured writes v as JSON or YAML.
func printStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		return printJSON(w, v)
	case "yaml":
		return printYAML(w, v)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// reportError writes err to w, as a diagnostic when it carries one. The
// configured diagnostics format picks text or JSON.
func reportError(w io.Writer, err error) {
	d, ok := diag.FromError(err)
	if !ok {
		fmt.Fprintln(w, errorStyle.Render("error: "+err.Error()))
		return
	}
	if cfg.Run.Diagnostics == "json" {
		if perr := printJSON(w, map[string]any{"diagnostics": diagsToSlice([]diag.Diagnostic{d})}); perr != nil {
			fmt.Fprintln(w, perr)
		}
		return
	}
	printDiagsText(w, []diag.Diagnostic{d})
}

func printDiagsText(w io.Writer, diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s %s\n", codeStyle.Render(d.Code), errorStyle.Render(fmt.Sprintf("%s at %s: %s", d.Severity, d.Span.Start, d.Message)))
		if d.Hint != "" {
			fmt.Fprintln(w, mutedStyle.Render("  hint: "+d.Hint))
		}
	}
}

func diagsToSlice(diags []diag.Diagnostic) []map[string]any {
	result := make([]map[string]any, len(diags))
	for i, d := range diags {
		result[i] = map[string]any{
			"code":     d.Code,
			"severity": d.Severity.String(),
			"message":  d.Message,
			"line":     d.Span.Start.Line,
			"column":   d.Span.Start.Column,
			"offset":   d.Span.Start.Offset,
		}
		if d.Hint != "" {
			result[i]["hint"] = d.Hint
		}
	}
	return result
}

// diagsOf returns the diagnostics carried by err, if any.
func diagsOf(err error) []diag.Diagnostic {
	if d, ok := diag.FromError(err); ok {
		return []diag.Diagnostic{d}
	}
	return []diag.Diagnostic{}
}

// ---- token output helpers ----

func printTokensText(w io.Writer, tokens []token.Token) {
	for _, tok := range tokens {
		fmt.Fprintf(w, "%-12s %-20s %s\n", tok.Kind, tok.Lexeme, tok.Span.Start)
	}
}

type tokenJSON struct {
	Kind   string `json:"kind"`
	Lexeme string `json:"lexeme"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
}

func printTokensJSON(w io.Writer, tokens []token.Token, diags []diag.Diagnostic) error {
	toks := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		toks = append(toks, tokenJSON{
			Kind:   tok.Kind.String(),
			Lexeme: tok.Lexeme,
			Line:   tok.Span.Start.Line,
			Column: tok.Span.Start.Column,
			Offset: tok.Span.Start.Offset,
		})
	}

	return printJSON(w, map[string]any{
		"tokens":      toks,
		"diagnostics": diagsToSlice(diags),
	})
}

// ---- value output helpers ----

// formatValue renders a result with its type for terminal display.
func formatValue(v runtime.Value) string {
	return resultStyle.Render(v.String()) + " " + typeStyle.Render(": "+v.TypeName())
}
