package main

import (
	"bytes"
	"encoding/json"
	"pirate-speak/internal/lexer"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestPrintTokensJSON(t *testing.T) {
	tokens, err := lexer.Tokenize("ship S { }")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := printTokensJSON(&buf, tokens, diagsOf(nil)); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Tokens      []tokenJSON      `json:"tokens"`
		Diagnostics []map[string]any `json:"diagnostics"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Tokens) != 5 {
		t.Fatalf("expected 5 tokens, got %d", len(decoded.Tokens))
	}
	if decoded.Tokens[0].Kind != "KEYWORD" || decoded.Tokens[0].Lexeme != "ship" {
		t.Errorf("unexpected first token %+v", decoded.Tokens[0])
	}
	if decoded.Tokens[2].Column != 8 {
		t.Errorf("expected '{' at column 8, got %d", decoded.Tokens[2].Column)
	}
	if len(decoded.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics %v", decoded.Diagnostics)
	}
}

func TestPrintTokensText(t *testing.T) {
	tokens, err := lexer.Tokenize("gold == 5")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printTokensText(&buf, tokens)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "OPERATOR") || !strings.Contains(lines[1], "==") || !strings.HasSuffix(lines[1], "1:6") {
		t.Errorf("unexpected line %q", lines[1])
	}
}

func TestPrintStructuredYAML(t *testing.T) {
	classes, err := compile("ship S { allHands treasure coin gold; }")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := printStructured(&buf, "yaml", map[string]any{"ast": classes[0].Name}); err != nil {
		t.Fatal(err)
	}
	var decoded map[string]string
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if decoded["ast"] != "S" {
		t.Errorf("unexpected YAML %q", buf.String())
	}

	if err := printStructured(&buf, "xml", nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestDiagsOf(t *testing.T) {
	_, err := compile("ship S {")
	diags := diagsOf(err)
	if len(diags) != 1 || diags[0].Code != "E2001" {
		t.Errorf("unexpected diagnostics %v", diags)
	}
	if len(diagsOf(nil)) != 0 {
		t.Error("expected no diagnostics for nil error")
	}
}
