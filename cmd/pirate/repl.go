package main

import (
	"errors"
	"fmt"
	"io"
	"pirate-speak/internal/lexer"
	"pirate-speak/internal/parser"
	"pirate-speak/internal/runtime"
	"pirate-speak/internal/token"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Starts an interactive session.

Ship declarations are loaded into the session and may be redeclared.
Any other input is evaluated as an expression; assignments persist
between lines. Type :help for the meta commands.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// session is the state shared by the lines of one REPL.
type session struct {
	interp *runtime.Interpreter
	reg    *runtime.ClassRegistry
	env    *runtime.Environment
	out    io.Writer
	errOut io.Writer
}

func newSession(interp *runtime.Interpreter, out, errOut io.Writer) *session {
	return &session{
		interp: interp,
		reg:    runtime.NewClassRegistry(),
		env:    runtime.NewEnvironment(nil),
		out:    out,
		errOut: errOut,
	}
}

// ---- repl command ----

func runREPL(cmd *cobra.Command, args []string) error {
	prompt := promptStyle.Render(strings.TrimRight(cfg.REPL.Prompt, " ")) + " "
	cont := continueStyle.Render("...") + "     "

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       cfg.REPL.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("readline init failed: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%s %s\n\n",
		headerStyle.Render("PirateSpeak REPL"),
		mutedStyle.Render("(type :help, or 'exit' / Ctrl+D to quit)"))

	interp := runtime.New(runtime.WithLogger(logger), runtime.WithMaxSteps(cfg.Run.MaxSteps))
	s := newSession(interp, rl.Stdout(), rl.Stderr())
	var accumulated strings.Builder
	braceDepth := 0

	for {
		if braceDepth > 0 {
			rl.SetPrompt(cont)
		} else {
			rl.SetPrompt(prompt)
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if braceDepth > 0 {
					accumulated.Reset()
					braceDepth = 0
					continue
				}
				fmt.Fprintln(rl.Stdout(), mutedStyle.Render("(use 'exit' or Ctrl+D to quit)"))
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(rl.Stdout())
				return nil
			}
			return err
		}

		// Multi-line input continues until braces balance.
		braceDepth += braceDelta(line)
		accumulated.WriteString(line)
		accumulated.WriteString("\n")
		if braceDepth > 0 {
			continue
		}
		braceDepth = 0

		input := accumulated.String()
		accumulated.Reset()
		if s.handle(input) {
			return nil
		}
	}
}

// braceDelta returns the opening minus closing braces on line. Braces inside
// string or char literals do not count; a line that does not lex falls back
// to a raw count.
func braceDelta(line string) int {
	tokens, err := lexer.Tokenize(line)
	if err != nil {
		return strings.Count(line, "{") - strings.Count(line, "}")
	}
	delta := 0
	for _, tok := range tokens {
		switch {
		case tok.Is(token.SYMBOL, "{"):
			delta++
		case tok.Is(token.SYMBOL, "}"):
			delta--
		}
	}
	return delta
}

// handle processes one complete input and reports whether the session
// should end.
func (s *session) handle(input string) bool {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return false
	case input == "exit" || input == ":quit":
		return true
	case input == ":help":
		s.printHelp()
	case input == ":classes":
		s.printClasses()
	case strings.HasPrefix(input, ":call"):
		s.call(strings.TrimSpace(strings.TrimPrefix(input, ":call")))
	case strings.HasPrefix(input, ":"):
		s.fail(fmt.Errorf("unknown command %s (try :help)", strings.Fields(input)[0]))
	default:
		s.eval(input)
	}
	return false
}

// eval loads ship declarations or evaluates an expression.
func (s *session) eval(input string) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		s.fail(err)
		return
	}

	if len(tokens) > 0 && tokens[0].Is(token.KEYWORD, token.Ship) {
		classes, err := parser.Parse(tokens)
		if err != nil {
			s.fail(err)
			return
		}
		s.interp.LoadInto(s.reg, classes)
		for _, c := range classes {
			fmt.Fprintln(s.out, mutedStyle.Render("loaded ship ")+nameStyle.Render(c.Name))
		}
		return
	}

	expr, err := parser.ParseExpr(tokens)
	if err != nil {
		s.fail(err)
		return
	}
	v, err := s.interp.Evaluate(expr, s.env)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintln(s.out, formatValue(v))
}

func (s *session) call(line string) {
	inv, err := parseCall(s.reg, line)
	if err != nil {
		s.fail(err)
		return
	}
	v, err := s.interp.Invoke(s.reg, inv.class, inv.method, inv.args, inv.fields)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintln(s.out, formatValue(v))
}

func (s *session) fail(err error) {
	reportError(s.errOut, err)
}

func (s *session) printClasses() {
	names := s.reg.Names()
	if len(names) == 0 {
		fmt.Fprintln(s.out, borderStyle.Render(mutedStyle.Render("No ships loaded")))
		return
	}

	lines := []string{headerStyle.Render("Ships")}
	for _, name := range names {
		def, _ := s.reg.Lookup(name)
		lines = append(lines, "  "+nameStyle.Render(name))
		for _, field := range def.FieldOrder {
			lines = append(lines, fmt.Sprintf("    %s %s %s",
				mutedStyle.Render(def.Access[field].String()), typeStyle.Render(def.Fields[field]), field))
		}
		for _, method := range def.MethodNames() {
			m, _ := def.Method(method)
			params := make([]string, len(m.Params))
			for i, p := range m.Params {
				params[i] = p.Type + " " + p.Name
			}
			lines = append(lines, fmt.Sprintf("    %s %s(%s)",
				mutedStyle.Render(m.Access.String()), method, strings.Join(params, ", ")))
		}
	}
	fmt.Fprintln(s.out, borderStyle.Render(strings.Join(lines, "\n")))
}

func (s *session) printHelp() {
	help := []struct {
		key  string
		desc string
	}{
		{"ship ...", "Load (or replace) a ship declaration"},
		{"expr", "Evaluate an expression, e.g. gold = 5"},
		{":classes", "List loaded ships"},
		{":call", "Ship.adventure [arg...] [field=value...]"},
		{":help", "Show this help"},
		{"exit", "Leave the REPL"},
	}

	lines := []string{headerStyle.Render("Help")}
	for _, h := range help {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			nameStyle.Render(fmt.Sprintf("%-9s", h.key)),
			mutedStyle.Render(h.desc)))
	}
	fmt.Fprintln(s.out, borderStyle.Render(strings.Join(lines, "\n")))
}
