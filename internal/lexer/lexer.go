// Package lexer implements tokenization for PirateSpeak.
//
// Tokens are recognised by an ordered table of anchored patterns. At every
// position all patterns are tried and the longest match wins; on a tie the
// pattern listed first wins, which is how reserved words and type names beat
// the generic identifier pattern.
package lexer

import (
	"fmt"
	"pirate-speak/internal/diag"
	"pirate-speak/internal/span"
	"pirate-speak/internal/token"
	"regexp"
	"strings"
)

// maxOffendingText bounds the excerpt stored in a LexError.
const maxOffendingText = 32

type rule struct {
	kind    token.Kind
	pattern *regexp.Regexp
}

// rules is built once at init and only ever read.
var rules = []rule{
	{token.KEYWORD, wordPattern(token.Keywords)},
	{token.TYPE, wordPattern(token.TypeNames)},
	{token.IDENTIFIER, regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`)},
	{token.FLOAT, regexp.MustCompile(`^[0-9]+\.[0-9]+`)},
	{token.NUMBER, regexp.MustCompile(`^[0-9]+`)},
	{token.STRING, regexp.MustCompile(`^"[^"]*"`)},
	{token.CHAR, regexp.MustCompile(`^'.'`)},
	{token.OPERATOR, regexp.MustCompile(`^(?:==|!=|<=|>=|&&|\|\||[=<>!+\-*/&|])`)},
	{token.SYMBOL, regexp.MustCompile(`^[{}();,]`)},
}

func wordPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`^(?:` + strings.Join(quoted, "|") + `)\b`)
}

// LexError reports input that no token pattern matches.
type LexError struct {
	Pos  span.Position
	Text string // excerpt starting at Pos
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: unrecognized input %q", e.Pos, e.Text)
}

// Diagnostic describes the error for the CLI.
func (e *LexError) Diagnostic() diag.Diagnostic {
	end := e.Pos
	if e.Text != "" {
		end.Offset++
		end.Column++
	}
	return diag.Errorf("E1001", span.Span{Start: e.Pos, End: end}, "unexpected character %q", firstRune(e.Text))
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// Lexer tokenizes a PirateSpeak source string.
type Lexer struct {
	source string

	pos  int // current read position in source
	line int // current line (1-based)
	col  int // current column (1-based)
}

// New creates a Lexer for source.
func New(source string) *Lexer {
	return &Lexer{source: source, line: 1, col: 1}
}

// Tokenize is shorthand for New(source).Tokenize().
func Tokenize(source string) ([]token.Token, error) {
	return New(source).Tokenize()
}

// Tokenize scans the whole source. The result always ends with exactly one
// EOF token. Scanning stops at the first unrecognized character.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		l.skipWhitespace()
		if l.pos >= len(l.source) {
			break
		}
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	end := l.curPos()
	tokens = append(tokens, token.Token{Kind: token.EOF, Span: span.At(end)})
	return tokens, nil
}

func (l *Lexer) next() (token.Token, error) {
	rest := l.source[l.pos:]
	best := -1
	bestLen := 0
	for i, r := range rules {
		loc := r.pattern.FindStringIndex(rest)
		if loc == nil || loc[1] <= bestLen {
			continue
		}
		best, bestLen = i, loc[1]
	}
	if best < 0 {
		return token.Token{}, &LexError{Pos: l.curPos(), Text: excerpt(rest)}
	}

	start := l.curPos()
	lexeme := rest[:bestLen]
	l.advanceBy(bestLen)
	return token.Token{
		Kind:   rules[best].kind,
		Lexeme: lexeme,
		Span:   span.Span{Start: start, End: l.curPos()},
	}, nil
}

// ---- internal helpers ----

func (l *Lexer) curPos() span.Position {
	return span.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *Lexer) advance() {
	if l.source[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) advanceBy(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		switch l.source[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// excerpt returns the rest of the current line, bounded in length.
func excerpt(rest string) string {
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	if len(rest) > maxOffendingText {
		rest = rest[:maxOffendingText]
	}
	return rest
}
