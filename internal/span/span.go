// Package span provides source positions and ranges shared by the lexer,
// parser and interpreter.
package span

import "fmt"

// Position is a location in PirateSpeak source text.
type Position struct {
	Offset int `json:"offset" yaml:"offset"` // byte offset from the start of the source
	Line   int `json:"line" yaml:"line"`     // 1-based
	Column int `json:"column" yaml:"column"` // 1-based, counted in bytes
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the half-open range [Start, End) covered by a token or node.
type Span struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%s..%s", s.Start, s.End)
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// At returns an empty span located at p.
func At(p Position) Span {
	return Span{Start: p, End: p}
}

// Cover returns the smallest span containing both a and b.
func Cover(a, b Span) Span {
	out := a
	if b.Start.Offset < out.Start.Offset {
		out.Start = b.Start
	}
	if b.End.Offset > out.End.Offset {
		out.End = b.End
	}
	return out
}
