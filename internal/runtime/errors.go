package runtime

import (
	"errors"
	"fmt"
	"pirate-speak/internal/diag"
	"pirate-speak/internal/span"
)

// Kind classifies a runtime failure.
type Kind int

const (
	UnboundName Kind = iota + 1
	TypeMismatch
	DivisionByZero
	ArityMismatch
	UnknownClass
	UnknownMethod
	StepLimit
)

var kindNames = map[Kind]string{
	UnboundName:    "UnboundName",
	TypeMismatch:   "TypeMismatch",
	DivisionByZero: "DivisionByZero",
	ArityMismatch:  "ArityMismatch",
	UnknownClass:   "UnknownClass",
	UnknownMethod:  "UnknownMethod",
	StepLimit:      "StepLimit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Code is the stable diagnostic code for the kind, E3001 through E3007.
func (k Kind) Code() string {
	return fmt.Sprintf("E%d", 3000+int(k))
}

// Error is a failure raised while loading or running PirateSpeak code.
type Error struct {
	Kind    Kind
	Name    string    // offending identifier, class or method, if any
	Span    span.Span // zero when the failure has no source location
	Message string
}

func (e *Error) Error() string {
	if e.Span == (span.Span{}) {
		return fmt.Sprintf("runtime error: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("runtime error at %s: %s: %s", e.Span.Start, e.Kind, e.Message)
}

// Diagnostic describes the error for the CLI.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.Errorf(e.Kind.Code(), e.Span, "%s", e.Message)
}

func runtimeErr(kind Kind, s span.Span, name, format string, args ...any) *Error {
	return &Error{Kind: kind, Name: name, Span: s, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is, or wraps, a runtime Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var rerr *Error
	return errors.As(err, &rerr) && rerr.Kind == kind
}
