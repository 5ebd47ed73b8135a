package diag

import (
	"errors"
	"fmt"
	"pirate-speak/internal/span"
	"strings"
	"testing"
)

type testErr struct{ d Diagnostic }

func (e *testErr) Error() string          { return e.d.Message }
func (e *testErr) Diagnostic() Diagnostic { return e.d }

func TestString(t *testing.T) {
	pos := span.Position{Offset: 4, Line: 2, Column: 3}
	d := Errorf("E2001", span.At(pos), "expected %s", "';'")
	if got := d.String(); got != "[E2001] error at 2:3: expected ';'" {
		t.Errorf("String() = %q", got)
	}
	if got := d.WithHint("add a semicolon").String(); !strings.HasSuffix(got, "(hint: add a semicolon)") {
		t.Errorf("String() = %q", got)
	}
	if d.Hint != "" {
		t.Error("WithHint modified the receiver")
	}
}

func TestFromError(t *testing.T) {
	inner := &testErr{d: Errorf("E3003", span.Span{}, "division by zero")}
	wrapped := fmt.Errorf("running: %w", inner)

	d, ok := FromError(wrapped)
	if !ok || d.Code != "E3003" {
		t.Errorf("FromError() = %v, %v", d, ok)
	}
	if _, ok := FromError(errors.New("plain")); ok {
		t.Error("plain error should carry no diagnostic")
	}
}
