package runtime

import (
	"math"
	"testing"
)

func TestParseTyped(t *testing.T) {
	tests := []struct {
		typeName string
		text     string
		expected Value
	}{
		{"coin", "42", IntVal(42)},
		{"coin", "-7", IntVal(-7)},
		{"loot", "2.5", FloatVal(2.5)},
		{"loot", "3", FloatVal(3)},
		{"scroll", "Jolly Roger", StringVal("Jolly Roger")},
		{"mark", "x", CharVal('x')},
		{"beacon", "aye", BoolVal(true)},
		{"beacon", "false", BoolVal(false)},
		{"", "12", IntVal(12)},
		{"", "1.25", FloatVal(1.25)},
		{"", "nay", BoolVal(false)},
		{"", "rum", StringVal("rum")},
	}
	for _, tt := range tests {
		got, err := ParseTyped(tt.typeName, tt.text)
		if err != nil {
			t.Errorf("ParseTyped(%q, %q): %v", tt.typeName, tt.text, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseTyped(%q, %q) = %#v, want %#v", tt.typeName, tt.text, got, tt.expected)
		}
	}
}

func TestParseTypedErrors(t *testing.T) {
	tests := []struct{ typeName, text string }{
		{"coin", "1.5"},
		{"coin", "many"},
		{"loot", "lots"},
		{"mark", "ab"},
		{"mark", ""},
		{"beacon", "maybe"},
		{"parrot", "1"},
	}
	for _, tt := range tests {
		if _, err := ParseTyped(tt.typeName, tt.text); err == nil {
			t.Errorf("ParseTyped(%q, %q): expected error", tt.typeName, tt.text)
		}
	}
}

func TestFromGo(t *testing.T) {
	tests := []struct {
		typeName string
		in       any
		expected Value
	}{
		{"", 5, IntVal(5)},
		{"", 2.5, FloatVal(2.5)},
		{"", true, BoolVal(true)},
		{"", "gold", StringVal("gold")},
		{"loot", 3, FloatVal(3)},
		{"coin", 4.0, IntVal(4)},
		{"mark", "z", CharVal('z')},
		{"coin", "9", IntVal(9)},
		{"coin", uint64(math.MaxInt64), IntVal(math.MaxInt64)},
	}
	for _, tt := range tests {
		got, err := FromGo(tt.typeName, tt.in)
		if err != nil {
			t.Errorf("FromGo(%q, %v): %v", tt.typeName, tt.in, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("FromGo(%q, %v) = %#v, want %#v", tt.typeName, tt.in, got, tt.expected)
		}
	}

	for _, in := range []any{[]any{1}, map[string]any{}, nil, uint64(math.MaxUint64)} {
		if _, err := FromGo("", in); err == nil {
			t.Errorf("FromGo(%v): expected error", in)
		}
	}
	if v, err := FromGo("coin", uint64(1<<63)); err == nil {
		t.Errorf("FromGo(coin, 2^63) = %v, expected out of range error", v)
	}
	if _, err := FromGo("coin", 4.5); err == nil {
		t.Error("FromGo(coin, 4.5): expected error")
	}
	if _, err := FromGo("scroll", 1); err == nil {
		t.Error("FromGo(scroll, 1): expected error")
	}
}

func TestToGo(t *testing.T) {
	if got := ToGo(CharVal('q')); got != "q" {
		t.Errorf("ToGo(mark) = %v", got)
	}
	if got := ToGo(IntVal(3)); got != int64(3) {
		t.Errorf("ToGo(coin) = %v", got)
	}
	if got := ToGo(Unit); got != nil {
		t.Errorf("ToGo(unit) = %v", got)
	}
}
