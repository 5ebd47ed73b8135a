package runtime

import (
	"fmt"
	"math"
	"pirate-speak/internal/token"
	"strconv"
	"unicode/utf8"
)

// ParseTyped converts text to a value of the declared PirateSpeak type.
// An empty type name falls back to InferLiteral.
func ParseTyped(typeName, text string) (Value, error) {
	switch typeName {
	case "":
		return InferLiteral(text), nil
	case token.Coin:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a %s: %w", text, typeName, err)
		}
		return IntVal(n), nil
	case token.Loot:
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not %s: %w", text, typeName, err)
		}
		return FloatVal(x), nil
	case token.Scroll:
		return StringVal(text), nil
	case token.Mark:
		if utf8.RuneCountInString(text) != 1 {
			return nil, fmt.Errorf("%q is not a %s: want exactly one character", text, typeName)
		}
		r, _ := utf8.DecodeRuneInString(text)
		return CharVal(r), nil
	case token.Beacon:
		switch text {
		case token.Aye, "true":
			return BoolVal(true), nil
		case token.Nay, "false":
			return BoolVal(false), nil
		}
		return nil, fmt.Errorf("%q is not a %s: want %s or %s", text, typeName, token.Aye, token.Nay)
	default:
		return nil, fmt.Errorf("unknown type %q", typeName)
	}
}

// InferLiteral guesses a value from text: coin, then loot, then beacon,
// otherwise a scroll.
func InferLiteral(text string) Value {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return IntVal(n)
	}
	if x, err := strconv.ParseFloat(text, 64); err == nil {
		return FloatVal(x)
	}
	switch text {
	case token.Aye:
		return BoolVal(true)
	case token.Nay:
		return BoolVal(false)
	}
	return StringVal(text)
}

// FromGo converts a decoded YAML or JSON scalar to a value. When typeName is
// set the result is coerced to that type.
func FromGo(typeName string, v any) (Value, error) {
	var val Value
	switch x := v.(type) {
	case int:
		val = IntVal(x)
	case int64:
		val = IntVal(x)
	case uint64:
		if x > math.MaxInt64 {
			return nil, fmt.Errorf("%d is out of range for %s", x, token.Coin)
		}
		val = IntVal(int64(x))
	case float64:
		val = FloatVal(x)
	case bool:
		val = BoolVal(x)
	case string:
		if typeName == "" {
			return StringVal(x), nil
		}
		return ParseTyped(typeName, x)
	default:
		return nil, fmt.Errorf("unsupported value %v (%T)", v, v)
	}
	return coerce(typeName, val)
}

func coerce(typeName string, v Value) (Value, error) {
	if typeName == "" || typeName == v.TypeName() {
		return v, nil
	}
	switch x := v.(type) {
	case IntVal:
		if typeName == token.Loot {
			return FloatVal(x), nil
		}
	case FloatVal:
		if typeName == token.Coin && FloatVal(IntVal(x)) == x {
			return IntVal(x), nil
		}
	}
	return nil, fmt.Errorf("%s value %s is not a %s", v.TypeName(), v, typeName)
}

// ToGo converts a value to a plain Go value for serialization.
func ToGo(v Value) any {
	switch x := v.(type) {
	case IntVal:
		return int64(x)
	case FloatVal:
		return float64(x)
	case StringVal:
		return string(x)
	case CharVal:
		return string(rune(x))
	case BoolVal:
		return bool(x)
	default:
		return nil
	}
}
