// Package runtime implements the PirateSpeak interpreter: the value model,
// scoped environments, the class registry and the tree-walking evaluator.
package runtime

import (
	"pirate-speak/internal/token"
	"strconv"
)

// Value is the interface for all runtime values.
type Value interface {
	TypeName() string
	String() string
}

// ---- Primitive values ----

// IntVal is a coin.
type IntVal int64

func (v IntVal) TypeName() string { return token.Coin }
func (v IntVal) String() string   { return strconv.FormatInt(int64(v), 10) }

// FloatVal is loot.
type FloatVal float64

func (v FloatVal) TypeName() string { return token.Loot }
func (v FloatVal) String() string   { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// StringVal is a scroll.
type StringVal string

func (v StringVal) TypeName() string { return token.Scroll }
func (v StringVal) String() string   { return string(v) }

// CharVal is a mark.
type CharVal rune

func (v CharVal) TypeName() string { return token.Mark }
func (v CharVal) String() string   { return string(rune(v)) }

// BoolVal is a beacon.
type BoolVal bool

func (v BoolVal) TypeName() string { return token.Beacon }
func (v BoolVal) String() string {
	if v {
		return token.Aye
	}
	return token.Nay
}

// ---- Markers ----

// UnsetVal marks a name that is declared but holds no value yet. Reading it
// is an UnboundName error.
type UnsetVal struct{}

func (UnsetVal) TypeName() string { return "unset" }
func (UnsetVal) String() string   { return "<unset>" }

// UnitVal is the result of a method that returns nothing.
type UnitVal struct{}

func (UnitVal) TypeName() string { return "unit" }
func (UnitVal) String() string   { return "()" }

var (
	Unset Value = UnsetVal{}
	Unit  Value = UnitVal{}
)

// IsTruthy reports whether v counts as true in a condition. false, 0, 0.0
// and "" are falsy; every other value, every mark included, is truthy.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case BoolVal:
		return bool(val)
	case IntVal:
		return val != 0
	case FloatVal:
		return val != 0
	case StringVal:
		return val != ""
	default:
		return true
	}
}

// IsNumeric reports whether v is a coin or loot.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case IntVal, FloatVal:
		return true
	}
	return false
}

func toFloat(v Value) float64 {
	switch val := v.(type) {
	case IntVal:
		return float64(val)
	case FloatVal:
		return float64(val)
	}
	return 0
}

// Equal reports whether a and b are the same value. Numbers compare across
// coin and loot; other kinds are only equal to their own kind.
func Equal(a, b Value) bool {
	if IsNumeric(a) && IsNumeric(b) {
		if ai, ok := a.(IntVal); ok {
			if bi, ok := b.(IntVal); ok {
				return ai == bi
			}
		}
		return toFloat(a) == toFloat(b)
	}
	return a == b
}
