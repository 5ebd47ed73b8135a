package runtime

import (
	"pirate-speak/internal/ast"
	"pirate-speak/internal/span"
	"strings"
)

// ============================================================
// Expression evaluation
// ============================================================

func (f *frame) evalExpr(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return IntVal(e.Value), nil
	case *ast.FloatLiteral:
		return FloatVal(e.Value), nil
	case *ast.StringLiteral:
		return StringVal(e.Value), nil
	case *ast.CharLiteral:
		return CharVal(e.Value), nil
	case *ast.BoolLiteral:
		return BoolVal(e.Value), nil
	case *ast.Identifier:
		return f.evalIdent(e)
	case *ast.Assign:
		val, err := f.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		f.env.Assign(e.Target.Name, val)
		return val, nil
	case *ast.Logical:
		return f.evalLogical(e)
	case *ast.Compare:
		left, right, err := f.evalOperands(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return compare(e.Op, left, right, e.Span)
	case *ast.Arith:
		left, right, err := f.evalOperands(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return arith(e.Op, left, right, e.Span)
	case *ast.Unary:
		return f.evalUnary(e)
	default:
		return nil, runtimeErr(TypeMismatch, expr.GetSpan(), "", "unsupported expression %T", expr)
	}
}

func (f *frame) evalIdent(e *ast.Identifier) (Value, error) {
	val, ok := f.env.Get(e.Name)
	if !ok {
		return nil, runtimeErr(UnboundName, e.Span, e.Name, "undefined name %q", e.Name)
	}
	if _, unset := val.(UnsetVal); unset {
		return nil, runtimeErr(UnboundName, e.Span, e.Name, "%q has no value yet", e.Name)
	}
	return val, nil
}

func (f *frame) evalOperands(l, r ast.Expr) (Value, Value, error) {
	left, err := f.evalExpr(l)
	if err != nil {
		return nil, nil, err
	}
	right, err := f.evalExpr(r)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// evalLogical short-circuits: the right operand is only evaluated when the
// left one does not decide the result.
func (f *frame) evalLogical(e *ast.Logical) (Value, error) {
	left, err := f.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "||":
		if IsTruthy(left) {
			return BoolVal(true), nil
		}
	case "&&":
		if !IsTruthy(left) {
			return BoolVal(false), nil
		}
	default:
		return nil, runtimeErr(TypeMismatch, e.Span, "", "unknown logical operator %q", e.Op)
	}
	right, err := f.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}
	return BoolVal(IsTruthy(right)), nil
}

func (f *frame) evalUnary(e *ast.Unary) (Value, error) {
	operand, err := f.evalExpr(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "!":
		return BoolVal(!IsTruthy(operand)), nil
	case "-":
		switch v := operand.(type) {
		case IntVal:
			return -v, nil
		case FloatVal:
			return -v, nil
		}
		return nil, runtimeErr(TypeMismatch, e.Span, "", "cannot negate %s", operand.TypeName())
	default:
		return nil, runtimeErr(TypeMismatch, e.Span, "", "unknown unary operator %q", e.Op)
	}
}

// ============================================================
// Operators
// ============================================================

func arith(op string, left, right Value, s span.Span) (Value, error) {
	if !IsNumeric(left) || !IsNumeric(right) {
		return nil, runtimeErr(TypeMismatch, s, "", "cannot apply '%s' to %s and %s", op, left.TypeName(), right.TypeName())
	}

	li, lInt := left.(IntVal)
	ri, rInt := right.(IntVal)
	if lInt && rInt {
		switch op {
		case "+":
			return li + ri, nil
		case "-":
			return li - ri, nil
		case "*":
			return li * ri, nil
		case "/":
			if ri == 0 {
				return nil, runtimeErr(DivisionByZero, s, "", "division by zero")
			}
			return li / ri, nil
		}
	} else {
		lf, rf := toFloat(left), toFloat(right)
		switch op {
		case "+":
			return FloatVal(lf + rf), nil
		case "-":
			return FloatVal(lf - rf), nil
		case "*":
			return FloatVal(lf * rf), nil
		case "/":
			if rf == 0 {
				return nil, runtimeErr(DivisionByZero, s, "", "division by zero")
			}
			return FloatVal(lf / rf), nil
		}
	}
	return nil, runtimeErr(TypeMismatch, s, "", "unknown arithmetic operator %q", op)
}

func compare(op string, left, right Value, s span.Span) (Value, error) {
	switch op {
	case "==":
		return BoolVal(Equal(left, right)), nil
	case "!=":
		return BoolVal(!Equal(left, right)), nil
	}

	cmp, ok := order(left, right)
	if !ok {
		return nil, runtimeErr(TypeMismatch, s, "", "cannot apply '%s' to %s and %s", op, left.TypeName(), right.TypeName())
	}
	switch op {
	case "<":
		return BoolVal(cmp < 0), nil
	case ">":
		return BoolVal(cmp > 0), nil
	case "<=":
		return BoolVal(cmp <= 0), nil
	case ">=":
		return BoolVal(cmp >= 0), nil
	}
	return nil, runtimeErr(TypeMismatch, s, "", "unknown comparison operator %q", op)
}

// order returns -1, 0 or 1 for an ordered pair, and false when the pair has
// no ordering.
func order(left, right Value) (int, bool) {
	if IsNumeric(left) && IsNumeric(right) {
		if li, ok := left.(IntVal); ok {
			if ri, ok := right.(IntVal); ok {
				return cmpInt(int64(li), int64(ri)), true
			}
		}
		lf, rf := toFloat(left), toFloat(right)
		switch {
		case lf < rf:
			return -1, true
		case lf > rf:
			return 1, true
		}
		return 0, true
	}
	switch l := left.(type) {
	case StringVal:
		if r, ok := right.(StringVal); ok {
			return strings.Compare(string(l), string(r)), true
		}
	case CharVal:
		if r, ok := right.(CharVal); ok {
			return cmpInt(int64(l), int64(r)), true
		}
	}
	return 0, false
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
