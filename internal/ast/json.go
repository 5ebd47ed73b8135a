package ast

import (
	"pirate-speak/internal/span"
)

// ProgramToMap converts a parsed program to a slice of tagged maps suitable
// for JSON or YAML serialization.
func ProgramToMap(classes []*ClassDecl) []any {
	out := make([]any, len(classes))
	for i, c := range classes {
		out[i] = NodeToMap(c)
	}
	return out
}

// NodeToMap converts an AST node to a map suitable for serialization.
// Every node becomes a tagged union with a "kind" field.
func NodeToMap(node Node) map[string]any {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	// ---- Declarations ----
	case *ClassDecl:
		members := make([]any, len(n.Members))
		for i, mem := range n.Members {
			members[i] = NodeToMap(mem)
		}
		return m("ClassDecl", n.Span, "name", n.Name, "members", members)
	case *FieldDecl:
		return m("FieldDecl", n.Span, "access", n.Access.String(), "type", n.Type, "name", n.Name)
	case *MethodDecl:
		params := make([]any, len(n.Params))
		for i, p := range n.Params {
			params[i] = m("Param", p.Span, "type", p.Type, "name", p.Name)
		}
		return m("MethodDecl", n.Span,
			"access", n.Access.String(),
			"name", n.Name,
			"params", params,
			"body", NodeToMap(n.Body))

	// ---- Statements ----
	case *VarDecl:
		return m("VarDecl", n.Span, "type", n.Type, "name", n.Name)
	case *If:
		result := m("If", n.Span,
			"cond", NodeToMap(n.Cond),
			"then", NodeToMap(n.Then))
		if n.Else != nil {
			result["else"] = NodeToMap(n.Else)
		}
		return result
	case *For:
		result := m("For", n.Span, "body", NodeToMap(n.Body))
		if n.Init != nil {
			result["init"] = NodeToMap(n.Init)
		}
		if n.Cond != nil {
			result["cond"] = NodeToMap(n.Cond)
		}
		if n.Update != nil {
			result["update"] = NodeToMap(n.Update)
		}
		return result
	case *While:
		return m("While", n.Span,
			"cond", NodeToMap(n.Cond),
			"body", NodeToMap(n.Body))
	case *Return:
		result := m("Return", n.Span)
		if n.Value != nil {
			result["value"] = NodeToMap(n.Value)
		}
		return result
	case *Block:
		stmts := make([]any, len(n.Stmts))
		for i, s := range n.Stmts {
			stmts[i] = NodeToMap(s)
		}
		return m("Block", n.Span, "stmts", stmts)
	case *ExprStmt:
		return m("ExprStmt", n.Span, "expr", NodeToMap(n.Expr))

	// ---- Expressions ----
	case *IntLiteral:
		return m("IntLiteral", n.Span, "value", n.Value)
	case *FloatLiteral:
		return m("FloatLiteral", n.Span, "value", n.Value)
	case *StringLiteral:
		return m("StringLiteral", n.Span, "value", n.Value)
	case *CharLiteral:
		return m("CharLiteral", n.Span, "value", string(n.Value))
	case *BoolLiteral:
		return m("BoolLiteral", n.Span, "value", n.Value)
	case *Identifier:
		return m("Identifier", n.Span, "name", n.Name)
	case *Assign:
		return m("Assign", n.Span,
			"target", NodeToMap(n.Target),
			"value", NodeToMap(n.Value))
	case *Logical:
		return binary("Logical", n.Span, n.Op, n.Left, n.Right)
	case *Compare:
		return binary("Compare", n.Span, n.Op, n.Left, n.Right)
	case *Arith:
		return binary("Arith", n.Span, n.Op, n.Left, n.Right)
	case *Unary:
		return m("Unary", n.Span, "op", n.Op, "operand", NodeToMap(n.Operand))

	default:
		return map[string]any{"kind": "Unknown"}
	}
}

// ---- helpers ----

// m builds a map with kind, span, and extra key-value pairs.
func m(kind string, s span.Span, kvs ...any) map[string]any {
	result := map[string]any{
		"kind": kind,
		"span": spanToMap(s),
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func binary(kind string, s span.Span, op string, left, right Expr) map[string]any {
	return m(kind, s, "op", op, "left", NodeToMap(left), "right", NodeToMap(right))
}

func spanToMap(s span.Span) map[string]any {
	return map[string]any{
		"start": map[string]any{
			"offset": s.Start.Offset,
			"line":   s.Start.Line,
			"column": s.Start.Column,
		},
		"end": map[string]any{
			"offset": s.End.Offset,
			"line":   s.End.Line,
			"column": s.End.Column,
		},
	}
}
