// Package ast defines the abstract syntax tree for PirateSpeak.
package ast

import (
	"pirate-speak/internal/span"
	"pirate-speak/internal/token"
)

// ============================================================
// Node interfaces
// ============================================================

// Node is the interface implemented by all AST nodes.
type Node interface {
	nodeNode()
	GetSpan() span.Span
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Member is the interface for class members (fields and methods).
type Member interface {
	Node
	memberNode()
	MemberName() string
	MemberAccess() Access
}

// ============================================================
// Base types (embedded to provide common fields)
// ============================================================

// NodeBase provides the common Span field for all AST nodes.
type NodeBase struct {
	Span span.Span
}

func (n NodeBase) nodeNode()          {}
func (n NodeBase) GetSpan() span.Span { return n.Span }

// ExprBase is embedded by all expression nodes.
type ExprBase struct{ NodeBase }

func (ExprBase) exprNode() {}

// StmtBase is embedded by all statement nodes.
type StmtBase struct{ NodeBase }

func (StmtBase) stmtNode() {}

// MemberBase is embedded by field and method declarations.
type MemberBase struct {
	NodeBase
	Access Access
	Name   string
}

func (MemberBase) memberNode()            {}
func (m MemberBase) MemberName() string   { return m.Name }
func (m MemberBase) MemberAccess() Access { return m.Access }

// Access is the visibility recorded on a member. It is not enforced.
type Access int

const (
	AccessNone Access = iota // locals
	AccessAllHands
	AccessOfficerOnly
)

func (a Access) String() string {
	switch a {
	case AccessAllHands:
		return token.AllHands
	case AccessOfficerOnly:
		return token.OfficerOnly
	default:
		return ""
	}
}

// AccessFor maps a modifier keyword to its Access value.
func AccessFor(keyword string) (Access, bool) {
	switch keyword {
	case token.AllHands:
		return AccessAllHands, true
	case token.OfficerOnly:
		return AccessOfficerOnly, true
	default:
		return AccessNone, false
	}
}

// ============================================================
// Declarations
// ============================================================

// ClassDecl is a ship declaration: ship Name { members }.
type ClassDecl struct {
	NodeBase
	Name    string
	Members []Member
}

// FieldDecl is a class field: allHands treasure coin gold;
type FieldDecl struct {
	MemberBase
	Type string
}

// MethodDecl is a class method: allHands adventure name(params) { body }.
type MethodDecl struct {
	MemberBase
	Params []Param
	Body   *Block
}

// Param is a typed method parameter.
type Param struct {
	Span span.Span
	Type string
	Name string
}

// ============================================================
// Statements
// ============================================================

// VarDecl declares a local: treasure coin i;
type VarDecl struct {
	StmtBase
	Type string
	Name string
}

// If is explore (cond) then [deviate else].
type If struct {
	StmtBase
	Cond Expr
	Then Stmt
	Else Stmt // may be nil
}

// For is sail (init; cond; update) body. Each header part may be nil.
type For struct {
	StmtBase
	Init   Expr
	Cond   Expr
	Update Expr
	Body   Stmt
}

// While is while (cond) body.
type While struct {
	StmtBase
	Cond Expr
	Body Stmt
}

// Return is return [value];
type Return struct {
	StmtBase
	Value Expr // may be nil
}

// Block is { stmts }.
type Block struct {
	StmtBase
	Stmts []Stmt
}

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	StmtBase
	Expr Expr
}

// ============================================================
// Expressions
// ============================================================

// IntLiteral is an integer literal.
type IntLiteral struct {
	ExprBase
	Value int64
}

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	ExprBase
	Value float64
}

// StringLiteral is a string literal with the quotes removed.
type StringLiteral struct {
	ExprBase
	Value string
}

// CharLiteral is a single-character literal.
type CharLiteral struct {
	ExprBase
	Value rune
}

// BoolLiteral is aye or nay.
type BoolLiteral struct {
	ExprBase
	Value bool
}

// Identifier is a name reference.
type Identifier struct {
	ExprBase
	Name string
}

// Assign is target = value. It evaluates to the assigned value.
type Assign struct {
	ExprBase
	Target *Identifier
	Value  Expr
}

// Logical is a short-circuit || or &&.
type Logical struct {
	ExprBase
	Op    string
	Left  Expr
	Right Expr
}

// Compare is one of == != < > <= >=.
type Compare struct {
	ExprBase
	Op    string
	Left  Expr
	Right Expr
}

// Arith is one of + - * /.
type Arith struct {
	ExprBase
	Op    string
	Left  Expr
	Right Expr
}

// Unary is !x or -x.
type Unary struct {
	ExprBase
	Op      string
	Operand Expr
}
