package parser

import (
	"pirate-speak/internal/ast"
	"pirate-speak/internal/span"
	"pirate-speak/internal/token"
	"strconv"
	"unicode/utf8"
)

// ============================================================
// Expression parsing
//
// assignment < || < && < equality < relational < additive
//            < multiplicative < unary < primary
// ============================================================

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignment()
}

// parseAssignment parses: logicalOr ('=' assignment)?
func (p *Parser) parseAssignment() (ast.Expr, error) {
	startTok := p.peek()
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.checkText(token.OPERATOR, "=") {
		return left, nil
	}

	target, ok := left.(*ast.Identifier)
	if !ok {
		return nil, &ParseError{Expected: expectIdentTarget, Found: startTok, code: codeAssignTarget}
	}
	p.advance() // '='
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	assign := &ast.Assign{Target: target, Value: value}
	assign.Span = span.Cover(target.Span, value.GetSpan())
	return assign, nil
}

// binaryLevel parses one left-associative precedence level.
func (p *Parser) binaryLevel(next func() (ast.Expr, error), build func(op string, l, r ast.Expr) ast.Expr, ops ...string) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOperator(ops...)
		if !ok {
			return left, nil
		}
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = build(op, left, right)
	}
}

// matchOperator consumes the next token if it is one of ops.
func (p *Parser) matchOperator(ops ...string) (string, bool) {
	tok := p.peek()
	if tok.Kind != token.OPERATOR {
		return "", false
	}
	for _, op := range ops {
		if tok.Lexeme == op {
			p.advance()
			return op, true
		}
	}
	return "", false
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	return p.binaryLevel(p.parseLogicalAnd, newLogical, "||")
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	return p.binaryLevel(p.parseEquality, newLogical, "&&")
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.binaryLevel(p.parseRelational, newCompare, "==", "!=")
}

func (p *Parser) parseRelational() (ast.Expr, error) {
	return p.binaryLevel(p.parseAdditive, newCompare, "<", ">", "<=", ">=")
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.binaryLevel(p.parseMultiplicative, newArith, "+", "-")
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.binaryLevel(p.parseUnary, newArith, "*", "/")
}

// parseUnary parses: ('!'|'-') unary | primary
func (p *Parser) parseUnary() (ast.Expr, error) {
	start := p.peek()
	if op, ok := p.matchOperator("!", "-"); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr := &ast.Unary{Op: op, Operand: operand}
		expr.Span = span.Span{Start: start.Span.Start, End: operand.GetSpan().End}
		return expr, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses literals, identifiers and parenthesized expressions.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	base := ast.ExprBase{NodeBase: ast.NodeBase{Span: tok.Span}}

	switch {
	case tok.Kind == token.NUMBER:
		val, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, p.fail(expectIntInRange, codeLiteralRange)
		}
		p.advance()
		return &ast.IntLiteral{ExprBase: base, Value: val}, nil

	case tok.Kind == token.FLOAT:
		val, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.fail("float literal in range", codeLiteralRange)
		}
		p.advance()
		return &ast.FloatLiteral{ExprBase: base, Value: val}, nil

	case tok.Kind == token.STRING:
		p.advance()
		return &ast.StringLiteral{ExprBase: base, Value: unquote(tok.Lexeme)}, nil

	case tok.Kind == token.CHAR:
		p.advance()
		r, _ := utf8.DecodeRuneInString(unquote(tok.Lexeme))
		return &ast.CharLiteral{ExprBase: base, Value: r}, nil

	case tok.Is(token.KEYWORD, token.Aye), tok.Is(token.KEYWORD, token.Nay):
		p.advance()
		return &ast.BoolLiteral{ExprBase: base, Value: tok.Lexeme == token.Aye}, nil

	case tok.Kind == token.IDENTIFIER:
		p.advance()
		return &ast.Identifier{ExprBase: base, Name: tok.Lexeme}, nil

	case tok.Is(token.SYMBOL, "("):
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.symbol(")"); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, p.fail(expectExpression, codeNoExpression)
	}
}

// ---- node constructors ----

func newLogical(op string, l, r ast.Expr) ast.Expr {
	e := &ast.Logical{Op: op, Left: l, Right: r}
	e.Span = span.Cover(l.GetSpan(), r.GetSpan())
	return e
}

func newCompare(op string, l, r ast.Expr) ast.Expr {
	e := &ast.Compare{Op: op, Left: l, Right: r}
	e.Span = span.Cover(l.GetSpan(), r.GetSpan())
	return e
}

func newArith(op string, l, r ast.Expr) ast.Expr {
	e := &ast.Arith{Op: op, Left: l, Right: r}
	e.Span = span.Cover(l.GetSpan(), r.GetSpan())
	return e
}

// unquote strips the surrounding quote characters from a STRING or CHAR
// lexeme. No escape sequences are processed.
func unquote(lexeme string) string {
	if len(lexeme) < 2 {
		return ""
	}
	return lexeme[1 : len(lexeme)-1]
}
