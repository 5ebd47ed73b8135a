// Package parser implements syntax analysis for PirateSpeak.
//
// It is a recursive-descent parser with one method per grammar rule and no
// backtracking. The first structural mismatch aborts the parse; there is no
// error recovery.
package parser

import (
	"fmt"
	"pirate-speak/internal/ast"
	"pirate-speak/internal/diag"
	"pirate-speak/internal/span"
	"pirate-speak/internal/token"
)

// Diagnostic codes.
const (
	codeExpected      = "E2001"
	codeNoExpression  = "E2002"
	codeAssignTarget  = "E2003"
	codeLiteralRange  = "E2004"
	expectExpression  = "expression"
	expectIntInRange  = "integer literal in range"
	expectIdentTarget = "IDENTIFIER"
)

// ParseError reports the first token that did not fit the grammar.
type ParseError struct {
	Expected string      // kind name, kind plus lexeme, or "expression"
	Found    token.Token // the offending token
	code     string
}

func (e *ParseError) Error() string {
	found := e.Found.Kind.String()
	if e.Found.Lexeme != "" {
		found += fmt.Sprintf(" %q", e.Found.Lexeme)
	}
	return fmt.Sprintf("parse error at %s: expected %s, got %s", e.Found.Span.Start, e.Expected, found)
}

// Pos returns where the offending token starts.
func (e *ParseError) Pos() span.Position {
	return e.Found.Span.Start
}

// Diagnostic describes the error for the CLI.
func (e *ParseError) Diagnostic() diag.Diagnostic {
	d := diag.Errorf(e.code, e.Found.Span, "expected %s, got %s", e.Expected, describe(e.Found))
	if e.code == codeAssignTarget {
		d = d.WithHint("only a plain name can be assigned")
	}
	return d
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s '%s'", tok.Kind, tok.Lexeme)
}

// Parser consumes a token stream produced by the lexer.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New creates a parser over tokens. A missing trailing EOF is tolerated.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse is shorthand for New(tokens).ParseProgram().
func Parse(tokens []token.Token) ([]*ast.ClassDecl, error) {
	return New(tokens).ParseProgram()
}

// ParseExpr parses a single expression that must span the whole input.
func ParseExpr(tokens []token.Token) (ast.Expr, error) {
	p := New(tokens)
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.isAtEnd() {
		return nil, p.fail("EOF", codeExpected)
	}
	return expr, nil
}

// ParseProgram parses: classDecl* EOF
func (p *Parser) ParseProgram() ([]*ast.ClassDecl, error) {
	var classes []*ast.ClassDecl
	for !p.isAtEnd() {
		c, err := p.parseClassDecl()
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// ---- navigation helpers ----

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		var end span.Span
		if n := len(p.tokens); n > 0 {
			end = span.At(p.tokens[n-1].Span.End)
		}
		return token.Token{Kind: token.EOF, Span: end}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// prevEnd is where the most recently consumed token ends.
func (p *Parser) prevEnd() span.Position {
	if p.pos == 0 || len(p.tokens) == 0 {
		return p.peek().Span.Start
	}
	return p.tokens[p.pos-1].Span.End
}

func (p *Parser) checkText(kind token.Kind, lexeme string) bool {
	return p.peek().Is(kind, lexeme)
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

// expect consumes a token of the given kind (and lexeme, when non-empty).
// It is the only place structural mismatches are raised.
func (p *Parser) expect(kind token.Kind, lexeme string) (token.Token, error) {
	tok := p.peek()
	if tok.Kind == kind && (lexeme == "" || tok.Lexeme == lexeme) {
		return p.advance(), nil
	}
	want := kind.String()
	if lexeme != "" {
		want += fmt.Sprintf(" %q", lexeme)
	}
	return tok, p.fail(want, codeExpected)
}

func (p *Parser) fail(expected, code string) *ParseError {
	return &ParseError{Expected: expected, Found: p.peek(), code: code}
}

func (p *Parser) symbol(s string) error {
	_, err := p.expect(token.SYMBOL, s)
	return err
}

func (p *Parser) keyword(kw string) (token.Token, error) {
	return p.expect(token.KEYWORD, kw)
}

func (p *Parser) spanFrom(start span.Position) span.Span {
	return span.Span{Start: start, End: p.prevEnd()}
}

// ============================================================
// Declarations
// ============================================================

// parseClassDecl parses: 'ship' IDENT '{' member* '}'
func (p *Parser) parseClassDecl() (*ast.ClassDecl, error) {
	start, err := p.keyword(token.Ship)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENTIFIER, "")
	if err != nil {
		return nil, err
	}
	if err := p.symbol("{"); err != nil {
		return nil, err
	}

	decl := &ast.ClassDecl{Name: nameTok.Lexeme}
	for p.checkText(token.KEYWORD, token.AllHands) || p.checkText(token.KEYWORD, token.OfficerOnly) {
		member, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		decl.Members = append(decl.Members, member)
	}

	if err := p.symbol("}"); err != nil {
		return nil, err
	}
	decl.Span = p.spanFrom(start.Span.Start)
	return decl, nil
}

// parseMember parses: ('allHands'|'officerOnly') (fieldDecl | methodDecl)
func (p *Parser) parseMember() (ast.Member, error) {
	modTok := p.advance()
	access, _ := ast.AccessFor(modTok.Lexeme)

	switch {
	case p.checkText(token.KEYWORD, token.Treasure):
		typ, name, err := p.parseTypedName(token.Treasure)
		if err != nil {
			return nil, err
		}
		return &ast.FieldDecl{
			MemberBase: ast.MemberBase{
				NodeBase: ast.NodeBase{Span: p.spanFrom(modTok.Span.Start)},
				Access:   access,
				Name:     name,
			},
			Type: typ,
		}, nil
	case p.checkText(token.KEYWORD, token.Adventure):
		return p.parseMethodDecl(modTok, access)
	default:
		return nil, p.fail(`KEYWORD "treasure" or "adventure"`, codeExpected)
	}
}

// parseTypedName parses: kw TYPE IDENT ';' and returns type and name.
func (p *Parser) parseTypedName(kw string) (string, string, error) {
	if _, err := p.keyword(kw); err != nil {
		return "", "", err
	}
	typeTok, err := p.expect(token.TYPE, "")
	if err != nil {
		return "", "", err
	}
	nameTok, err := p.expect(token.IDENTIFIER, "")
	if err != nil {
		return "", "", err
	}
	if err := p.symbol(";"); err != nil {
		return "", "", err
	}
	return typeTok.Lexeme, nameTok.Lexeme, nil
}

// parseMethodDecl parses: 'adventure' IDENT '(' paramList? ')' block
func (p *Parser) parseMethodDecl(modTok token.Token, access ast.Access) (*ast.MethodDecl, error) {
	if _, err := p.keyword(token.Adventure); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENTIFIER, "")
	if err != nil {
		return nil, err
	}
	if err := p.symbol("("); err != nil {
		return nil, err
	}

	decl := &ast.MethodDecl{}
	decl.Access = access
	decl.Name = nameTok.Lexeme

	if p.peek().Kind == token.TYPE {
		decl.Params, err = p.parseParamList()
		if err != nil {
			return nil, err
		}
	}
	if err := p.symbol(")"); err != nil {
		return nil, err
	}

	decl.Body, err = p.parseBlock()
	if err != nil {
		return nil, err
	}
	decl.Span = p.spanFrom(modTok.Span.Start)
	return decl, nil
}

// parseParamList parses: param (',' param)*
func (p *Parser) parseParamList() ([]ast.Param, error) {
	var params []ast.Param
	for {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.checkText(token.SYMBOL, ",") {
			return params, nil
		}
		p.advance()
	}
}

// parseParam parses: TYPE IDENT
func (p *Parser) parseParam() (ast.Param, error) {
	typeTok, err := p.expect(token.TYPE, "")
	if err != nil {
		return ast.Param{}, err
	}
	nameTok, err := p.expect(token.IDENTIFIER, "")
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{
		Span: p.spanFrom(typeTok.Span.Start),
		Type: typeTok.Lexeme,
		Name: nameTok.Lexeme,
	}, nil
}

// ============================================================
// Statements
// ============================================================

func (p *Parser) parseStmt() (ast.Stmt, error) {
	tok := p.peek()
	switch {
	case tok.Is(token.KEYWORD, token.Treasure):
		return p.parseVarDecl()
	case tok.Is(token.KEYWORD, token.Explore):
		return p.parseIf()
	case tok.Is(token.KEYWORD, token.Sail):
		return p.parseFor()
	case tok.Is(token.KEYWORD, token.While):
		return p.parseWhile()
	case tok.Is(token.KEYWORD, token.Return):
		return p.parseReturn()
	case tok.Is(token.SYMBOL, "{"):
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

// parseVarDecl parses: 'treasure' TYPE IDENT ';'
func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	start := p.peek().Span.Start
	typ, name, err := p.parseTypedName(token.Treasure)
	if err != nil {
		return nil, err
	}
	stmt := &ast.VarDecl{Type: typ, Name: name}
	stmt.Span = p.spanFrom(start)
	return stmt, nil
}

// parseIf parses: 'explore' '(' expr ')' statement ('deviate' statement)?
func (p *Parser) parseIf() (*ast.If, error) {
	start := p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Cond: cond}
	if stmt.Then, err = p.parseStmt(); err != nil {
		return nil, err
	}
	if p.checkText(token.KEYWORD, token.Deviate) {
		p.advance()
		if stmt.Else, err = p.parseStmt(); err != nil {
			return nil, err
		}
	}
	stmt.Span = p.spanFrom(start.Span.Start)
	return stmt, nil
}

// parseFor parses: 'sail' '(' expr? ';' expr? ';' expr? ')' statement
func (p *Parser) parseFor() (*ast.For, error) {
	start := p.advance()
	if err := p.symbol("("); err != nil {
		return nil, err
	}

	stmt := &ast.For{}
	var err error
	if stmt.Init, err = p.parseOptionalExpr(";"); err != nil {
		return nil, err
	}
	if err := p.symbol(";"); err != nil {
		return nil, err
	}
	if stmt.Cond, err = p.parseOptionalExpr(";"); err != nil {
		return nil, err
	}
	if err := p.symbol(";"); err != nil {
		return nil, err
	}
	if stmt.Update, err = p.parseOptionalExpr(")"); err != nil {
		return nil, err
	}
	if err := p.symbol(")"); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseStmt(); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start.Span.Start)
	return stmt, nil
}

// parseOptionalExpr parses an expression unless the next token is the
// closing symbol.
func (p *Parser) parseOptionalExpr(closer string) (ast.Expr, error) {
	if p.checkText(token.SYMBOL, closer) {
		return nil, nil
	}
	return p.parseExpr()
}

// parseWhile parses: 'while' '(' expr ')' statement
func (p *Parser) parseWhile() (*ast.While, error) {
	start := p.advance()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	stmt := &ast.While{Cond: cond}
	if stmt.Body, err = p.parseStmt(); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start.Span.Start)
	return stmt, nil
}

// parseCondition parses: '(' expr ')'
func (p *Parser) parseCondition() (ast.Expr, error) {
	if err := p.symbol("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.symbol(")"); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseReturn parses: 'return' expr? ';'
func (p *Parser) parseReturn() (*ast.Return, error) {
	start := p.advance()
	stmt := &ast.Return{}
	var err error
	if stmt.Value, err = p.parseOptionalExpr(";"); err != nil {
		return nil, err
	}
	if err := p.symbol(";"); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start.Span.Start)
	return stmt, nil
}

// parseBlock parses: '{' statement* '}'
func (p *Parser) parseBlock() (*ast.Block, error) {
	start, err := p.expect(token.SYMBOL, "{")
	if err != nil {
		return nil, err
	}
	block := &ast.Block{}
	for !p.checkText(token.SYMBOL, "}") && !p.isAtEnd() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	if err := p.symbol("}"); err != nil {
		return nil, err
	}
	block.Span = p.spanFrom(start.Span.Start)
	return block, nil
}

// parseExprStmt parses: expr ';'
func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.symbol(";"); err != nil {
		return nil, err
	}
	stmt := &ast.ExprStmt{Expr: expr}
	stmt.Span = p.spanFrom(expr.GetSpan().Start)
	return stmt, nil
}
