// Package treeparser is a recursive descent parser
// (https://en.wikipedia.org/wiki/Recursive_descent_parser) building the
// internal/ast tree consumed by internal/treeinterp. It is the non-core
// "alternative front end": unlike internal/lang/compiler it keeps the
// tree around instead of emitting bytecode, and it has no functions or
// jump-based loop compilation of its own.
package treeparser

import (
	"strconv"
	"strings"

	"github.com/theosovv/linen/internal/ast"
	"github.com/theosovv/linen/internal/lang/scanner"
	"github.com/theosovv/linen/internal/lang/token"
)

var comparisonKinds = []token.Kind{token.Greater, token.GreaterEqual, token.Less, token.LessEqual}
var equalityKinds = []token.Kind{token.BangEqual, token.EqualEqual}
var termKinds = []token.Kind{token.Minus, token.Plus}
var factorKinds = []token.Kind{token.Star, token.Slash}

// unaryKinds includes Star/Plus/Slash as "error productions": they are
// accepted here purely so a later stage can report a precise message
// about the unsupported unary operator, rather than a generic parse
// failure.
var unaryKinds = []token.Kind{token.Bang, token.Minus, token.Star, token.Plus, token.Slash}

// Parser is one walk over a token slice; position is always one unit
// ahead of the token last consumed.
type Parser struct {
	tokens   []token.Token
	position int
}

// New wraps an already-scanned token slice.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSource scans and parses source in one step, the entry point
// cmd/linen uses for -tree mode.
func ParseSource(source string) ([]ast.Stmt, []error) {
	sc := scanner.New(source)
	var tokens []token.Token
	for {
		tok := sc.Scan()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return New(tokens).Parse()
}

func (p *Parser) peek() token.Token     { return p.tokens[p.position] }
func (p *Parser) previous() token.Token { return p.tokens[p.position-1] }

func (p *Parser) advance() token.Token {
	if !p.isFinished() {
		p.position++
	}
	return p.previous()
}

func (p *Parser) isFinished() bool { return p.peek().Kind == token.EOF }

func (p *Parser) checkKind(kind token.Kind) bool {
	if p.isFinished() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) isMatch(kinds []token.Kind) bool {
	for _, kind := range kinds {
		if p.checkKind(kind) {
			p.advance()
			return true
		}
	}
	return false
}

// skipSemicolon consumes one optional trailing ';', so source written
// for the bytecode pipeline (which requires semicolons) also parses
// here.
func (p *Parser) skipSemicolon() {
	p.isMatch([]token.Kind{token.Semicolon})
}

// Parse parses the entire token stream into a statement list,
// continuing past errors to collect as many as possible.
func (p *Parser) Parse() ([]ast.Stmt, []error) {
	var statements []ast.Stmt
	var errs []error

	for !p.isFinished() {
		stmt, err := p.declaration()
		if err != nil {
			errs = append(errs, err)
			if !p.isFinished() {
				p.position++
			}
			continue
		}
		statements = append(statements, stmt)
	}

	return statements, errs
}

func (p *Parser) declaration() (ast.Stmt, error) {
	if p.isMatch([]token.Kind{token.Var}) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.consume(token.Identifier, "expected variable name")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expression
	if p.isMatch([]token.Kind{token.Equal}) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	p.skipSemicolon()

	return ast.VarStmt{Name: name, Initializer: initializer}, nil
}

func (p *Parser) statement() (ast.Stmt, error) {
	if p.isMatch([]token.Kind{token.Print}) {
		return p.printStatement()
	}
	if p.isMatch([]token.Kind{token.LeftBrace}) {
		statements, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.BlockStmt{Statements: statements}, nil
	}
	if p.isMatch([]token.Kind{token.If}) {
		return p.ifStatement()
	}
	if p.isMatch([]token.Kind{token.While}) {
		return p.whileStatement()
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.skipSemicolon()
	return ast.ExpressionStmt{Expression: expr}, nil
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.skipSemicolon()
	return ast.PrintStmt{Expression: expr}, nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.WhileStmt{Condition: condition, Body: body}, nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	thenStmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if p.isMatch([]token.Kind{token.Else}) {
		elseStmt, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.IfStmt{Condition: condition, Then: thenStmt, Else: elseStmt}, nil
}

func (p *Parser) block() ([]ast.Stmt, error) {
	var statements []ast.Stmt

	for !p.checkKind(token.RightBrace) && !p.isFinished() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	if _, err := p.consume(token.RightBrace, "expected '}' after block"); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.isMatch([]token.Kind{token.Equal}) {
		equalsToken := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if variable, ok := expr.(ast.Variable); ok {
			return ast.Assign{Name: variable.Name, Value: value}, nil
		}
		return nil, newSyntaxError(equalsToken.Line, "invalid assignment target")
	}
	return expr, nil
}

func (p *Parser) or() (ast.Expression, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.isMatch([]token.Kind{token.Or}) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.isMatch([]token.Kind{token.And}) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.isMatch(equalityKinds) {
		op := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (ast.Expression, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isMatch(comparisonKinds) {
		op := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.isMatch(termKinds) {
		op := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isMatch(factorKinds) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.isMatch(unaryKinds) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Operator: op, Right: right}, nil
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Expression, error) {
	if p.isMatch([]token.Kind{token.False}) {
		return ast.Literal{Value: false}, nil
	}
	if p.isMatch([]token.Kind{token.Nil}) {
		return ast.Literal{Value: nil}, nil
	}
	if p.isMatch([]token.Kind{token.True}) {
		return ast.Literal{Value: true}, nil
	}
	if p.isMatch([]token.Kind{token.Number}) {
		lexeme := p.previous().Lexeme
		value, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return nil, newSyntaxError(p.previous().Line, "invalid number literal")
		}
		return ast.Literal{Value: value}, nil
	}
	if p.isMatch([]token.Kind{token.String}) {
		lexeme := p.previous().Lexeme
		return ast.Literal{Value: strings.Trim(lexeme, `"`)}, nil
	}
	if p.isMatch([]token.Kind{token.Identifier}) {
		return ast.Variable{Name: p.previous()}, nil
	}
	if p.isMatch([]token.Kind{token.LeftParen}) {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RightParen, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return ast.Grouping{Expression: expr}, nil
	}

	return nil, newSyntaxError(p.peek().Line, "unrecognised expression")
}

func (p *Parser) consume(kind token.Kind, message string) (token.Token, error) {
	if p.checkKind(kind) {
		return p.advance(), nil
	}
	return token.Token{}, newSyntaxError(p.peek().Line, message)
}
