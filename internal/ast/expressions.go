// Package ast holds the tree-walking front end's node types: the
// non-core "alternative front end" kept alongside the bytecode
// pipeline for comparison and debugging (see cmd/linen -tree). It has
// no jump-based loops, no functions, and no bytecode of its own — it
// is evaluated directly by internal/treeinterp.
package ast

import (
	"github.com/theosovv/linen/internal/lang/token"
)

// Expression is the core interface for all expression nodes in the AST.
// Any expression type (binary operation, literal, grouping, etc.) must
// implement this interface. Accept dispatches to the matching Visit
// method so behavior can be added without changing the node types
// themselves.
type Expression interface {
	Accept(v ExpressionVisitor) any
}

// Binary represents a binary operation expression (e.g., "a + b").
type Binary struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (binary Binary) Accept(v ExpressionVisitor) any {
	return v.VisitBinary(binary)
}

// Unary represents a unary operation expression (e.g., "!a" or "-b").
type Unary struct {
	Operator token.Token
	Right    Expression
}

func (unary Unary) Accept(v ExpressionVisitor) any {
	return v.VisitUnary(unary)
}

// Literal represents a literal value in the source code (number,
// string, boolean, or nil).
type Literal struct {
	Value any
}

func (literal Literal) Accept(v ExpressionVisitor) any {
	return v.VisitLiteral(literal)
}

// Grouping represents a parenthesized expression (e.g., "(a + b)").
type Grouping struct {
	Expression Expression
}

func (grouping Grouping) Accept(v ExpressionVisitor) any {
	return v.VisitGrouping(grouping)
}

// Variable represents a value bound to a declared variable.
type Variable struct {
	Name token.Token
}

func (variable Variable) Accept(v ExpressionVisitor) any {
	return v.VisitVariableExpression(variable)
}

// Assign represents an assignment expression (e.g., "a = b").
type Assign struct {
	Name  token.Token
	Value Expression
}

func (assign Assign) Accept(v ExpressionVisitor) any {
	return v.VisitAssignExpression(assign)
}

// Logical represents a short-circuiting "and"/"or" expression. Kept
// distinct from Binary because its right operand is only evaluated
// conditionally.
type Logical struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (logical Logical) Accept(v ExpressionVisitor) any {
	return v.VisitLogicalExpression(logical)
}
