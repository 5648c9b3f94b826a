package ast

import "github.com/theosovv/linen/internal/lang/token"

// Stmt is the base interface for all statement nodes. A statement
// represents an action (printing, declaring, looping); unlike an
// expression it does not produce a value.
type Stmt interface {
	Accept(v StmtVisitor) any
}

// ExpressionStmt is a statement consisting of a single expression,
// evaluated for its side effect and discarded. Example: "foo + bar;"
type ExpressionStmt struct {
	Expression Expression
}

func (e ExpressionStmt) Accept(v StmtVisitor) any {
	return v.VisitExpressionStmt(e)
}

// PrintStmt outputs the result of evaluating an expression. Example:
// "print foo + bar;"
type PrintStmt struct {
	Expression Expression
}

func (p PrintStmt) Accept(v StmtVisitor) any {
	return v.VisitPrintStmt(p)
}

// VarStmt declares a variable, optionally binding it to the value of
// Initializer.
type VarStmt struct {
	Name        token.Token
	Initializer Expression
}

func (varStmt VarStmt) Accept(v StmtVisitor) any {
	return v.VisitVarStmt(varStmt)
}

// BlockStmt is a brace-delimited list of statements executed in a
// nested scope.
type BlockStmt struct {
	Statements []Stmt
}

func (blockStmt BlockStmt) Accept(v StmtVisitor) any {
	return v.VisitBlockStmt(blockStmt)
}

// IfStmt conditionally executes Then, or Else when present and the
// condition is falsy.
type IfStmt struct {
	Condition Expression
	Then      Stmt
	Else      Stmt
}

func (ifStmt IfStmt) Accept(v StmtVisitor) any {
	return v.VisitIfStmt(ifStmt)
}

// WhileStmt re-executes Body for as long as Condition evaluates truthy.
type WhileStmt struct {
	Condition Expression
	Body      Stmt
}

func (whileStmt WhileStmt) Accept(v StmtVisitor) any {
	return v.VisitWhileStmt(whileStmt)
}
