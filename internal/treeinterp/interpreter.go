// Package treeinterp evaluates the internal/ast tree directly, without
// compiling to bytecode. It is the non-core "alternative front end"
// reachable via cmd/linen -tree, kept for comparing against
// internal/lang/vm's behavior. It shares linen's value truthiness
// rules (nil and false are falsy, everything else is truthy) but has
// no functions, closures, or native callables of its own.
package treeinterp

import (
	"fmt"
	"strconv"

	"github.com/theosovv/linen/internal/ast"
	"github.com/theosovv/linen/internal/lang/token"
)

// Interpreter walks statements and evaluates expressions, one
// top-level environment per REPL/file run.
type Interpreter struct {
	environment *Environment
}

// New creates an Interpreter with an empty global environment.
func New() *Interpreter {
	return &Interpreter{environment: newEnvironment()}
}

// Interpret executes statements in order. A runtime error aborts the
// remaining statements and is returned to the caller; it never panics
// out of this call.
func (i *Interpreter) Interpret(statements []ast.Stmt) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = rerr
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()
	for _, stmt := range statements {
		stmt.Accept(i)
	}
	return nil
}

func (i *Interpreter) executeStmt(stmt ast.Stmt) {
	stmt.Accept(i)
}

// VisitBlockStmt runs Statements in a nested environment, restoring
// the enclosing one on the way out even if a panic unwinds through it.
func (i *Interpreter) VisitBlockStmt(blockStmt ast.BlockStmt) any {
	previous := i.environment
	i.environment = newNestedEnvironment(previous)
	defer func() { i.environment = previous }()

	for _, stmt := range blockStmt.Statements {
		i.executeStmt(stmt)
	}
	return nil
}

func (i *Interpreter) VisitExpressionStmt(exprStmt ast.ExpressionStmt) any {
	i.evaluate(exprStmt.Expression)
	return nil
}

func (i *Interpreter) VisitIfStmt(stmt ast.IfStmt) any {
	if i.isTruthy(i.evaluate(stmt.Condition)) {
		i.executeStmt(stmt.Then)
	} else if stmt.Else != nil {
		i.executeStmt(stmt.Else)
	}
	return nil
}

func (i *Interpreter) VisitWhileStmt(stmt ast.WhileStmt) any {
	for i.isTruthy(i.evaluate(stmt.Condition)) {
		i.executeStmt(stmt.Body)
	}
	return nil
}

func (i *Interpreter) VisitPrintStmt(printStmt ast.PrintStmt) any {
	value := i.evaluate(printStmt.Expression)
	fmt.Println(stringify(value))
	return nil
}

func (i *Interpreter) VisitVarStmt(varStmt ast.VarStmt) any {
	var value any
	if varStmt.Initializer != nil {
		value = i.evaluate(varStmt.Initializer)
	}
	i.environment.define(varStmt.Name.Lexeme, value)
	return nil
}

func (i *Interpreter) VisitAssignExpression(assign ast.Assign) any {
	value := i.evaluate(assign.Value)
	if err := i.environment.assign(assign.Name, value); err != nil {
		panic(err)
	}
	return value
}

func (i *Interpreter) VisitLogicalExpression(logical ast.Logical) any {
	left := i.evaluate(logical.Left)
	if logical.Operator.Kind == token.Or {
		if i.isTruthy(left) {
			return left
		}
	} else if !i.isTruthy(left) {
		return left
	}
	return i.evaluate(logical.Right)
}

func (i *Interpreter) VisitBinary(binary ast.Binary) any {
	left := i.evaluate(binary.Left)
	right := i.evaluate(binary.Right)
	op := binary.Operator

	switch op.Kind {
	case token.Star:
		l, r := i.numericOperands(op, left, right)
		return l * r
	case token.Slash:
		// IEEE 754 division: x/0 yields +-Inf, matching internal/lang/vm's
		// OpDivide, which does not special-case a zero divisor either.
		l, r := i.numericOperands(op, left, right)
		return l / r
	case token.Minus:
		l, r := i.numericOperands(op, left, right)
		return l - r
	case token.Plus:
		ls, lok := left.(string)
		rs, rok := right.(string)
		if lok && rok {
			return ls + rs
		}
		l, r := i.numericOperands(op, left, right)
		return l + r
	case token.EqualEqual:
		return left == right
	case token.BangEqual:
		return left != right
	case token.Greater:
		l, r := i.numericOperands(op, left, right)
		return l > r
	case token.GreaterEqual:
		l, r := i.numericOperands(op, left, right)
		return l >= r
	case token.Less:
		l, r := i.numericOperands(op, left, right)
		return l < r
	case token.LessEqual:
		l, r := i.numericOperands(op, left, right)
		return l <= r
	default:
		panic(newRuntimeError(op.Line, fmt.Sprintf("operator %q not supported", op.Lexeme)))
	}
}

func (i *Interpreter) VisitUnary(unary ast.Unary) any {
	right := i.evaluate(unary.Right)
	switch unary.Operator.Kind {
	case token.Minus:
		value, ok := asFloat(right)
		if !ok {
			panic(newRuntimeError(unary.Operator.Line, "operand must be a number"))
		}
		return -value
	case token.Bang:
		return !i.isTruthy(right)
	default:
		panic(newRuntimeError(unary.Operator.Line, fmt.Sprintf("operator %q not supported for unary expressions", unary.Operator.Lexeme)))
	}
}

func (i *Interpreter) VisitVariableExpression(variable ast.Variable) any {
	value, err := i.environment.get(variable.Name)
	if err != nil {
		panic(err)
	}
	return value
}

func (i *Interpreter) VisitLiteral(literal ast.Literal) any {
	return literal.Value
}

func (i *Interpreter) VisitGrouping(grouping ast.Grouping) any {
	return i.evaluate(grouping.Expression)
}

func (i *Interpreter) evaluate(expr ast.Expression) any {
	return expr.Accept(i)
}

// isTruthy matches bytecode.Value.IsTruthy: nil and false are falsy,
// everything else (including 0 and "") is truthy.
func (i *Interpreter) isTruthy(value any) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

func (i *Interpreter) numericOperands(op token.Token, left, right any) (float64, float64) {
	l, lok := asFloat(left)
	r, rok := asFloat(right)
	if !lok || !rok {
		panic(newRuntimeError(op.Line, fmt.Sprintf("operands must be numbers for %q", op.Lexeme)))
	}
	return l, r
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func stringify(value any) string {
	if value == nil {
		return "nil"
	}
	if s, ok := value.(string); ok {
		return s
	}
	if f, ok := value.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", value)
}
