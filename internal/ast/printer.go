package ast

import (
	"encoding/json"
	"fmt"
)

// jsonPrinter implements ExpressionVisitor/StmtVisitor and builds a
// JSON-friendly representation of the tree using maps and slices. Each
// Visit method returns a value that can be marshaled directly.
type jsonPrinter struct{}

func (p jsonPrinter) VisitExpressionStmt(exprStmt ExpressionStmt) any {
	return map[string]any{
		"type":       "ExpressionStmt",
		"expression": exprStmt.Expression.Accept(p),
	}
}

func (p jsonPrinter) VisitPrintStmt(printStmt PrintStmt) any {
	return map[string]any{
		"type":       "PrintStmt",
		"expression": printStmt.Expression.Accept(p),
	}
}

func (p jsonPrinter) VisitVarStmt(varStmt VarStmt) any {
	return map[string]any{
		"type":        "VarStmt",
		"name":        varStmt.Name.Lexeme,
		"initializer": nilOrAccept(varStmt.Initializer, p),
	}
}

func (p jsonPrinter) VisitBlockStmt(blockStmt BlockStmt) any {
	stmts := make([]any, 0, len(blockStmt.Statements))
	for _, stmt := range blockStmt.Statements {
		stmts = append(stmts, stmt.Accept(p))
	}
	return map[string]any{
		"type":       "BlockStmt",
		"statements": stmts,
	}
}

func (p jsonPrinter) VisitWhileStmt(stmt WhileStmt) any {
	return map[string]any{
		"type":      "WhileStmt",
		"condition": stmt.Condition.Accept(p),
		"body":      stmt.Body.Accept(p),
	}
}

func (p jsonPrinter) VisitIfStmt(stmt IfStmt) any {
	var elseVal any
	if stmt.Else != nil {
		elseVal = stmt.Else.Accept(p)
	}
	return map[string]any{
		"type":      "IfStmt",
		"condition": stmt.Condition.Accept(p),
		"then":      stmt.Then.Accept(p),
		"else":      elseVal,
	}
}

func (p jsonPrinter) VisitLogicalExpression(expr Logical) any {
	return map[string]any{
		"type":     "Logical",
		"operator": expr.Operator.Lexeme,
		"left":     expr.Left.Accept(p),
		"right":    expr.Right.Accept(p),
	}
}

func (p jsonPrinter) VisitAssignExpression(assign Assign) any {
	return map[string]any{
		"type":  "Assign",
		"name":  assign.Name.Lexeme,
		"value": assign.Value.Accept(p),
	}
}

func (p jsonPrinter) VisitVariableExpression(variable Variable) any {
	return map[string]any{
		"type": "Variable",
		"name": variable.Name.Lexeme,
	}
}

func (p jsonPrinter) VisitBinary(b Binary) any {
	return map[string]any{
		"type":     "Binary",
		"operator": b.Operator.Lexeme,
		"left":     b.Left.Accept(p),
		"right":    b.Right.Accept(p),
	}
}

func (p jsonPrinter) VisitUnary(u Unary) any {
	return map[string]any{
		"type":     "Unary",
		"operator": u.Operator.Lexeme,
		"right":    u.Right.Accept(p),
	}
}

func (p jsonPrinter) VisitLiteral(l Literal) any {
	return l.Value
}

func (p jsonPrinter) VisitGrouping(g Grouping) any {
	return map[string]any{
		"type":       "Grouping",
		"expression": g.Expression.Accept(p),
	}
}

func nilOrAccept(expr Expression, p ExpressionVisitor) any {
	if expr == nil {
		return nil
	}
	return expr.Accept(p)
}

// PrintJSON renders statements as a prettified JSON string. The -tree
// driver mode does not call it.
func PrintJSON(statements []Stmt) (string, error) {
	printer := jsonPrinter{}
	out := make([]any, 0, len(statements))
	for _, s := range statements {
		out = append(out, s.Accept(printer))
	}
	bytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering ast json: %w", err)
	}
	return string(bytes), nil
}
