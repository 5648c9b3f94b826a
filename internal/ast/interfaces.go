// interfaces.go holds the visitor interfaces that any code traversing
// the tree (interpreter, printer) must implement, plus the Expression
// and Stmt marker interfaces the node types satisfy.

package ast

// ExpressionVisitor is the interface for operating on all Expression
// nodes. Any type that wants to perform an operation on expressions
// (an interpreter, an AST printer) implements this.
type ExpressionVisitor interface {
	VisitBinary(binary Binary) any
	VisitUnary(unary Unary) any
	VisitLiteral(literal Literal) any
	VisitGrouping(grouping Grouping) any
	VisitVariableExpression(variable Variable) any
	VisitAssignExpression(assign Assign) any
	VisitLogicalExpression(logical Logical) any
}

// StmtVisitor is the interface for operating on all Stmt nodes. Like
// ExpressionVisitor, it defines one Visit method per statement type.
type StmtVisitor interface {
	VisitExpressionStmt(exprStmt ExpressionStmt) any
	VisitPrintStmt(printStmt PrintStmt) any
	VisitVarStmt(varStmt VarStmt) any
	VisitBlockStmt(blockStmt BlockStmt) any
	VisitIfStmt(stmt IfStmt) any
	VisitWhileStmt(stmt WhileStmt) any
}
