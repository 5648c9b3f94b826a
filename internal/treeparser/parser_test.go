package treeparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theosovv/linen/internal/ast"
	"github.com/theosovv/linen/internal/treeparser"
)

func TestParseExpressionStatement(t *testing.T) {
	statements, errs := treeparser.ParseSource(`1 + 2;`)
	require.Empty(t, errs)
	require.Len(t, statements, 1)

	exprStmt, ok := statements[0].(ast.ExpressionStmt)
	require.True(t, ok)
	binary, ok := exprStmt.Expression.(ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", binary.Operator.Lexeme)
}

func TestParseVarDeclarationWithoutSemicolon(t *testing.T) {
	statements, errs := treeparser.ParseSource(`var total = 10`)
	require.Empty(t, errs)
	require.Len(t, statements, 1)

	varStmt, ok := statements[0].(ast.VarStmt)
	require.True(t, ok)
	assert.Equal(t, "total", varStmt.Name.Lexeme)
}

func TestParseIfElse(t *testing.T) {
	statements, errs := treeparser.ParseSource(`if (1 < 2) { print "a"; } else { print "b"; }`)
	require.Empty(t, errs)
	require.Len(t, statements, 1)

	ifStmt, ok := statements[0].(ast.IfStmt)
	require.True(t, ok)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestParseWhileLoop(t *testing.T) {
	statements, errs := treeparser.ParseSource(`while (1 < 2) { print 1; }`)
	require.Empty(t, errs)
	require.Len(t, statements, 1)

	_, ok := statements[0].(ast.WhileStmt)
	assert.True(t, ok)
}

func TestParseAssignmentToNonVariableIsError(t *testing.T) {
	_, errs := treeparser.ParseSource(`1 = 2;`)
	require.NotEmpty(t, errs)
}

func TestParseAndOrProduceLogical(t *testing.T) {
	statements, errs := treeparser.ParseSource(`print true and false or true;`)
	require.Empty(t, errs)
	require.Len(t, statements, 1)

	printStmt, ok := statements[0].(ast.PrintStmt)
	require.True(t, ok)
	_, ok = printStmt.Expression.(ast.Logical)
	assert.True(t, ok)
}

func TestParseUnterminatedBlockIsError(t *testing.T) {
	_, errs := treeparser.ParseSource(`{ print 1; `)
	require.NotEmpty(t, errs)
}
