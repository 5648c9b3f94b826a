package compiler_test

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theosovv/linen/internal/lang/bytecode"
	"github.com/theosovv/linen/internal/lang/compiler"
)

func TestCompileValidProgram(t *testing.T) {
	fn, err := compiler.Compile(`var a = 1; var b = 2; print a + b;`)
	require.NoError(t, err)
	require.NotNil(t, fn)
	assert.Equal(t, "", fn.Name)
	assert.NotEmpty(t, fn.Chunk.Code)
}

func TestCompileFunctionDeclaration(t *testing.T) {
	fn, err := compiler.Compile(`
		fn add(a, b) {
			return a + b;
		}
		print add(1, 2);
	`)
	require.NoError(t, err)
	require.NotNil(t, fn)
}

func TestCompileReturnOutsideFunctionIsError(t *testing.T) {
	_, err := compiler.Compile(`return 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "return")
}

func TestCompileUndeclaredLocalSelfReferenceIsError(t *testing.T) {
	_, err := compiler.Compile(`{ var a = a; }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "own initializer")
}

func TestCompileDuplicateLocalInSameScopeIsError(t *testing.T) {
	_, err := compiler.Compile(`{ var a = 1; var a = 2; }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already a variable")
}

func TestCompileAccumulatesMultipleErrors(t *testing.T) {
	_, err := compiler.Compile(`return 1; return 2;`)
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "expected a multierror-shaped error")
	assert.GreaterOrEqual(t, len(merr.Errors), 2)
}

func TestCompileInvalidAssignmentTargetIsError(t *testing.T) {
	_, err := compiler.Compile(`1 + 2 = 3;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid assignment")
}

func TestCompileConstantPoolHoldsLiterals(t *testing.T) {
	fn, err := compiler.Compile(`print "hi";`)
	require.NoError(t, err)
	found := false
	for _, c := range fn.Chunk.Constants {
		if c.IsString() && c.AsString() == "hi" {
			found = true
		}
	}
	assert.True(t, found, "expected the string constant 'hi' in the pool")
	_ = bytecode.Nil
}
