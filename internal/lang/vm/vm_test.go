package vm_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theosovv/linen/internal/lang/compiler"
	"github.com/theosovv/linen/internal/lang/vm"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it, the way PRINT's output is observed in
// original_source/'s own exec tests.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	original := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = original }()

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func runSource(t *testing.T, source string) (string, error) {
	t.Helper()
	fn, err := compiler.Compile(source)
	require.NoError(t, err)

	machine := vm.New()
	var runErr error
	out := captureStdout(t, func() {
		runErr = machine.Run(fn)
	})
	return out, runErr
}

func TestArithmeticAndPrint(t *testing.T) {
	out, err := runSource(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := runSource(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestGlobalsPersistAcrossDeclarations(t *testing.T) {
	out, err := runSource(t, `var a = 10; a = a + 5; print a;`)
	require.NoError(t, err)
	assert.Equal(t, "15\n", out)
}

func TestIfElseBranching(t *testing.T) {
	out, err := runSource(t, `if (1 < 2) { print "yes"; } else { print "no"; }`)
	require.NoError(t, err)
	assert.Equal(t, "yes\n", out)
}

func TestWhileLoopSum(t *testing.T) {
	out, err := runSource(t, `
		var i = 0;
		var sum = 0;
		while (i < 5) {
			sum = sum + i;
			i = i + 1;
		}
		print sum;
	`)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestForLoopSum(t *testing.T) {
	out, err := runSource(t, `
		var sum = 0;
		for (var i = 0; i < 5; i = i + 1) {
			sum = sum + i;
		}
		print sum;
	`)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestFunctionCallAndReturn(t *testing.T) {
	out, err := runSource(t, `
		fn add(a, b) {
			return a + b;
		}
		print add(2, 3);
	`)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestRecursiveFibonacci(t *testing.T) {
	out, err := runSource(t, `
		fn fib(n) {
			if (n < 2) {
				return n;
			}
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	require.NoError(t, err)
	assert.Equal(t, "55\n", out)
}

func TestUndefinedGlobalGetIsRuntimeError(t *testing.T) {
	_, err := runSource(t, `print missing;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined variable")
}

func TestUndefinedGlobalSetRollsBackInsertion(t *testing.T) {
	machine := vm.New()

	fn, err := compiler.Compile(`missing = 1;`)
	require.NoError(t, err)
	err = machine.Run(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined variable")

	// The failed write must not leave a "missing" global behind.
	fn, err = compiler.Compile(`print missing;`)
	require.NoError(t, err)
	err = machine.Run(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined variable")
}

func TestDivisionByZeroIsNotSpecialCased(t *testing.T) {
	out, err := runSource(t, `print 1 / 0;`)
	require.NoError(t, err)
	assert.Equal(t, "inf\n", out)
}

func TestTypeMismatchOnArithmeticIsRuntimeError(t *testing.T) {
	_, err := runSource(t, `print 1 + true;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operands must be")
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := runSource(t, `var a = 1; a();`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can only call functions")
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, err := runSource(t, `
		fn add(a, b) { return a + b; }
		add(1);
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 arguments")
}

func TestClockNativeReturnsNumber(t *testing.T) {
	out, err := runSource(t, `print clock() >= 0;`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestVMReusableAcrossRunsKeepsGlobals(t *testing.T) {
	machine := vm.New()

	fn1, err := compiler.Compile(`var counter = 1;`)
	require.NoError(t, err)
	require.NoError(t, machine.Run(fn1))

	fn2, err := compiler.Compile(`print counter;`)
	require.NoError(t, err)
	out := captureStdout(t, func() {
		require.NoError(t, machine.Run(fn2))
	})
	assert.Equal(t, "1\n", out)
}
