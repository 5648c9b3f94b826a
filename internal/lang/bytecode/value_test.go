package bytecode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theosovv/linen/internal/lang/bytecode"
)

func TestTruthiness(t *testing.T) {
	for _, tc := range []struct {
		name  string
		value bytecode.Value
		want  bool
	}{
		{"nil", bytecode.Nil, false},
		{"false", bytecode.Bool(false), false},
		{"true", bytecode.Bool(true), true},
		{"zero", bytecode.Number(0), true},
		{"empty string", bytecode.Object(bytecode.NewString("")), true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.value.IsTruthy())
		})
	}
}

func TestEqual(t *testing.T) {
	a := bytecode.Object(bytecode.NewString("hi"))
	b := bytecode.Object(bytecode.NewString("hi"))
	assert.True(t, bytecode.Equal(a, b), "equal-content strings should compare equal")

	assert.True(t, bytecode.Equal(bytecode.Number(1), bytecode.Number(1)))
	assert.False(t, bytecode.Equal(bytecode.Number(1), bytecode.Bool(true)), "different tags never equal")
	assert.True(t, bytecode.Equal(bytecode.Nil, bytecode.Nil))
}

func TestValueStringRendering(t *testing.T) {
	assert.Equal(t, "nil", bytecode.Nil.String())
	assert.Equal(t, "true", bytecode.Bool(true).String())
	assert.Equal(t, "false", bytecode.Bool(false).String())
	assert.Equal(t, "3", bytecode.Number(3).String())
	assert.Equal(t, "3.5", bytecode.Number(3.5).String())

	fn := bytecode.NewFunction()
	fn.Name = "add"
	assert.Equal(t, "<add>", bytecode.Object(fn).String())

	script := bytecode.NewFunction()
	assert.Equal(t, "<main>", bytecode.Object(script).String())

	native := bytecode.NewNative("clock", func(int, []bytecode.Value) (bytecode.Value, error) {
		return bytecode.Nil, nil
	})
	assert.Equal(t, "<native clock>", bytecode.Object(native).String())
}

func TestObjStringInterning(t *testing.T) {
	a := bytecode.NewString("shared")
	b := bytecode.NewString("shared")
	assert.Equal(t, a.Chars, b.Chars)
	assert.Equal(t, a.Hash, b.Hash)
	assert.Equal(t, bytecode.FNV1a32("shared"), a.Hash)
}

func TestIsCallable(t *testing.T) {
	fn := bytecode.Object(bytecode.NewFunction())
	require.True(t, fn.IsCallable())

	native := bytecode.Object(bytecode.NewNative("clock", nil))
	require.True(t, native.IsCallable())

	assert.False(t, bytecode.Number(1).IsCallable())
}
