package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theosovv/linen/internal/lang/token"
)

func TestKeywords(t *testing.T) {
	for _, tc := range []struct {
		word string
		kind token.Kind
	}{
		{"and", token.And},
		{"fn", token.Fn},
		{"nil", token.Nil},
		{"while", token.While},
		{"print", token.Print},
	} {
		kind, ok := token.Keywords[tc.word]
		assert.True(t, ok, "expected %q to be a keyword", tc.word)
		assert.Equal(t, tc.kind, kind)
	}

	_, ok := token.Keywords["foobar"]
	assert.False(t, ok, "foobar should not be a reserved word")
}

func TestTokenString(t *testing.T) {
	tok := token.New(token.Number, "12.5", 3)
	assert.Equal(t, "NUMBER", tok.Kind.String())
	assert.Contains(t, tok.String(), "12.5")
	assert.Contains(t, tok.String(), "line=3")
}

func TestKindStringUnknown(t *testing.T) {
	var unknown token.Kind = 999
	assert.Contains(t, unknown.String(), "KIND(999)")
}
