package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theosovv/linen/internal/lang/scanner"
	"github.com/theosovv/linen/internal/lang/token"
)

func scanAll(t *testing.T, source string) []token.Token {
	t.Helper()
	sc := scanner.New(source)
	var tokens []token.Token
	for {
		tok := sc.Scan()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func TestScanPunctuationAndOperators(t *testing.T) {
	tokens := scanAll(t, "(){};,.-+/*!= == <= >=")
	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Semicolon, token.Comma, token.Dot, token.Minus, token.Plus,
		token.Slash, token.Star, token.BangEqual, token.EqualEqual,
		token.LessEqual, token.GreaterEqual, token.EOF,
	}, kinds)
}

func TestScanNumbers(t *testing.T) {
	tokens := scanAll(t, "123 45.67")
	require.Len(t, tokens, 3)
	assert.Equal(t, token.Number, tokens[0].Kind)
	assert.Equal(t, "123", tokens[0].Lexeme)
	assert.Equal(t, token.Number, tokens[1].Kind)
	assert.Equal(t, "45.67", tokens[1].Lexeme)
}

func TestScanIdentifiersAndKeywords(t *testing.T) {
	tokens := scanAll(t, "var total fn")
	require.Len(t, tokens, 4)
	assert.Equal(t, token.Var, tokens[0].Kind)
	assert.Equal(t, token.Identifier, tokens[1].Kind)
	assert.Equal(t, "total", tokens[1].Lexeme)
	assert.Equal(t, token.Fn, tokens[2].Kind)
}

func TestScanStringLiteral(t *testing.T) {
	tokens := scanAll(t, `"hello world"`)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.String, tokens[0].Kind)
	assert.Equal(t, `"hello world"`, tokens[0].Lexeme)
}

func TestScanUnterminatedString(t *testing.T) {
	tokens := scanAll(t, `"oops`)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.Error, tokens[0].Kind)
	assert.Equal(t, "unterminated string", tokens[0].Lexeme)
}

func TestScanSkipsLineComments(t *testing.T) {
	tokens := scanAll(t, "1 // this is ignored\n+ 2")
	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{token.Number, token.Plus, token.Number, token.EOF}, kinds)
}

func TestScanTracksLineNumbers(t *testing.T) {
	tokens := scanAll(t, "1\n2\n3")
	require.Len(t, tokens, 4)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 3, tokens[2].Line)
}

func TestScanUnexpectedCharacter(t *testing.T) {
	tokens := scanAll(t, "@")
	require.Len(t, tokens, 2)
	assert.Equal(t, token.Error, tokens[0].Kind)
}
