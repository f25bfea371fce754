package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/pyfront/lexer"
	"github.com/opal-lang/pyfront/token"
)

func TestMaximalMunchOperators(t *testing.T) {
	items := lexer.Tokenize([]byte("a **= b // c <<= d\n"))
	ks := kinds(t, items)
	assert.Equal(t, []token.Kind{
		token.IDENTIFIER, token.DOUBLESTAR_ASSIGN, token.IDENTIFIER,
		token.DOUBLESLASH, token.IDENTIFIER, token.LSHIFT_ASSIGN,
		token.IDENTIFIER, token.NEWLINE,
	}, ks)
}

func TestEllipsisVsDots(t *testing.T) {
	tok := tokenize1(t, "...\n")
	assert.Equal(t, token.ELLIPSIS, tok.Kind)
}

func TestBareBangIsInvalidSymbol(t *testing.T) {
	items := lexer.Tokenize([]byte("a ! b\n"))
	var found bool
	for _, it := range items {
		if it.Err != nil && it.Err.Kind == lexer.InvalidSymbol && it.Err.Detail == "!" {
			found = true
		}
	}
	require.True(t, found)
}

func TestUnknownCharacterIsInvalidCharacter(t *testing.T) {
	items := lexer.Tokenize([]byte("a $ b\n"))
	var found bool
	for _, it := range items {
		if it.Err != nil && it.Err.Kind == lexer.InvalidCharacter {
			found = true
		}
	}
	require.True(t, found)
}

func TestArrowAndColon(t *testing.T) {
	items := lexer.Tokenize([]byte("def f() -> int: pass\n"))
	ks := kinds(t, items)
	assert.Contains(t, ks, token.ARROW)
	assert.Contains(t, ks, token.COLON)
}
