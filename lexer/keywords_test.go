package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/pyfront/lexer"
	"github.com/opal-lang/pyfront/token"
)

func kinds(t *testing.T, items []lexer.Item) []token.Kind {
	t.Helper()
	ks := make([]token.Kind, 0, len(items))
	for _, it := range items {
		require.Nil(t, it.Err, "unexpected lexer error: %v", it.Err)
		ks = append(ks, it.Tok.Kind)
	}
	return ks
}

func TestKeywordsRecognized(t *testing.T) {
	items := lexer.Tokenize([]byte("if elif else while for in is not and or pass\n"))
	ks := kinds(t, items)
	assert.Equal(t, []token.Kind{
		token.IF, token.ELIF, token.ELSE, token.WHILE, token.FOR, token.IN,
		token.IS, token.NOT, token.AND, token.OR, token.PASS, token.NEWLINE,
	}, ks)
}

func TestAsyncAwaitAreIdentifiers(t *testing.T) {
	items := lexer.Tokenize([]byte("async def await\n"))
	require.Len(t, items, 4)
	assert.Equal(t, token.IDENTIFIER, items[0].Tok.Kind)
	assert.Equal(t, "async", items[0].Tok.Payload)
	assert.Equal(t, token.DEF, items[1].Tok.Kind)
	assert.Equal(t, token.IDENTIFIER, items[2].Tok.Kind)
	assert.Equal(t, "await", items[2].Tok.Payload)
}

func TestFourPassStatementsSeparatedBySemicolons(t *testing.T) {
	items := lexer.Tokenize([]byte("pass;pass;pass;pass\n"))
	ks := kinds(t, items)
	assert.Equal(t, []token.Kind{
		token.PASS, token.SEMICOLON, token.PASS, token.SEMICOLON,
		token.PASS, token.SEMICOLON, token.PASS, token.NEWLINE,
	}, ks)
}

func TestGlobalNameList(t *testing.T) {
	items := lexer.Tokenize([]byte("global var1, var2, var3\n"))
	ks := kinds(t, items)
	assert.Equal(t, []token.Kind{
		token.GLOBAL, token.IDENTIFIER, token.COMMA, token.IDENTIFIER,
		token.COMMA, token.IDENTIFIER, token.NEWLINE,
	}, ks)
}
