package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opal-lang/pyfront/lexer"
	"github.com/opal-lang/pyfront/token"
)

func TestBracketSuppressesNewlineAndIndent(t *testing.T) {
	src := "   (1 + \n   (   2 \n + 9 \n ) * \n      2 \n )\n2"
	items := lexer.Tokenize([]byte(src))

	depth := 0
	for _, it := range items {
		if it.Err != nil {
			continue
		}
		switch it.Tok.Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.NEWLINE, token.INDENT, token.DEDENT:
			require.Equal(t, 0, depth, "structural token emitted while bracket depth > 0")
		}
	}
	require.Equal(t, 0, depth, "unbalanced brackets at EOF")
}

func TestExplicitLineJoinAcrossBackslash(t *testing.T) {
	items := lexer.Tokenize([]byte("x = 1 + \\\n    2\n"))
	for _, it := range items {
		require.Nil(t, it.Err)
	}
	ks := kinds(t, items)
	require.Equal(t, []token.Kind{
		token.IDENTIFIER, token.ASSIGN, token.DEC_INTEGER, token.PLUS,
		token.DEC_INTEGER, token.NEWLINE,
	}, ks)
}

func TestBareBackslashNotFollowedByNewlineIsError(t *testing.T) {
	items := lexer.Tokenize([]byte("x = 1 \\ 2\n"))
	var sawErr bool
	for _, it := range items {
		if it.Err != nil && it.Err.Kind == lexer.BadLineContinuation {
			sawErr = true
		}
	}
	require.True(t, sawErr)
}
