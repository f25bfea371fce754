package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opal-lang/pyfront/lexer"
	"github.com/opal-lang/pyfront/token"
)

func TestCommentToEndOfLineIgnored(t *testing.T) {
	items := lexer.Tokenize([]byte("x = 1 # comment here\ny = 2\n"))
	ks := kinds(t, items)
	assert.Equal(t, []token.Kind{
		token.IDENTIFIER, token.ASSIGN, token.DEC_INTEGER, token.NEWLINE,
		token.IDENTIFIER, token.ASSIGN, token.DEC_INTEGER, token.NEWLINE,
	}, ks)
}

func TestCommentOnlyLineProducesNoNewline(t *testing.T) {
	a := kinds(t, lexer.Tokenize([]byte("x = 1\n# just a comment\ny = 2\n")))
	b := kinds(t, lexer.Tokenize([]byte("x = 1\ny = 2\n")))
	assert.Equal(t, b, a)
}

func TestNonStructuralTokensStableAcrossBlankInsertion(t *testing.T) {
	base := lexer.Tokenize([]byte("x = 1\ny = 2\n"))
	padded := lexer.Tokenize([]byte("x = 1\n\n\n# comment\n\ny = 2\n"))

	var baseNonStructural, paddedNonStructural []token.Token
	for _, it := range base {
		if it.Err == nil && it.Tok.Kind != token.NEWLINE {
			baseNonStructural = append(baseNonStructural, it.Tok)
		}
	}
	for _, it := range padded {
		if it.Err == nil && it.Tok.Kind != token.NEWLINE {
			paddedNonStructural = append(paddedNonStructural, it.Tok)
		}
	}

	assert.Len(t, paddedNonStructural, len(baseNonStructural))
	for i := range baseNonStructural {
		assert.Equal(t, baseNonStructural[i].Kind, paddedNonStructural[i].Kind)
		assert.Equal(t, baseNonStructural[i].Payload, paddedNonStructural[i].Payload)
	}
}
