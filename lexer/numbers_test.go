package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/pyfront/lexer"
	"github.com/opal-lang/pyfront/token"
)

func tokenize1(t *testing.T, src string) token.Token {
	t.Helper()
	items := lexer.Tokenize([]byte(src))
	require.NotEmpty(t, items)
	require.Nil(t, items[0].Err, "%v", items[0].Err)
	return items[0].Tok
}

func TestDecimalInteger(t *testing.T) {
	tok := tokenize1(t, "42\n")
	assert.Equal(t, token.DEC_INTEGER, tok.Kind)
	assert.Equal(t, "42", tok.Payload)
}

func TestLeadingZerosCollapseToZero(t *testing.T) {
	tok := tokenize1(t, "000\n")
	assert.Equal(t, token.DEC_INTEGER, tok.Kind)
}

func TestLeadingZeroFollowedByNonzeroIsMalformedFloat(t *testing.T) {
	items := lexer.Tokenize([]byte("007\n"))
	require.NotNil(t, items[0].Err)
	assert.Equal(t, lexer.MalformedFloat, items[0].Err.Kind)
}

func TestHexOctBinPrefixes(t *testing.T) {
	tok := tokenize1(t, "0x1F\n")
	assert.Equal(t, token.HEX_INTEGER, tok.Kind)
	assert.Equal(t, "0x1F", tok.Payload)

	tok = tokenize1(t, "0o17\n")
	assert.Equal(t, token.OCT_INTEGER, tok.Kind)

	tok = tokenize1(t, "0b101\n")
	assert.Equal(t, token.BIN_INTEGER, tok.Kind)
}

func TestMissingDigitsAfterBasePrefix(t *testing.T) {
	items := lexer.Tokenize([]byte("0x\n"))
	require.NotNil(t, items[0].Err)
	assert.Equal(t, lexer.MissingDigits, items[0].Err.Kind)
}

func TestFloatForms(t *testing.T) {
	for _, src := range []string{"1.5\n", ".5\n", "5.\n", "1e10\n", "1.5e-3\n"} {
		tok := tokenize1(t, src)
		assert.Equal(t, token.FLOAT, tok.Kind, "src=%q", src)
	}
}

func TestImaginaryLiteral(t *testing.T) {
	tok := tokenize1(t, "3j\n")
	assert.Equal(t, token.IMAGINARY, tok.Kind)

	tok = tokenize1(t, "3.5j\n")
	assert.Equal(t, token.IMAGINARY, tok.Kind)
}

func TestMalformedFloatExponent(t *testing.T) {
	items := lexer.Tokenize([]byte("1e\n"))
	require.NotNil(t, items[0].Err)
	assert.Equal(t, lexer.MalformedFloat, items[0].Err.Kind)
}
