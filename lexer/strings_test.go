package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/pyfront/lexer"
	"github.com/opal-lang/pyfront/token"
)

func TestSimpleString(t *testing.T) {
	tok := tokenize1(t, "'hello'\n")
	assert.Equal(t, token.STRING, tok.Kind)
	assert.Equal(t, "hello", tok.Payload)
}

func TestTripleQuotedStringSpansLines(t *testing.T) {
	items := lexer.Tokenize([]byte("x = '''a\nb'''\n"))
	require.Nil(t, items[2].Err)
	assert.Equal(t, "a\nb", items[2].Tok.Payload)
}

func TestRawStringSuppressesEscapes(t *testing.T) {
	tok := tokenize1(t, `r'\n'` + "\n")
	assert.Equal(t, token.STRING, tok.Kind)
	assert.Equal(t, `\n`, tok.Payload)
}

func TestRawStringAllowsEscapedQuote(t *testing.T) {
	tok := tokenize1(t, `r'\''` + "\n")
	assert.Equal(t, token.STRING, tok.Kind)
	assert.Equal(t, `\'`, tok.Payload)
}

func TestByteStringDecoded(t *testing.T) {
	items := lexer.Tokenize([]byte(`b'''hello` + "\n" + `blah'''`))
	require.Nil(t, items[0].Err)
	assert.Equal(t, token.BYTES, items[0].Tok.Kind)
	assert.Equal(t, []byte("hello\nblah"), items[0].Tok.Bytes)
}

func TestByteStringNonASCIIRejected(t *testing.T) {
	items := lexer.Tokenize([]byte("b'é'\n"))
	require.NotNil(t, items[0].Err)
	assert.Equal(t, lexer.BytesNonASCII, items[0].Err.Kind)
}

func TestNamedUnicodeEscape(t *testing.T) {
	tok := tokenize1(t, `'\N{monkey}'`+"\n")
	assert.Equal(t, "🐒", tok.Payload)
}

func TestUnknownUnicodeNameIsError(t *testing.T) {
	items := lexer.Tokenize([]byte(`'\N{fhefaefi}'` + "\n"))
	require.NotNil(t, items[0].Err)
	assert.Equal(t, lexer.UnknownUnicodeName, items[0].Err.Kind)
	assert.Equal(t, "fhefaefi", items[0].Err.Detail)
}

func TestHexEscapeShort(t *testing.T) {
	items := lexer.Tokenize([]byte(`'\x1'` + "\n"))
	require.NotNil(t, items[0].Err)
	assert.Equal(t, lexer.HexEscapeShort, items[0].Err.Kind)
}

func TestUnterminatedString(t *testing.T) {
	items := lexer.Tokenize([]byte("'abc\n"))
	require.NotNil(t, items[0].Err)
	assert.Equal(t, lexer.UnterminatedString, items[0].Err.Kind)
}

func TestUnterminatedTripleString(t *testing.T) {
	items := lexer.Tokenize([]byte("'''abc\ndef"))
	require.NotNil(t, items[0].Err)
	assert.Equal(t, lexer.UnterminatedTripleString, items[0].Err.Kind)
}

func TestImplicitStringConcatenationAcrossExplicitJoin(t *testing.T) {
	// The lexer consumes the explicit join and emits the three pieces as
	// separate STRING tokens on one logical line; merging them into one
	// token is the joiner package's job.
	items := lexer.Tokenize([]byte("'abc' \"def\" \\\n'123'\n"))
	ks := kinds(t, items)
	require.Equal(t, []token.Kind{token.STRING, token.STRING, token.STRING, token.NEWLINE}, ks)
	assert.Equal(t, "abc", items[0].Tok.Payload)
	assert.Equal(t, "def", items[1].Tok.Payload)
	assert.Equal(t, "123", items[2].Tok.Payload)
}
