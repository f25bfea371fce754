// Package joiner implements the lazy string/byte-string concatenation
// adapter from spec §4.3: a single sequence stage layered on top of the
// core tokenizer that merges runs of adjacent same-kind literal tokens
// (String with String, Bytes with Bytes) into one.
package joiner

import (
	"github.com/opal-lang/pyfront/lexer"
	"github.com/opal-lang/pyfront/multipeek"
	"github.com/opal-lang/pyfront/token"
)

// Joiner wraps a lexer item source and merges adjacent String tokens into
// one String, and adjacent Bytes tokens into one Bytes. Tokens of any
// other kind, and lexer errors, pass through unchanged. Mixing a String
// next to a Bytes token is deliberately not merged at this layer (spec
// §4.2 "Implicit literal concatenation").
type Joiner struct {
	buf *multipeek.Buffer[lexer.Item]
}

// New wraps src in a Joiner.
func New(src multipeek.Source[lexer.Item]) *Joiner {
	return &Joiner{buf: multipeek.New(src)}
}

// Next implements multipeek.Source[lexer.Item].
func (j *Joiner) Next() (lexer.Item, bool) {
	it, ok := j.buf.Next()
	if !ok || it.Err != nil {
		return it, ok
	}

	switch it.Tok.Kind {
	case token.STRING:
		payload := it.Tok.Payload
		for {
			nxt, ok2 := j.buf.Peek()
			if !ok2 || nxt.Err != nil || nxt.Tok.Kind != token.STRING {
				break
			}
			j.buf.Next()
			payload += nxt.Tok.Payload
		}
		it.Tok.Payload = payload
		return it, true

	case token.BYTES:
		data := append([]byte(nil), it.Tok.Bytes...)
		for {
			nxt, ok2 := j.buf.Peek()
			if !ok2 || nxt.Err != nil || nxt.Tok.Kind != token.BYTES {
				break
			}
			j.buf.Next()
			data = append(data, nxt.Tok.Bytes...)
		}
		it.Tok.Bytes = data
		return it, true

	default:
		return it, true
	}
}
