package lexer

import "github.com/opal-lang/pyfront/token"

// Item is one element of the lazy (line, Result<Token, LexerError>) sequence
// produced by the core tokenizer. Exactly one of Err or a valid Tok is
// meaningful per item; Err is non-nil for a LexerError. End of stream is
// represented by Next returning ok=false, not by a sentinel Item.
type Item struct {
	Line int
	Tok  token.Token
	Err  *Error
}
