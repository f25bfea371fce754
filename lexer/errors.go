package lexer

import "fmt"

// ErrorKind enumerates the closed LexerError union from spec §7.
type ErrorKind int

const (
	BadLineContinuation ErrorKind = iota
	UnterminatedString
	UnterminatedTripleString
	InvalidCharacter
	MisalignedDedent
	HexEscapeShort
	MalformedUnicodeEscape
	MalformedNamedUnicodeEscape
	UnknownUnicodeName
	BytesNonASCII
	MissingDigits
	MalformedFloat
	MalformedImaginary
	InvalidSymbol
	Internal
)

var errorKindNames = [...]string{
	BadLineContinuation:         "bad line continuation",
	UnterminatedString:          "unterminated string literal",
	UnterminatedTripleString:    "unterminated triple-quoted string literal",
	InvalidCharacter:            "invalid character",
	MisalignedDedent:            "dedent does not match any outer indentation level",
	HexEscapeShort:              "truncated \\x escape",
	MalformedUnicodeEscape:      "malformed \\u/\\U escape",
	MalformedNamedUnicodeEscape: "malformed \\N{...} escape",
	UnknownUnicodeName:          "unknown Unicode character name",
	BytesNonASCII:               "bytes literal with non-ASCII byte",
	MissingDigits:               "missing digits after numeric base prefix",
	MalformedFloat:              "malformed float literal",
	MalformedImaginary:          "malformed imaginary literal",
	InvalidSymbol:               "invalid symbol",
	Internal:                    "internal lexer error",
}

func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a LexerError: a typed failure paired with the line it occurred
// on (spec §7). Detail carries the offending text for kinds that embed a
// payload (InvalidCharacter, InvalidSymbol, UnknownUnicodeName).
type Error struct {
	Kind   ErrorKind
	Line   int
	Detail string

	// Filename is set by a driver (SPEC_FULL §4.6 parser.WithFilename) that
	// knows the source's path; empty when the lexer was used standalone.
	Filename string
}

func (e *Error) Error() string {
	var msg string
	if e.Filename != "" {
		msg = fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, e.Kind)
	} else {
		msg = fmt.Sprintf("line %d: %s", e.Line, e.Kind)
	}
	if e.Detail != "" {
		msg += fmt.Sprintf(": %s", e.Detail)
	}
	return msg
}
