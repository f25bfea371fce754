package parser

import "fmt"

// ErrorKind enumerates the closed ParserError union from spec §7.
type ErrorKind int

const (
	InvalidSyntax ErrorKind = iota
	UnexpectedToken
	NonDefaultArgFollowsDefault
	PositionalArgAfterKeyword
	KeywordExpression
	UnexpectedEOF
)

var errorKindNames = [...]string{
	InvalidSyntax:               "invalid syntax",
	UnexpectedToken:             "unexpected token",
	NonDefaultArgFollowsDefault: "non-default argument follows default argument",
	PositionalArgAfterKeyword:   "positional argument follows keyword argument",
	KeywordExpression:           "keyword argument name must be a simple identifier",
	UnexpectedEOF:               "unexpected end of input",
}

func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a ParserError, surfaced as soon as the parser hits the first
// structural mismatch (spec §4.4, §4.5: no error recovery).
type Error struct {
	Kind ErrorKind
	Line int

	// Expected names what the grammar required at this point; Got is a
	// human-readable description of what was actually found. Both are
	// used only by UnexpectedToken.
	Expected string
	Got      string

	// Suggestion is a fuzzy-matched "did you mean" hint; empty when none
	// applies.
	Suggestion string

	// Filename is set by parser.WithFilename; empty when unset.
	Filename string
}

func (e *Error) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.Filename != "" {
		loc = fmt.Sprintf("%s:%d", e.Filename, e.Line)
	}
	var msg string
	switch e.Kind {
	case UnexpectedToken:
		msg = fmt.Sprintf("%s: expected %s, got %s", loc, e.Expected, e.Got)
	case UnexpectedEOF:
		msg = fmt.Sprintf("%s: unexpected end of input", loc)
	default:
		msg = fmt.Sprintf("%s: %s", loc, e.Kind)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}
