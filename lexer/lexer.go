// Package lexer implements the core tokenizer: a lazy, pull-based producer
// of (line, Token-or-LexerError) items driven by the indentation and
// implicit/explicit line-joining rules of the source language. It never
// panics on malformed input — every failure surfaces as an *Error paired
// with the line it occurred on, and scanning resumes at the next character
// boundary so a single pass can report more than one error.
package lexer

import (
	"github.com/opal-lang/pyfront/internal/invariant"
	"github.com/opal-lang/pyfront/token"
)

// Lexer pulls Items on demand from a fully materialised rune slice. It
// owns the indentation stack, the open-bracket depth, and the current line
// number; nothing here is safe for concurrent use, matching the
// single-threaded pipeline the front end runs in.
type Lexer struct {
	runes []rune
	pos   int
	line  int

	indentStack  []int
	bracketDepth int
	atLineStart  bool
	tabWidth     int

	queue []Item
	done  bool
}

// Option configures a Lexer at construction time, following the teacher's
// functional-options pattern (runtime/parser.ParserOpt).
type Option func(*Lexer)

// WithTabWidth overrides the column width a tab expands to (default 8, per
// spec.md §4.2) for embedders that pre-expand tabs differently.
func WithTabWidth(width int) Option {
	return func(l *Lexer) {
		if width > 0 {
			l.tabWidth = width
		}
	}
}

// New creates a Lexer over src, ready to produce tokens starting at line 1.
func New(src []byte, opts ...Option) *Lexer {
	l := &Lexer{
		runes:       []rune(string(src)),
		line:        1,
		indentStack: []int{0},
		atLineStart: true,
		tabWidth:    8,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Next implements multipeek.Source[Item]: it returns the next item and
// whether one was available. Once it returns false, it keeps returning
// false.
func (l *Lexer) Next() (Item, bool) {
	for len(l.queue) == 0 {
		if l.done {
			return Item{}, false
		}
		l.produce()
	}
	it := l.queue[0]
	l.queue = l.queue[1:]
	return it, true
}

func (l *Lexer) emit(line int, tok token.Token) {
	tok.Line = line
	l.queue = append(l.queue, Item{Line: line, Tok: tok})
}

func (l *Lexer) fail(line int, err *Error) {
	err.Line = line
	l.queue = append(l.queue, Item{Line: line, Err: err})
}

// produce advances the scan by at least one step, appending zero or more
// items to the queue. Call it in a loop until the queue is non-empty or
// done is set.
func (l *Lexer) produce() {
	if l.pos >= len(l.runes) {
		l.flushEOF()
		return
	}
	if l.atLineStart && l.bracketDepth == 0 {
		l.scanLineStart()
		return
	}
	l.scanToken()
}

// scanLineStart consumes leading indentation at a logical-line boundary
// and reconciles it against the indent stack (spec: indentation FSM).
// Blank and comment-only lines are discarded without touching the stack.
func (l *Lexer) scanLineStart() {
	runes := l.runes
	n := len(runes)

	col := 0
	p := l.pos
	for p < n {
		switch runes[p] {
		case ' ':
			col++
			p++
		case '\t':
			col += l.tabWidth - (col % l.tabWidth)
			p++
		case '\f':
			p++
		default:
			goto scanned
		}
	}
scanned:
	blank := p >= n || runes[p] == '\n' || runes[p] == '\r' || runes[p] == '#'
	l.pos = p
	if blank {
		l.skipBlankLine()
		return
	}

	top := l.indentStack[len(l.indentStack)-1]
	switch {
	case col > top:
		l.indentStack = append(l.indentStack, col)
		l.emit(l.line, token.Token{Kind: token.INDENT})
	case col < top:
		popped := 0
		for len(l.indentStack) > 1 && l.indentStack[len(l.indentStack)-1] > col {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			popped++
		}
		if l.indentStack[len(l.indentStack)-1] != col {
			l.fail(l.line, &Error{Kind: MisalignedDedent})
		}
		for i := 0; i < popped; i++ {
			l.emit(l.line, token.Token{Kind: token.DEDENT})
		}
	}
	invariant.Invariant(len(l.indentStack) > 0, "indent stack must never empty")
	l.atLineStart = false
}

// skipBlankLine consumes a comment and/or the line terminator found by
// scanLineStart, without emitting anything or touching the indent stack.
func (l *Lexer) skipBlankLine() {
	runes := l.runes
	n := len(runes)
	if l.pos < n && runes[l.pos] == '#' {
		for l.pos < n && runes[l.pos] != '\n' {
			l.pos++
		}
	}
	if l.pos < n {
		if runes[l.pos] == '\r' {
			l.pos++
			if l.pos < n && runes[l.pos] == '\n' {
				l.pos++
			}
		} else if runes[l.pos] == '\n' {
			l.pos++
		}
		l.line++
	}
}

// scanToken scans everything that can appear mid logical-line: intra-line
// whitespace, comments, explicit line joins, the newline that terminates a
// logical line (or is swallowed under an open bracket), and exactly one
// real token, which it appends to the queue before returning.
func (l *Lexer) scanToken() {
	runes := l.runes
	n := len(runes)

	for l.pos < n {
		r := runes[l.pos]
		switch {
		case r == ' ' || r == '\t' || r == '\f':
			l.pos++
		case r == '\\':
			if l.consumeExplicitJoin() {
				continue
			}
			l.fail(l.line, &Error{Kind: BadLineContinuation})
			l.pos++
		case r == '#':
			for l.pos < n && runes[l.pos] != '\n' {
				l.pos++
			}
		case r == '\r' || r == '\n':
			l.scanNewline()
			return
		default:
			l.scanReal()
			return
		}
	}
}

// consumeExplicitJoin consumes a backslash immediately followed by a line
// terminator, reporting whether it did.
func (l *Lexer) consumeExplicitJoin() bool {
	runes := l.runes
	n := len(runes)
	if l.pos+1 >= n {
		return false
	}
	switch runes[l.pos+1] {
	case '\n':
		l.pos += 2
		l.line++
		return true
	case '\r':
		l.pos += 2
		if l.pos < n && runes[l.pos] == '\n' {
			l.pos++
		}
		l.line++
		return true
	}
	return false
}

// scanNewline handles a bare CR, LF, or CRLF mid-scan: swallowed silently
// while a bracket is open (implicit join), otherwise it closes the
// logical line.
func (l *Lexer) scanNewline() {
	runes := l.runes
	n := len(runes)
	crlf := runes[l.pos] == '\r' && l.pos+1 < n && runes[l.pos+1] == '\n'

	if l.bracketDepth > 0 {
		l.pos++
		if crlf {
			l.pos++
		}
		l.line++
		return
	}

	lineNo := l.line
	l.pos++
	if crlf {
		l.pos++
	}
	l.emit(lineNo, token.Token{Kind: token.NEWLINE})
	l.line++
	l.atLineStart = true
}

// scanReal dispatches the single non-trivial token starting at l.pos to
// the appropriate literal or operator scanner.
func (l *Lexer) scanReal() {
	runes := l.runes
	n := len(runes)
	startLine := l.line
	r := runes[l.pos]

	switch {
	case isDigit(r) || (r == '.' && l.pos+1 < n && isDigit(runes[l.pos+1])):
		tok, next, err := scanNumber(runes, l.pos)
		l.pos = next
		if err != nil {
			l.fail(startLine, err)
			return
		}
		l.emit(startLine, tok)

	case isIdentStart(r):
		if prefixLen, _, _, ok := classifyStringPrefix(runes, l.pos); ok && prefixLen > 0 {
			l.scanLiteralString(startLine)
			return
		}
		l.scanIdentifier(startLine)

	case isQuoteRune(r):
		l.scanLiteralString(startLine)

	default:
		l.scanOperator(startLine)
	}
}

func (l *Lexer) scanIdentifier(startLine int) {
	runes := l.runes
	n := len(runes)
	p := l.pos + 1
	for p < n && isIdentContinue(runes[p]) {
		p++
	}
	text := string(runes[l.pos:p])
	l.pos = p

	if kind, isKw := token.IsKeyword(text); isKw {
		l.emit(startLine, token.Token{Kind: kind})
		return
	}
	l.emit(startLine, token.Token{Kind: token.IDENTIFIER, Payload: text})
}

func (l *Lexer) scanLiteralString(startLine int) {
	tok, next, newlines, err := scanStringOrBytes(l.runes, l.pos)
	l.pos = next
	l.line += newlines
	if err != nil {
		l.fail(startLine, err)
		return
	}
	l.emit(startLine, tok)
}

func (l *Lexer) scanOperator(startLine int) {
	runes := l.runes
	if kind, consumed, ok := matchOperator(runes, l.pos); ok {
		l.pos += consumed
		switch kind {
		case token.LPAREN, token.LSQUARE, token.LBRACE:
			l.bracketDepth++
		case token.RPAREN, token.RSQUARE, token.RBRACE:
			if l.bracketDepth > 0 {
				l.bracketDepth--
			}
		}
		invariant.NotNegative(l.bracketDepth, "bracketDepth")
		l.emit(startLine, token.Token{Kind: kind})
		return
	}

	r := runes[l.pos]
	if r == '!' {
		l.fail(startLine, &Error{Kind: InvalidSymbol, Detail: "!"})
		l.pos++
		return
	}
	l.fail(startLine, &Error{Kind: InvalidCharacter, Detail: string(r)})
	l.pos++
}

// flushEOF emits a trailing Newline for an unterminated final logical line
// and then one Dedent per indentation level still on the stack, matching
// spec's end-of-stream contract.
func (l *Lexer) flushEOF() {
	if !l.atLineStart && l.bracketDepth == 0 {
		l.emit(l.line, token.Token{Kind: token.NEWLINE})
	}
	for len(l.indentStack) > 1 {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		l.emit(l.line, token.Token{Kind: token.DEDENT})
	}
	l.done = true
}

// Tokenize eagerly drains a Lexer, collecting every item (tokens and
// errors alike) rather than stopping at the first failure — the mode the
// CLI's `tokens`/`check` commands and direct lexer tests use.
func Tokenize(src []byte) []Item {
	l := New(src)
	var items []Item
	for {
		it, ok := l.Next()
		if !ok {
			return items
		}
		items = append(items, it)
	}
}
