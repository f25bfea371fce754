// Package invariant provides contract assertions used internally by the
// lexer and parser. This implements Tiger Style safety principles:
// assertions are a force multiplier for discovering bugs. Every function
// here panics on violation — these check for bugs in this code, never for
// malformed user input, which must always surface as a typed LexerError or
// ParserError instead (spec §7, §9).
package invariant

import (
	"fmt"
	"runtime"
)

// Precondition checks an input contract at function entry.
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
func Postcondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks an internal invariant during function execution, such
// as loop progress or state consistency.
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNegative panics if value < 0. Used for counters such as the lexer's
// bracket depth, which must never go negative.
func NotNegative(value int, name string) {
	if value < 0 {
		fail("PRECONDITION", "%s must not be negative, got %d", name, value)
	}
}

// fail panics with a formatted message including the caller's file:line.
func fail(kind, format string, args ...interface{}) {
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]interface{}{kind}, args...)...)
	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}
	panic(msg)
}
