// Package multipeek implements the generic buffered-lookahead adapter from
// spec §4.1: a wrapper over any pull-based source that supports peeking
// arbitrarily far ahead without consuming, backed by a small FIFO queue —
// the same shape as the teacher lexer's tokenQueue, generalized with a type
// parameter since it is used over two different element types (lexer
// items in the joiner and parser and, in tests, plain ints).
package multipeek

// Source is a pull-based sequence: Next returns the next item and whether
// one was available. Once it returns false it must keep returning false.
type Source[T any] interface {
	Next() (T, bool)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc[T any] func() (T, bool)

func (f SourceFunc[T]) Next() (T, bool) { return f() }

// Buffer provides Peek/PeekAt/Next over an underlying Source, satisfying
// spec §4.1: peeks are idempotent, PeekAt(k) reports ok=false iff fewer
// than k+1 items remain, and Next returns exactly what Peek would have
// returned.
type Buffer[T any] struct {
	src       Source[T]
	pending   []T
	exhausted bool
}

// New wraps src in a Buffer.
func New[T any](src Source[T]) *Buffer[T] {
	return &Buffer[T]{src: src}
}

// fill ensures at least n+1 items are buffered, or that the source is
// marked exhausted.
func (b *Buffer[T]) fill(n int) {
	for len(b.pending) <= n && !b.exhausted {
		v, ok := b.src.Next()
		if !ok {
			b.exhausted = true
			return
		}
		b.pending = append(b.pending, v)
	}
}

// Peek returns the next item without consuming it. ok is false at end of
// stream; repeated calls to Peek return the same value.
func (b *Buffer[T]) Peek() (T, bool) {
	return b.PeekAt(0)
}

// PeekAt returns the item k positions ahead (0 == next) without consuming
// anything. ok is false iff fewer than k+1 items remain.
func (b *Buffer[T]) PeekAt(k int) (T, bool) {
	b.fill(k)
	if k < len(b.pending) {
		return b.pending[k], true
	}
	var zero T
	return zero, false
}

// Next consumes and returns the next item. After the source is exhausted,
// Next keeps returning ok=false rather than re-querying the source.
func (b *Buffer[T]) Next() (T, bool) {
	b.fill(0)
	if len(b.pending) == 0 {
		var zero T
		return zero, false
	}
	v := b.pending[0]
	b.pending = b.pending[1:]
	return v, true
}
