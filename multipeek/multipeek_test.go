package multipeek_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/pyfront/multipeek"
)

func sliceSource(items []int) multipeek.SourceFunc[int] {
	i := 0
	return func() (int, bool) {
		if i >= len(items) {
			return 0, false
		}
		v := items[i]
		i++
		return v, true
	}
}

func TestPeekAtDoesNotConsume(t *testing.T) {
	b := multipeek.New[int](sliceSource([]int{1, 2, 3}))

	v, ok := b.PeekAt(2)
	require.True(t, ok)
	assert.Equal(t, 3, v)

	// Peeking again at the same depth returns the same value (idempotent).
	v2, ok2 := b.PeekAt(2)
	require.True(t, ok2)
	assert.Equal(t, v, v2)

	// Next returns what Peek would have returned.
	first, ok := b.Peek()
	require.True(t, ok)
	n, ok := b.Next()
	require.True(t, ok)
	assert.Equal(t, first, n)
	assert.Equal(t, 1, n)
}

func TestPeekAtBeyondEndIsFalse(t *testing.T) {
	b := multipeek.New[int](sliceSource([]int{1, 2}))

	_, ok := b.PeekAt(1)
	assert.True(t, ok)

	_, ok = b.PeekAt(2)
	assert.False(t, ok, "PeekAt(k) must be false when fewer than k+1 items remain")
}

func TestNextAfterEndStaysFalse(t *testing.T) {
	b := multipeek.New[int](sliceSource([]int{1}))

	_, ok := b.Next()
	require.True(t, ok)

	_, ok = b.Next()
	assert.False(t, ok)

	// Sticky: repeated calls keep returning false.
	_, ok = b.Next()
	assert.False(t, ok)
	_, ok = b.PeekAt(0)
	assert.False(t, ok)
}

func TestEmptySource(t *testing.T) {
	b := multipeek.New[int](sliceSource(nil))

	_, ok := b.Peek()
	assert.False(t, ok)
	_, ok = b.Next()
	assert.False(t, ok)
}

func TestInterleavedPeekAndNext(t *testing.T) {
	b := multipeek.New[int](sliceSource(nil))
	_ = b

	b2 := multipeek.New[int](sliceSource([]int{10, 20, 30, 40}))
	for i, want := range []int{10, 20, 30, 40} {
		peeked, ok := b2.Peek()
		require.True(t, ok, "index %d", i)
		assert.Equal(t, want, peeked)
		next, ok := b2.Next()
		require.True(t, ok)
		assert.Equal(t, want, next)
	}
	_, ok := b2.Next()
	assert.False(t, ok)
}
