package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dakshdesai00/ddos/internal/layout"
)

// newHeap builds a heap over a fresh arena with the full arena as the
// managed range.
func newHeap(t testing.TB, capacity uint64, s Strategy) *FreeList {
	t.Helper()
	mem := make([]byte, capacity)
	f, err := Init(mem, 0, capacity, s)
	require.NoError(t, err)
	return f
}

// span is one free-list entry as (offset, size).
type span struct {
	off, size uint64
}

// freeSpans snapshots the free list in address order.
func freeSpans(f *FreeList) []span {
	var spans []span
	for cur := f.head; cur != layout.NilBlock; cur = layout.NextFree(f.mem, cur) {
		spans = append(spans, span{cur, layout.BlockSize(f.mem, cur)})
	}
	return spans
}

// assertInvariants fails the test when any directory invariant is broken.
func assertInvariants(t testing.TB, f *FreeList) {
	t.Helper()
	require.NoError(t, f.Check())
}

// setupThreeFree produces a heap whose free list is exactly three blocks of
// 256, 1000 and 304 bytes, in that address order, separated by allocated
// guards so nothing coalesces. The heap capacity is consumed exactly, so no
// tail block dilutes strategy decisions.
//
// Layout: free(256) guard(32) free(1000) guard(32) free(304) guard(32).
func setupThreeFree(t testing.TB, s Strategy) *FreeList {
	t.Helper()
	f := newHeap(t, 1656, s)

	a, _, err := f.Allocate(232, Align) // 256-byte block
	require.NoError(t, err)
	_, _, err = f.Allocate(8, Align) // guard
	require.NoError(t, err)
	b, _, err := f.Allocate(976, Align) // 1000-byte block
	require.NoError(t, err)
	_, _, err = f.Allocate(8, Align) // guard
	require.NoError(t, err)
	c, _, err := f.Allocate(280, Align) // 304-byte block
	require.NoError(t, err)
	_, _, err = f.Allocate(8, Align) // guard, consumes the final 32 bytes
	require.NoError(t, err)
	require.Equal(t, 0, f.FreeBlocks(), "setup must consume the heap exactly")

	require.NoError(t, f.Deallocate(a))
	require.NoError(t, f.Deallocate(b))
	require.NoError(t, f.Deallocate(c))

	require.Equal(t,
		[]span{{0, 256}, {288, 1000}, {1320, 304}},
		freeSpans(f), "setup free list")
	assertInvariants(t, f)
	return f
}
