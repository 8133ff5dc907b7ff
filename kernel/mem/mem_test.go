package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dakshdesai00/ddos/heap"
	"github.com/dakshdesai00/ddos/internal/memmap"
)

func TestInitBoardHeap(t *testing.T) {
	m, err := Init(heap.BestFit)
	require.NoError(t, err)
	defer func() { require.NoError(t, m.Close()) }()

	assert.Equal(t, uint64(memmap.HeapSize), m.Capacity())
	assert.Equal(t, uint64(memmap.HeapSize), m.FreeBytes())
	require.NoError(t, m.Check())
}

func TestAllocFreeRoundTrip(t *testing.T) {
	m, err := InitSize(1<<16, heap.FirstFit)
	require.NoError(t, err)
	defer func() { require.NoError(t, m.Close()) }()

	addr, payload := m.Alloc(64)
	require.Len(t, payload, 64)
	for i := range payload {
		payload[i] = byte(i)
	}

	addr2, _ := m.Alloc(64)
	require.NotEqual(t, addr, addr2)

	m.Free(addr)
	m.Free(addr2)
	assert.Equal(t, m.Capacity(), m.FreeBytes())
	assert.Equal(t, 1, m.FreeBlocks())
	require.NoError(t, m.Check())
}

func TestAllocHaltsOnExhaustion(t *testing.T) {
	m, err := InitSize(4096, heap.BestFit)
	require.NoError(t, err)
	defer func() { require.NoError(t, m.Close()) }()

	// The reportable form surfaces the failure as an error.
	_, _, tryErr := m.TryAlloc(1 << 20)
	require.ErrorIs(t, tryErr, heap.ErrNoSpace)

	// The bridge form has no recovery path and must halt.
	require.Panics(t, func() { m.Alloc(1 << 20) })
}

func TestFreeHaltsOnBadAddress(t *testing.T) {
	m, err := InitSize(4096, heap.BestFit)
	require.NoError(t, err)
	defer func() { require.NoError(t, m.Close()) }()

	require.Panics(t, func() { m.Free(3) })
}

func TestStatsAccumulate(t *testing.T) {
	m, err := InitSize(1<<16, heap.NextFit)
	require.NoError(t, err)
	defer func() { require.NoError(t, m.Close()) }()

	a, _ := m.Alloc(32)
	b, _ := m.Alloc(32)
	m.Free(a)
	m.Free(b)

	s := m.Stats()
	assert.Equal(t, uint64(2), s.AllocCalls)
	assert.Equal(t, uint64(2), s.FreeCalls)
	assert.NotZero(t, s.CoalesceForward+s.CoalesceBackward)
}
