package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dakshdesai00/ddos/internal/layout"
)

func TestInitSeedsSingleBlock(t *testing.T) {
	f := newHeap(t, 4096, BestFit)

	assert.Equal(t, uint64(0), f.Start())
	assert.Equal(t, uint64(4096), f.Capacity())
	assert.Equal(t, []span{{0, 4096}}, freeSpans(f), "seed block spans the full range")
	assertInvariants(t, f)
}

func TestInitRoundsUnalignedStart(t *testing.T) {
	mem := make([]byte, 4096)
	f, err := Init(mem, 5, 4091, FirstFit)
	require.NoError(t, err)

	// start rounds 5 -> 8, the 3-byte loss comes out of capacity, and the
	// remainder rounds down to the granularity.
	assert.Equal(t, uint64(8), f.Start())
	assert.Equal(t, uint64(4088), f.Capacity())
	assert.Equal(t, []span{{8, 4088}}, freeSpans(f))
	assertInvariants(t, f)
}

func TestInitRejectsTinyRegion(t *testing.T) {
	mem := make([]byte, 64)

	_, err := Init(mem, 0, layout.Overhead-1, BestFit)
	require.ErrorIs(t, err, ErrRegionTooSmall)

	// Alignment loss can eat a nominally sufficient capacity.
	_, err = Init(mem, 1, layout.Overhead+4, BestFit)
	require.ErrorIs(t, err, ErrRegionTooSmall)

	_, err = Init(mem, 60, 2, BestFit)
	require.ErrorIs(t, err, ErrRegionTooSmall)
}

func TestInitRejectsRegionOutsideArena(t *testing.T) {
	mem := make([]byte, 64)
	_, err := Init(mem, 0, 128, BestFit)
	require.Error(t, err)
	_, err = Init(mem, 32, 64, BestFit)
	require.Error(t, err)
}

func TestInitRejectsUnknownStrategy(t *testing.T) {
	mem := make([]byte, 64)
	_, err := Init(mem, 0, 64, Strategy(42))
	require.ErrorIs(t, err, ErrBadStrategy)
}
