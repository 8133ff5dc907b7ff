package heap

import (
	"fmt"
	"os"

	"github.com/dakshdesai00/ddos/internal/buf"
	"github.com/dakshdesai00/ddos/internal/layout"
)

// Align is the heap's fixed allocation granularity in bytes. Requests for
// finer alignment are rejected; coarser-or-equal requests are satisfied
// because every block start is Align-aligned.
const Align = layout.Align

// checkFrees enables boundary-tag and double-free validation on every
// Deallocate. Off by default; the release-mode allocator spends no cycles
// detecting caller errors.
var checkFrees = os.Getenv("DDOS_HEAP_CHECK") != ""

// FreeList is the free-region directory: an intrusive, singly linked,
// address-ordered collection of free blocks built inside the memory it
// describes. All addresses handed out and accepted are byte offsets into
// the backing arena.
//
// Not safe for concurrent use. A single logical caller must be inside
// Allocate or Deallocate at any instant; kernel/mem enforces that.
type FreeList struct {
	mem      []byte
	start    uint64 // heap base, rounded up to the alignment granularity
	capacity uint64 // usable bytes after alignment loss
	head     uint64 // first free block, layout.NilBlock when exhausted
	strategy Strategy
	cursor   uint64 // next-fit scan position
	stats    Stats
}

// Init converts the raw range [start, start+capacity) of mem into a heap
// with a single seed free block and returns the directory. Called exactly
// once, before any concurrent caller exists. Errors here are fatal
// configuration errors: there is no heap to manage.
func Init(mem []byte, start, capacity uint64, strategy Strategy) (*FreeList, error) {
	if !strategy.valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadStrategy, uint8(strategy))
	}

	adjStart, ok := layout.AlignUp(start)
	if !ok {
		return nil, fmt.Errorf("%w: start %#x", ErrRegionTooSmall, start)
	}
	loss := adjStart - start
	if loss >= capacity {
		return nil, fmt.Errorf("%w: %d bytes at %#x", ErrRegionTooSmall, capacity, start)
	}
	// Rounding capacity down keeps every block size a multiple of the
	// granularity, so block starts stay aligned without per-block checks.
	adjCapacity := layout.AlignDown(capacity - loss)
	if adjCapacity < layout.Overhead {
		return nil, fmt.Errorf("%w: %d usable bytes, need %d", ErrRegionTooSmall, adjCapacity, layout.Overhead)
	}
	end, ok := buf.AddOverflowSafe(adjStart, adjCapacity)
	if !ok || end > uint64(len(mem)) {
		return nil, fmt.Errorf("heap: region [%#x, %#x) outside arena of %d bytes", adjStart, end, len(mem))
	}

	f := &FreeList{
		mem:      mem,
		start:    adjStart,
		capacity: adjCapacity,
		head:     adjStart,
		strategy: strategy,
		cursor:   adjStart,
	}
	layout.WriteBlock(mem, adjStart, adjCapacity, layout.NilBlock)
	return f, nil
}

// Allocate returns the payload offset of a block satisfying size and align,
// plus a slice aliasing the payload bytes. align must not exceed
// layout.Align; coarser requests are already satisfied because every block
// start is aligned. Failure is reported, never acted on: ErrBadAlign,
// ErrSizeOverflow, or ErrNoSpace.
func (f *FreeList) Allocate(size, align uint64) (uint64, []byte, error) {
	f.stats.AllocCalls++

	if align > layout.Align {
		f.stats.FailedAllocs++
		return 0, nil, fmt.Errorf("%w: %d > %d", ErrBadAlign, align, layout.Align)
	}
	if size == 0 {
		// A zero-byte request still consumes one minimal block.
		size = 1
	}
	payload, ok := layout.AlignUp(size)
	if !ok {
		f.stats.FailedAllocs++
		return 0, nil, fmt.Errorf("%w: size %#x", ErrSizeOverflow, size)
	}
	// payload and Overhead are both granularity multiples, so their sum
	// needs no further rounding.
	total, ok := buf.AddOverflowSafe(payload, layout.Overhead)
	if !ok {
		f.stats.FailedAllocs++
		return 0, nil, fmt.Errorf("%w: size %#x", ErrSizeOverflow, size)
	}

	blk, prev := f.findRegion(total)
	if blk == layout.NilBlock {
		f.stats.FailedAllocs++
		return 0, nil, fmt.Errorf("%w: need %d bytes", ErrNoSpace, total)
	}

	blkSize := layout.BlockSize(f.mem, blk)
	succ := layout.NextFree(f.mem, blk)

	if blkSize-total >= layout.Overhead {
		// The remainder can host its own header and footer: carve the low
		// total bytes and splice the remainder in at the candidate's old
		// list position.
		f.stats.Splits++
		rem := blk + total
		layout.WriteBlock(f.mem, rem, blkSize-total, succ)
		f.splice(prev, rem)
		f.cursor = rem
		blkSize = total
		layout.SetBlockSize(f.mem, blk, total)
	} else {
		// Remainder too small to stand alone; hand out the whole block and
		// accept the bounded internal fragmentation.
		f.splice(prev, succ)
		if succ != layout.NilBlock {
			f.cursor = succ
		} else {
			f.cursor = f.head
		}
	}
	// Refresh the footer so both tags describe the allocated span.
	layout.SetFooter(f.mem, blk, blkSize)

	f.stats.BytesAllocated += blkSize

	addr := blk + layout.HeaderSize
	return addr, f.mem[addr : blk+blkSize-layout.FooterSize], nil
}

// Deallocate returns the block whose payload starts at addr to the free
// list and merges it with free physical neighbors on both sides.
//
// Precondition: addr was returned by Allocate on this heap and has not
// already been freed. Violations are undefined behavior; only offsets that
// cannot possibly be a payload are rejected with ErrBadRef, and the
// DDOS_HEAP_CHECK cross-checks reject corrupt or double-freed blocks with
// ErrCorrupt.
func (f *FreeList) Deallocate(addr uint64) error {
	f.stats.FreeCalls++

	end := f.start + f.capacity
	if addr < f.start+layout.HeaderSize || addr >= end || !layout.Aligned(addr) {
		return fmt.Errorf("%w: %#x", ErrBadRef, addr)
	}
	blk := addr - layout.HeaderSize
	size := layout.BlockSize(f.mem, blk)
	if size < layout.Overhead || size > end-blk {
		return fmt.Errorf("%w: %#x has implausible size %d", ErrBadRef, addr, size)
	}
	if checkFrees {
		if err := f.checkFreed(blk); err != nil {
			return err
		}
	}

	// Walk to the insertion point that keeps the list strictly ascending.
	prev := layout.NilBlock
	cur := f.head
	for cur != layout.NilBlock && cur < blk {
		prev = cur
		cur = layout.NextFree(f.mem, cur)
	}
	layout.SetNextFree(f.mem, blk, cur)
	f.splice(prev, blk)
	f.stats.BytesFreed += size

	// Forward: merge the successor in when it begins exactly where this
	// block ends.
	if cur != layout.NilBlock && blk+size == cur {
		f.stats.CoalesceForward++
		size += layout.BlockSize(f.mem, cur)
		layout.SetNextFree(f.mem, blk, layout.NextFree(f.mem, cur))
		layout.SetBlockSize(f.mem, blk, size)
		layout.SetFooter(f.mem, blk, size)
		if f.cursor == cur {
			f.cursor = f.head
		}
	}

	// Backward: the footer word preceding blk is the previous physical
	// block's size. That block is free only if it is the list predecessor
	// the insertion walk just produced.
	if blk > f.start && prev != layout.NilBlock {
		prevSize := layout.FooterBefore(f.mem, blk)
		if prevSize >= layout.Overhead && prevSize <= blk-f.start && blk-prevSize == prev {
			if prev+layout.BlockSize(f.mem, prev) == blk {
				f.stats.CoalesceBackward++
				merged := layout.BlockSize(f.mem, prev) + size
				layout.SetNextFree(f.mem, prev, layout.NextFree(f.mem, blk))
				layout.SetBlockSize(f.mem, prev, merged)
				layout.SetFooter(f.mem, prev, merged)
				if f.cursor == blk {
					f.cursor = f.head
				}
			}
		}
	}
	return nil
}

// checkFreed is the debug-mode gate: boundary tags must agree and the block
// must not already be on the free list.
func (f *FreeList) checkFreed(blk uint64) error {
	if err := layout.CheckTags(f.mem, blk); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	for cur := f.head; cur != layout.NilBlock; cur = layout.NextFree(f.mem, cur) {
		if cur == blk {
			return fmt.Errorf("%w: double free of %#x", ErrCorrupt, blk)
		}
	}
	return nil
}

// splice points the predecessor link (or head) at to.
func (f *FreeList) splice(prev, to uint64) {
	if prev == layout.NilBlock {
		f.head = to
	} else {
		layout.SetNextFree(f.mem, prev, to)
	}
}

// Start returns the alignment-adjusted heap base offset.
func (f *FreeList) Start() uint64 { return f.start }

// Capacity returns the usable heap bytes after alignment loss.
func (f *FreeList) Capacity() uint64 { return f.capacity }

// Strategy returns the fit strategy the directory was initialized with.
func (f *FreeList) Strategy() Strategy { return f.strategy }
