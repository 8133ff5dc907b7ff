package heap

import "github.com/dakshdesai00/ddos/internal/layout"

// Stats holds cumulative allocator counters for instrumentation and tests.
// Byte totals include block overhead, matching the conservation accounting:
// every counted byte is a byte of heap span.
type Stats struct {
	AllocCalls       uint64
	FailedAllocs     uint64
	FreeCalls        uint64
	Splits           uint64
	CoalesceForward  uint64
	CoalesceBackward uint64
	BytesAllocated   uint64
	BytesFreed       uint64
}

// Stats returns a copy of the directory's counters.
func (f *FreeList) Stats() Stats { return f.stats }

// FreeBlocks returns the number of entries on the free list.
func (f *FreeList) FreeBlocks() int {
	n := 0
	for cur := f.head; cur != layout.NilBlock; cur = layout.NextFree(f.mem, cur) {
		n++
	}
	return n
}

// FreeBytes returns the sum of all free block spans, overhead included.
func (f *FreeList) FreeBytes() uint64 {
	var total uint64
	for cur := f.head; cur != layout.NilBlock; cur = layout.NextFree(f.mem, cur) {
		total += layout.BlockSize(f.mem, cur)
	}
	return total
}

// LargestFree returns the span of the largest free block, 0 when the heap
// is exhausted. The difference between FreeBytes and LargestFree is a crude
// external-fragmentation signal.
func (f *FreeList) LargestFree() uint64 {
	var largest uint64
	for cur := f.head; cur != layout.NilBlock; cur = layout.NextFree(f.mem, cur) {
		if size := layout.BlockSize(f.mem, cur); size > largest {
			largest = size
		}
	}
	return largest
}
