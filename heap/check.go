package heap

import (
	"fmt"

	"github.com/dakshdesai00/ddos/internal/layout"
)

// Check verifies the directory invariants by two independent traversals:
// the free list (ordering, link validity) and the physical block sequence
// (tiling, boundary tags, total coalescing). It reports the first
// violation found, nil when the heap is sound. Intended for tests, the
// simulator, and debug builds; it is O(heap) and allocates.
func (f *FreeList) Check() error {
	end := f.start + f.capacity

	// Pass 1: the free list must be strictly ascending with in-bounds,
	// plausible entries.
	free := make(map[uint64]uint64)
	prev := layout.NilBlock
	for cur := f.head; cur != layout.NilBlock; cur = layout.NextFree(f.mem, cur) {
		if cur < f.start || cur >= end {
			return fmt.Errorf("free list entry %#x outside heap [%#x, %#x)", cur, f.start, end)
		}
		if _, seen := free[cur]; seen {
			return fmt.Errorf("free list cycle through %#x", cur)
		}
		if prev != layout.NilBlock && cur <= prev {
			return fmt.Errorf("free list not strictly ascending: %#x after %#x", cur, prev)
		}
		size := layout.BlockSize(f.mem, cur)
		if size < layout.Overhead || size > end-cur {
			return fmt.Errorf("free block %#x has implausible size %d", cur, size)
		}
		free[cur] = size
		prev = cur
	}

	// Pass 2: blocks must tile the heap exactly, every boundary tag must
	// agree, and no two physically adjacent blocks may both be free.
	var (
		off      = f.start
		prevFree = false
		freeSeen = 0
	)
	for off < end {
		if !layout.Aligned(off) {
			return fmt.Errorf("block start %#x not %d-aligned", off, layout.Align)
		}
		size := layout.BlockSize(f.mem, off)
		if size < layout.Overhead || size > end-off {
			return fmt.Errorf("block %#x has implausible size %d", off, size)
		}
		if footer := layout.Footer(f.mem, off, size); footer != size {
			return fmt.Errorf("block %#x: header size %d != footer size %d", off, size, footer)
		}
		listSize, isFree := free[off]
		if isFree {
			if listSize != size {
				return fmt.Errorf("free block %#x: list size %d != header size %d", off, listSize, size)
			}
			if prevFree {
				return fmt.Errorf("adjacent free blocks at %#x", off)
			}
			freeSeen++
		}
		prevFree = isFree
		off += size
	}
	if off != end {
		return fmt.Errorf("blocks do not tile the heap: walk ended at %#x, want %#x", off, end)
	}
	if freeSeen != len(free) {
		return fmt.Errorf("%d free list entries not found in physical walk", len(free)-freeSeen)
	}
	return nil
}
