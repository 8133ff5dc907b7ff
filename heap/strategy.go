package heap

import (
	"fmt"

	"github.com/dakshdesai00/ddos/internal/layout"
)

// Strategy selects which free block satisfies an allocation.
type Strategy uint8

const (
	// FirstFit takes the first qualifying block in address order. Fastest
	// scan, but fragments accumulate near the list head.
	FirstFit Strategy = iota
	// BestFit scans the whole list for the smallest qualifying block,
	// minimizing per-allocation waste.
	BestFit
	// WorstFit scans the whole list for the largest qualifying block.
	// Included for completeness; fragments worse than BestFit in steady
	// state.
	WorstFit
	// NextFit behaves like FirstFit but resumes scanning at a persisted
	// cursor, wrapping once, so allocations spread across the region.
	NextFit
)

func (s Strategy) valid() bool { return s <= NextFit }

func (s Strategy) String() string {
	switch s {
	case FirstFit:
		return "first-fit"
	case BestFit:
		return "best-fit"
	case WorstFit:
		return "worst-fit"
	case NextFit:
		return "next-fit"
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// ParseStrategy maps a flag value to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "first", "first-fit":
		return FirstFit, nil
	case "best", "best-fit":
		return BestFit, nil
	case "worst", "worst-fit":
		return WorstFit, nil
	case "next", "next-fit":
		return NextFit, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadStrategy, name)
}

// findRegion returns the block chosen by the configured strategy for a
// request of total bytes, along with its predecessor in the free list so
// the caller can splice without a second pass. Both are layout.NilBlock
// when nothing qualifies.
func (f *FreeList) findRegion(total uint64) (blk, prev uint64) {
	if total > f.capacity {
		return layout.NilBlock, layout.NilBlock
	}
	switch f.strategy {
	case BestFit:
		return f.findBestFit(total)
	case WorstFit:
		return f.findWorstFit(total)
	case NextFit:
		return f.findNextFit(total)
	default:
		return f.findFirstFit(total)
	}
}

func (f *FreeList) findFirstFit(total uint64) (uint64, uint64) {
	prev := layout.NilBlock
	for cur := f.head; cur != layout.NilBlock; cur = layout.NextFree(f.mem, cur) {
		if layout.BlockSize(f.mem, cur) >= total {
			return cur, prev
		}
		prev = cur
	}
	return layout.NilBlock, layout.NilBlock
}

func (f *FreeList) findBestFit(total uint64) (uint64, uint64) {
	best, bestPrev := layout.NilBlock, layout.NilBlock
	var bestSize uint64

	prev := layout.NilBlock
	for cur := f.head; cur != layout.NilBlock; cur = layout.NextFree(f.mem, cur) {
		// Strict comparison keeps the first-encountered (lowest address)
		// block on ties.
		if size := layout.BlockSize(f.mem, cur); size >= total {
			if best == layout.NilBlock || size < bestSize {
				best, bestPrev, bestSize = cur, prev, size
			}
		}
		prev = cur
	}
	return best, bestPrev
}

func (f *FreeList) findWorstFit(total uint64) (uint64, uint64) {
	worst, worstPrev := layout.NilBlock, layout.NilBlock
	var worstSize uint64

	prev := layout.NilBlock
	for cur := f.head; cur != layout.NilBlock; cur = layout.NextFree(f.mem, cur) {
		if size := layout.BlockSize(f.mem, cur); size >= total {
			if worst == layout.NilBlock || size > worstSize {
				worst, worstPrev, worstSize = cur, prev, size
			}
		}
		prev = cur
	}
	return worst, worstPrev
}

func (f *FreeList) findNextFit(total uint64) (uint64, uint64) {
	// Locate the cursor entry and its predecessor. A cursor that no longer
	// names a live list entry was invalidated by coalescing; fall back to
	// head.
	start, startPrev := f.head, layout.NilBlock
	if f.cursor != layout.NilBlock {
		found := false
		prev := layout.NilBlock
		for cur := f.head; cur != layout.NilBlock; cur = layout.NextFree(f.mem, cur) {
			if cur == f.cursor {
				start, startPrev, found = cur, prev, true
				break
			}
			prev = cur
		}
		if !found {
			f.cursor = f.head
		}
	}

	// First leg: cursor to list end.
	prev := startPrev
	for cur := start; cur != layout.NilBlock; cur = layout.NextFree(f.mem, cur) {
		if layout.BlockSize(f.mem, cur) >= total {
			return cur, prev
		}
		prev = cur
	}

	// Wrap: head up to, but not past, the original cursor position. The
	// bound keeps the scan finite when nothing qualifies.
	prev = layout.NilBlock
	for cur := f.head; cur != layout.NilBlock && cur != start; cur = layout.NextFree(f.mem, cur) {
		if layout.BlockSize(f.mem, cur) >= total {
			return cur, prev
		}
		prev = cur
	}
	return layout.NilBlock, layout.NilBlock
}
