// Package layout defines the boundary-tag block format shared by every
// heap block, free or allocated.
//
// Block layout (little-endian uint64 words):
//
//	Offset        Size  Description
//	0x00          8     size: total block span in bytes, header and footer
//	                    included. Valid on every block.
//	0x08          8     next: offset of the next free block in address
//	                    order. Meaningful only while the block is free.
//	size-0x08     8     footer: duplicate of size. Valid on every block;
//	                    this duplication is what makes backward coalescing
//	                    O(1) on deallocation.
//
// All offsets are byte offsets into one owned arena slice. layout never
// follows a raw pointer; every access is bounds-checked here, centrally.
package layout

// Align is the allocation granularity. Every block start offset is a
// multiple of Align, and every block size is kept a multiple of Align.
const Align = 8

const alignMask = Align - 1

const (
	// HeaderSize is the size word plus the free-list link word.
	HeaderSize = 16
	// FooterSize is the trailing duplicate size word.
	FooterSize = 8
	// Overhead is the fixed metadata cost of one block.
	Overhead = HeaderSize + FooterSize
)

// NilBlock is the absent-link sentinel. Offset 0 is a valid block start,
// so the all-ones pattern marks "no block" instead.
const NilBlock = ^uint64(0)
