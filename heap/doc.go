// Package heap implements the kernel's free-list allocator over one fixed,
// contiguous memory region.
//
// # Overview
//
// The allocator keeps no bookkeeping outside the memory it manages. Every
// block, free or allocated, carries boundary tags: a header holding the
// block's total size plus (while free) a link to the next free block in
// address order, and a footer duplicating the size. The footer makes the
// physically preceding block reachable in O(1), which is what keeps
// coalescing cheap on deallocation.
//
// # Operations
//
// The external contract is exactly two operations after Init:
//
//   - Allocate(size, align): find a free block via the configured fit
//     strategy, split off the remainder when it can host a block of its
//     own, and return the payload offset.
//   - Deallocate(addr): splice the block back into the address-ordered
//     free list and merge it with both physical neighbors when they are
//     free. Coalescing is mandatory; no two adjacent blocks are ever left
//     both free.
//
// # Strategies
//
// Four interchangeable block-selection strategies scan the free list:
// FirstFit, BestFit, WorstFit, and NextFit. NextFit persists a cursor that
// resumes scanning where the previous allocation stopped; the cursor is
// defensively reset to the list head whenever coalescing removes the block
// it referenced.
//
// # Failure model
//
// Allocation failures (unsupported alignment, size arithmetic overflow, no
// block large enough) are ordinary outcomes reported as sentinel errors;
// the allocator never logs and never takes corrective action. Deallocating
// an address that did not come from Allocate is undefined behavior; setting
// the DDOS_HEAP_CHECK environment variable enables boundary-tag and
// double-free cross-checks that reject such blocks instead of corrupting
// the directory.
//
// # Concurrency
//
// Not reentrant and not thread-safe. Callers serialize access externally;
// kernel/mem is the one authorized holder of a FreeList.
package heap
