// Package mem is the kernel-facing face of the heap: it initializes the
// allocator exactly once during startup and bridges the language runtime's
// allocation hooks to it.
//
// The Manager is the single authorized holder of the heap directory. The
// allocator core is not reentrant, so every mutating call is funneled
// through the Manager's lock; nothing else in the kernel may reach the
// FreeList directly. Offsets handed out by Alloc are relative to the heap
// region's base (physical memmap.HeapStart on hardware).
package mem

import (
	"fmt"
	"sync"

	"github.com/dakshdesai00/ddos/heap"
	"github.com/dakshdesai00/ddos/internal/memmap"
	"github.com/dakshdesai00/ddos/internal/region"
)

// Manager owns the kernel's one heap directory and the region backing it.
type Manager struct {
	// mu enforces the at-most-one-mutating-call contract the core
	// requires. On the single-core boards this build targets it never
	// contends; it exists so the contract is enforced, not assumed.
	mu    sync.Mutex
	heap  *heap.FreeList
	arena []byte
}

// Init reserves the board's heap range and seeds the allocator. Called
// exactly once during startup, before any other caller exists; this is the
// only path allowed to run outside the Manager's exclusive-access
// discipline.
func Init(strategy heap.Strategy) (*Manager, error) {
	return InitSize(memmap.HeapSize, strategy)
}

// InitSize is Init with an explicit region size, for simulators and tests.
func InitSize(size int, strategy heap.Strategy) (*Manager, error) {
	arena, err := region.Map(size)
	if err != nil {
		return nil, fmt.Errorf("mem: reserving heap region: %w", err)
	}
	fl, err := heap.Init(arena, 0, uint64(len(arena)), strategy)
	if err != nil {
		_ = region.Unmap(arena)
		return nil, fmt.Errorf("mem: seeding heap: %w", err)
	}
	return &Manager{heap: fl, arena: arena}, nil
}

// Alloc is the runtime bridge's allocation hook. Allocation failure has no
// recovery path in a kernel without paging, so it halts rather than
// returning a sentinel the runtime would dereference.
func (m *Manager) Alloc(size uint64) (uint64, []byte) {
	addr, payload, err := m.TryAlloc(size)
	if err != nil {
		panic(fmt.Sprintf("allocation error: size=%d: %v", size, err))
	}
	return addr, payload
}

// TryAlloc exposes the reportable form of allocation: the error is the
// ordinary out-of-memory (or sizing) outcome and the caller decides what
// it means.
func (m *Manager) TryAlloc(size uint64) (uint64, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.Allocate(size, heap.Align)
}

// Free returns an allocation to the heap. A rejected address is a kernel
// bug, not a condition to limp past, so it halts.
func (m *Manager) Free(addr uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.heap.Deallocate(addr); err != nil {
		panic(fmt.Sprintf("deallocation error: addr=%#x: %v", addr, err))
	}
}

// Stats returns the allocator counters.
func (m *Manager) Stats() heap.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.Stats()
}

// Check runs the full invariant suite over the directory.
func (m *Manager) Check() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.Check()
}

// Capacity returns the usable heap bytes.
func (m *Manager) Capacity() uint64 {
	return m.heap.Capacity()
}

// FreeBytes returns the total bytes on the free list.
func (m *Manager) FreeBytes() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.FreeBytes()
}

// FreeBlocks returns the free-block census.
func (m *Manager) FreeBlocks() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.FreeBlocks()
}

// LargestFree returns the largest single free span.
func (m *Manager) LargestFree() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.LargestFree()
}

// Close releases the backing region. The kernel never does this; it exists
// for simulators and tests.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	arena := m.arena
	m.arena, m.heap = nil, nil
	return region.Unmap(arena)
}
