// Package memmap fixes the physical memory layout the kernel is built for.
//
// The heap range published here is the startup collaborator's contract with
// the allocator: a contiguous region disjoint from the firmware area, the
// kernel image, the stack, and the device-mapped window at PeripheralBase.
// The allocator itself never validates this; it manages whatever range it
// is handed.
//
// Layout (all boards):
//
//	0x000000 - 0x080000  firmware / bootloader (reserved)
//	0x080000 -           kernel image; stack grows down from KernelStart
//	0x280000 - 0x480000  heap (2 MiB)
package memmap

const (
	// KernelStart is where the board firmware loads the kernel image.
	KernelStart = 0x80000

	// StackStart is the top of the kernel stack, which grows downward.
	// Single core, so one stack.
	StackStart = KernelStart

	// StackSize is the room reserved above the stack before the heap begins.
	StackSize = 0x200000

	// HeapStart is the base of the dynamic-memory region.
	HeapStart = StackStart + StackSize

	// HeapSize is the fixed extent of the heap. The region never grows.
	HeapSize = 0x200000
)
