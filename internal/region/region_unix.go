//go:build linux || darwin

// Package region acquires the raw memory the heap manages. On hardware this
// range is simply owned by the kernel; here it is modeled as one anonymous
// private mapping so offsets into the slice behave like physical addresses.
package region

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Map reserves size bytes of zeroed, page-backed memory.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("region: non-positive size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("region: mmap of %d bytes failed: %w", size, err)
	}
	return data, nil
}

// Unmap releases a region returned by Map.
func Unmap(data []byte) error {
	if data == nil {
		return nil
	}
	if err := unix.Munmap(data); err != nil {
		return fmt.Errorf("region: munmap failed: %w", err)
	}
	return nil
}
