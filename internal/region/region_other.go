//go:build !linux && !darwin

package region

import "fmt"

// Map reserves size bytes of zeroed memory. Platforms without an anonymous
// mmap path fall back to an ordinary Go allocation; the allocator only needs
// a contiguous zeroed slice.
func Map(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("region: non-positive size %d", size)
	}
	return make([]byte, size), nil
}

// Unmap releases a region returned by Map.
func Unmap(data []byte) error {
	return nil
}
