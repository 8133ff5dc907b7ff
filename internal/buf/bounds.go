package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would
// overflow uint64. Heap offsets and sizes are unsigned, so a wrapped sum
// would silently alias a low address; callers must treat !ok as failure.
func AddOverflowSafe(a, b uint64) (uint64, bool) {
	if b > math.MaxUint64-a {
		return 0, false
	}
	return a + b, true
}

// Has reports whether the n bytes starting at off lie within b.
func Has(b []byte, off, n uint64) bool {
	end, ok := AddOverflowSafe(off, n)
	return ok && end <= uint64(len(b))
}

// Word returns the 8-byte sub-slice at off, or nil when it is out of bounds.
func Word(b []byte, off uint64) []byte {
	if !Has(b, off, 8) {
		return nil
	}
	return b[off : off+8]
}
