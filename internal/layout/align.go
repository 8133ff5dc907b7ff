package layout

import "math"

// AlignUp returns n rounded up to the next Align boundary. ok is false when
// the rounding would overflow uint64; a wrapped result would alias a low
// offset, so callers must treat !ok as an allocation failure.
//
// Example:
//
//	AlignUp(1)  = 8
//	AlignUp(8)  = 8
//	AlignUp(9)  = 16
func AlignUp(n uint64) (uint64, bool) {
	if n > math.MaxUint64-alignMask {
		return 0, false
	}
	return (n + alignMask) &^ alignMask, true
}

// AlignDown returns n rounded down to the previous Align boundary.
func AlignDown(n uint64) uint64 {
	return n &^ alignMask
}

// Aligned reports whether n is a multiple of Align.
func Aligned(n uint64) bool {
	return n&alignMask == 0
}
