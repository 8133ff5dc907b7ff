package buf

import (
	"math"
	"testing"
)

func TestU64LERoundTrip(t *testing.T) {
	b := make([]byte, 16)
	PutU64LE(b[8:], 0xefcdab8967452301)
	if got := U64LE(b[8:]); got != 0xefcdab8967452301 {
		t.Fatalf("U64LE = 0x%x, want 0xefcdab8967452301", got)
	}
	if got := U64LE(b); got != 0 {
		t.Fatalf("untouched word should read 0, got 0x%x", got)
	}

	short := []byte{0xAA}
	if U64LE(short) != 0 {
		t.Fatalf("short read should return 0")
	}
	PutU64LE(short, 1) // must not panic
}

func TestAddOverflowSafe(t *testing.T) {
	if v, ok := AddOverflowSafe(10, 20); !ok || v != 30 {
		t.Fatalf("AddOverflowSafe(10, 20) = %d, %v", v, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxUint64, 1); ok {
		t.Fatalf("expected overflow")
	}
	if v, ok := AddOverflowSafe(math.MaxUint64-1, 1); !ok || v != math.MaxUint64 {
		t.Fatalf("boundary sum should succeed, got %d, %v", v, ok)
	}
}

func TestHasAndWord(t *testing.T) {
	b := make([]byte, 24)
	if !Has(b, 16, 8) {
		t.Fatalf("Has(24-byte buf, 16, 8) should be true")
	}
	if Has(b, 17, 8) {
		t.Fatalf("Has(24-byte buf, 17, 8) should be false")
	}
	if Has(b, math.MaxUint64, 8) {
		t.Fatalf("overflowing range must be rejected")
	}
	if Word(b, 16) == nil {
		t.Fatalf("Word at last aligned offset should be valid")
	}
	if Word(b, 24) != nil {
		t.Fatalf("Word past end should be nil")
	}
}
