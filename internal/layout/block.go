package layout

import (
	"fmt"

	"github.com/dakshdesai00/ddos/internal/buf"
)

// The accessors below are the only code that reads or writes block metadata.
// Offsets arrive from free-list links and footer arithmetic, both of which
// live inside managed memory; a corrupted word would otherwise send a write
// to an arbitrary offset. Each access therefore re-checks bounds and panics
// on violation, since a failed check means the directory is already corrupt
// and no recovery is possible.

// BlockSize reads the size word of the block at off.
func BlockSize(mem []byte, off uint64) uint64 {
	w := buf.Word(mem, off)
	if w == nil {
		panic(fmt.Sprintf("layout: size read at %#x outside arena of %d bytes", off, len(mem)))
	}
	return buf.U64LE(w)
}

// SetBlockSize writes the size word of the block at off.
func SetBlockSize(mem []byte, off, size uint64) {
	w := buf.Word(mem, off)
	if w == nil {
		panic(fmt.Sprintf("layout: size write at %#x outside arena of %d bytes", off, len(mem)))
	}
	buf.PutU64LE(w, size)
}

// NextFree reads the free-list link word of the block at off.
func NextFree(mem []byte, off uint64) uint64 {
	w := buf.Word(mem, off+Align)
	if w == nil {
		panic(fmt.Sprintf("layout: link read at %#x outside arena of %d bytes", off, len(mem)))
	}
	return buf.U64LE(w)
}

// SetNextFree writes the free-list link word of the block at off.
func SetNextFree(mem []byte, off, next uint64) {
	w := buf.Word(mem, off+Align)
	if w == nil {
		panic(fmt.Sprintf("layout: link write at %#x outside arena of %d bytes", off, len(mem)))
	}
	buf.PutU64LE(w, next)
}

// Footer reads the footer word of the block spanning [off, off+size).
func Footer(mem []byte, off, size uint64) uint64 {
	if size < Overhead || !buf.Has(mem, off, size) {
		panic(fmt.Sprintf("layout: footer read of block %#x+%d outside arena of %d bytes",
			off, size, len(mem)))
	}
	return buf.U64LE(mem[off+size-FooterSize:])
}

// SetFooter writes the footer word of the block spanning [off, off+size),
// duplicating the header size so both boundary tags stay consistent.
func SetFooter(mem []byte, off, size uint64) {
	if size < Overhead || !buf.Has(mem, off, size) {
		panic(fmt.Sprintf("layout: footer write of block %#x+%d outside arena of %d bytes",
			off, size, len(mem)))
	}
	buf.PutU64LE(mem[off+size-FooterSize:], size)
}

// FooterBefore reads the footer word that ends immediately before off. That
// word is the total size of the physically preceding block, whatever its
// state, which is what makes backward coalescing O(1).
func FooterBefore(mem []byte, off uint64) uint64 {
	if off < FooterSize {
		panic(fmt.Sprintf("layout: no footer precedes offset %#x", off))
	}
	w := buf.Word(mem, off-FooterSize)
	if w == nil {
		panic(fmt.Sprintf("layout: footer read at %#x outside arena of %d bytes", off, len(mem)))
	}
	return buf.U64LE(w)
}

// WriteBlock initializes both boundary tags and the link word of a block.
func WriteBlock(mem []byte, off, size, next uint64) {
	SetBlockSize(mem, off, size)
	SetNextFree(mem, off, next)
	SetFooter(mem, off, size)
}

// CheckTags verifies that the header and footer of the block at off agree.
// Used by debug-mode deallocation to reject blocks whose metadata has been
// trampled before they can corrupt the free list.
func CheckTags(mem []byte, off uint64) error {
	size := BlockSize(mem, off)
	if size < Overhead || !buf.Has(mem, off, size) {
		return fmt.Errorf("block %#x: implausible size %d", off, size)
	}
	if f := Footer(mem, off, size); f != size {
		return fmt.Errorf("block %#x: header size %d != footer size %d", off, size, f)
	}
	return nil
}
