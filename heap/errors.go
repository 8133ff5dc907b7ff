package heap

import "errors"

var (
	// ErrNoSpace indicates no free block in the directory can satisfy the
	// request. The allocator takes no corrective action; deciding what out
	// of memory means is the caller's business.
	ErrNoSpace = errors.New("heap: no free block large enough")

	// ErrBadAlign indicates the requested alignment is finer than the
	// heap's fixed granularity. Never silently under-aligned.
	ErrBadAlign = errors.New("heap: unsupported alignment")

	// ErrSizeOverflow indicates block sizing arithmetic would overflow the
	// address width.
	ErrSizeOverflow = errors.New("heap: block size overflow")

	// ErrBadRef indicates an address that cannot be a block payload
	// returned by Allocate.
	ErrBadRef = errors.New("heap: bad block address")

	// ErrRegionTooSmall indicates the configured region cannot host even
	// one block after alignment loss. A fatal configuration error.
	ErrRegionTooSmall = errors.New("heap: region too small for a single block")

	// ErrCorrupt indicates debug-mode validation found inconsistent
	// boundary tags or a double free.
	ErrCorrupt = errors.New("heap: corrupted block metadata")

	// ErrBadStrategy indicates an unknown fit strategy.
	ErrBadStrategy = errors.New("heap: unknown fit strategy")
)
