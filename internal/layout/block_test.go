package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBlockRoundTrip(t *testing.T) {
	mem := make([]byte, 128)
	WriteBlock(mem, 8, 64, NilBlock)

	assert.Equal(t, uint64(64), BlockSize(mem, 8))
	assert.Equal(t, NilBlock, NextFree(mem, 8))
	assert.Equal(t, uint64(64), Footer(mem, 8, 64))

	SetNextFree(mem, 8, 96)
	assert.Equal(t, uint64(96), NextFree(mem, 8))
}

func TestFooterBefore(t *testing.T) {
	mem := make([]byte, 128)
	WriteBlock(mem, 0, 64, NilBlock)
	WriteBlock(mem, 64, 64, NilBlock)

	// The footer word preceding the second block is the first block's size.
	assert.Equal(t, uint64(64), FooterBefore(mem, 64))
}

func TestCheckTags(t *testing.T) {
	mem := make([]byte, 128)
	WriteBlock(mem, 0, 64, NilBlock)
	require.NoError(t, CheckTags(mem, 0))

	// Trample the footer; the mismatch must be reported, not trusted.
	mem[64-FooterSize] = 0xFF
	require.Error(t, CheckTags(mem, 0))

	// Implausible size word.
	SetBlockSize(mem, 0, uint64(len(mem))+8)
	require.Error(t, CheckTags(mem, 0))
	SetBlockSize(mem, 0, Overhead-1)
	require.Error(t, CheckTags(mem, 0))
}

func TestAccessorsPanicOutsideArena(t *testing.T) {
	mem := make([]byte, 32)
	assert.Panics(t, func() { BlockSize(mem, 32) })
	assert.Panics(t, func() { SetBlockSize(mem, 25, 1) })
	assert.Panics(t, func() { NextFree(mem, 24) })
	assert.Panics(t, func() { Footer(mem, 0, 64) })
	assert.Panics(t, func() { FooterBefore(mem, 4) })
}
