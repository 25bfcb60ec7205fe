package alloc

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/huynhanx03/blobvec/pkg/utils"
)

var (
	// ErrInvalidLayout is returned for alignments that are not powers of two,
	// exceed MaxAlign, or do not divide the size.
	ErrInvalidLayout = errors.New("alloc: invalid layout")
	// ErrOutOfMemory is returned when the backing memory cannot be obtained.
	ErrOutOfMemory = errors.New("alloc: out of memory")
	// ErrMemoryLimitExceeded is returned when a budget would be exceeded.
	ErrMemoryLimitExceeded = errors.New("alloc: memory limit exceeded")
	// ErrUnsupported is returned by allocators unavailable on this platform.
	ErrUnsupported = errors.New("alloc: unsupported on this platform")
)

// Block is a region handed out by an Allocator.
type Block struct {
	// Ptr is the aligned start of the usable region.
	Ptr unsafe.Pointer
	// Mem is the backing storage Ptr points into. It keeps Go heap memory
	// reachable and is what the allocator releases on Deallocate.
	Mem []byte
}

// IsZero reports whether the block holds no memory.
func (b Block) IsZero() bool {
	return b.Ptr == nil
}

// Bytes returns the first n usable bytes of the block.
func (b Block) Bytes(n uintptr) []byte {
	if n == 0 || b.Ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(b.Ptr), n)
}

// Allocator is the memory port used by blob containers.
//
// Layouts passed to an allocator always have a non-zero size. Grow receives
// a newLayout at least as large as oldLayout and must preserve the first
// oldLayout.Size bytes; Shrink preserves the first newLayout.Size bytes.
// On failure the old block is left untouched and still owned by the caller.
type Allocator interface {
	Allocate(layout Layout) (Block, error)
	Grow(old Block, oldLayout, newLayout Layout) (Block, error)
	Shrink(old Block, oldLayout, newLayout Layout) (Block, error)
	Deallocate(b Block, layout Layout)
}

// alignedBlock carves an aligned region of size bytes out of buf.
// buf must hold at least size+align-1 bytes.
func alignedBlock(buf []byte, size, align uintptr) Block {
	if len(buf) == 0 {
		return Block{}
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	aligned, _ := utils.AlignUp(addr, align)
	offset := aligned - addr
	return Block{
		Ptr: unsafe.Pointer(&buf[offset]),
		Mem: buf,
	}
}

// paddedSize returns the backing size needed to align a region of layout.
func paddedSize(layout Layout) (int, error) {
	if layout.Size > uintptr(MaxAllocBytes)-(layout.Align-1) {
		return 0, errors.Wrapf(ErrOutOfMemory, "request %s exceeds address space", layout)
	}
	return int(layout.Size + layout.Align - 1), nil
}

// reallocate is the generic grow/shrink path: allocate, copy, release.
func reallocate(a Allocator, old Block, oldLayout, newLayout Layout) (Block, error) {
	b, err := a.Allocate(newLayout)
	if err != nil {
		return Block{}, err
	}
	n := min(oldLayout.Size, newLayout.Size)
	copy(b.Bytes(n), old.Bytes(n))
	a.Deallocate(old, oldLayout)
	return b, nil
}
