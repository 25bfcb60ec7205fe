package alloc

import (
	"github.com/pkg/errors"
)

// Heap allocates from the Go heap. Deallocate leaves the memory to the
// garbage collector.
type Heap struct{}

// NewHeap returns a heap allocator.
func NewHeap() Heap {
	return Heap{}
}

// Allocate returns layout.Size zeroed bytes aligned to layout.Align.
func (h Heap) Allocate(layout Layout) (b Block, err error) {
	n, err := paddedSize(layout)
	if err != nil {
		return Block{}, err
	}
	defer func() {
		// makeslice panics on lengths the runtime can never satisfy.
		if r := recover(); r != nil {
			b, err = Block{}, errors.Wrapf(ErrOutOfMemory, "heap: %v", r)
		}
	}()
	return alignedBlock(make([]byte, n), layout.Size, layout.Align), nil
}

// Grow copies the block into a larger allocation.
func (h Heap) Grow(old Block, oldLayout, newLayout Layout) (Block, error) {
	return reallocate(h, old, oldLayout, newLayout)
}

// Shrink copies the block into a smaller allocation so the old one can be collected.
func (h Heap) Shrink(old Block, oldLayout, newLayout Layout) (Block, error) {
	return reallocate(h, old, oldLayout, newLayout)
}

// Deallocate is a no-op; the collector reclaims unreachable blocks.
func (Heap) Deallocate(Block, Layout) {}
