package alloc

import (
	"unsafe"

	"github.com/huynhanx03/blobvec/pkg/alloc/internal/calibrated"
)

// Pooled recycles deallocated blocks through power-of-two size classes.
// It is safe for concurrent use.
type Pooled struct {
	pool *calibrated.Pool
}

// NewPooled returns an allocator backed by a fresh pool.
func NewPooled() *Pooled {
	return &Pooled{pool: calibrated.New()}
}

// Allocate returns an aligned block; its contents are unspecified.
func (p *Pooled) Allocate(layout Layout) (Block, error) {
	n, err := paddedSize(layout)
	if err != nil {
		return Block{}, err
	}
	return alignedBlock(p.pool.Get(n), layout.Size, layout.Align), nil
}

// Grow returns the same block when its size class already fits newLayout.
func (p *Pooled) Grow(old Block, oldLayout, newLayout Layout) (Block, error) {
	if p.fits(old, newLayout) {
		return old, nil
	}
	return reallocate(p, old, oldLayout, newLayout)
}

// Shrink moves the data into a smaller size class when one exists.
func (p *Pooled) Shrink(old Block, oldLayout, newLayout Layout) (Block, error) {
	n, err := paddedSize(newLayout)
	if err != nil {
		return Block{}, err
	}
	if calibrated.SizeToIndex(n) == calibrated.SizeToIndex(len(old.Mem)) {
		return old, nil
	}
	return reallocate(p, old, oldLayout, newLayout)
}

// Deallocate returns the block to its size class.
func (p *Pooled) Deallocate(b Block, _ Layout) {
	p.pool.Put(b.Mem)
}

// Stats returns per size class return counts.
func (p *Pooled) Stats() [calibrated.Steps]uint64 {
	return p.pool.Stats()
}

// fits reports whether newLayout fits in old without moving Ptr.
func (p *Pooled) fits(old Block, newLayout Layout) bool {
	if len(old.Mem) == 0 {
		return false
	}
	start := uintptr(old.Ptr) - uintptr(unsafe.Pointer(unsafe.SliceData(old.Mem)))
	return start+newLayout.Size <= uintptr(len(old.Mem))
}
