//go:build unix

package alloc

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Mmap allocates anonymous private mappings outside the Go heap.
// Every block is released with munmap, so Deallocate must be called exactly
// once per block.
type Mmap struct {
	pageSize uintptr
}

// NewMmap returns an off-heap allocator.
func NewMmap() *Mmap {
	return &Mmap{pageSize: uintptr(os.Getpagesize())}
}

// Allocate maps a fresh region. Mappings are page aligned, so padding is only
// added for alignments above the page size.
func (m *Mmap) Allocate(layout Layout) (Block, error) {
	n := int(layout.Size)
	if layout.Align > m.pageSize {
		var err error
		if n, err = paddedSize(layout); err != nil {
			return Block{}, err
		}
	}
	data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return Block{}, errors.Wrapf(ErrOutOfMemory, "mmap %d bytes: %v", n, err)
	}
	return alignedBlock(data, layout.Size, layout.Align), nil
}

// Grow maps a larger region and copies the live bytes over.
func (m *Mmap) Grow(old Block, oldLayout, newLayout Layout) (Block, error) {
	return reallocate(m, old, oldLayout, newLayout)
}

// Shrink maps a smaller region and copies the retained bytes over.
func (m *Mmap) Shrink(old Block, oldLayout, newLayout Layout) (Block, error) {
	return reallocate(m, old, oldLayout, newLayout)
}

// Deallocate unmaps the block.
func (m *Mmap) Deallocate(b Block, _ Layout) {
	if len(b.Mem) == 0 {
		return
	}
	if err := unix.Munmap(b.Mem); err != nil {
		panic(errors.Wrap(err, "alloc: munmap"))
	}
}
