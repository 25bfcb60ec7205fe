//go:build !unix

package alloc

// Mmap is unavailable on this platform; every allocation fails.
type Mmap struct{}

// NewMmap returns an allocator that always fails with ErrUnsupported.
func NewMmap() *Mmap {
	return &Mmap{}
}

func (m *Mmap) Allocate(Layout) (Block, error) {
	return Block{}, ErrUnsupported
}

func (m *Mmap) Grow(Block, Layout, Layout) (Block, error) {
	return Block{}, ErrUnsupported
}

func (m *Mmap) Shrink(Block, Layout, Layout) (Block, error) {
	return Block{}, ErrUnsupported
}

func (m *Mmap) Deallocate(Block, Layout) {}
