package alloc

import "sync/atomic"

// CountingStats is a snapshot of a Counting allocator.
type CountingStats struct {
	Allocs    uint64
	Grows     uint64
	Shrinks   uint64
	Deallocs  uint64
	Failures  uint64
	LiveBytes int64
}

// Calls returns the number of calls that reached the allocator.
func (s CountingStats) Calls() uint64 {
	return s.Allocs + s.Grows + s.Shrinks + s.Deallocs
}

// Counting records every call made to the wrapped allocator.
type Counting struct {
	inner     Allocator
	allocs    atomic.Uint64
	grows     atomic.Uint64
	shrinks   atomic.Uint64
	deallocs  atomic.Uint64
	failures  atomic.Uint64
	liveBytes atomic.Int64
}

// NewCounting wraps inner.
func NewCounting(inner Allocator) *Counting {
	return &Counting{inner: inner}
}

func (c *Counting) Allocate(layout Layout) (Block, error) {
	c.allocs.Add(1)
	b, err := c.inner.Allocate(layout)
	if err != nil {
		c.failures.Add(1)
		return b, err
	}
	c.liveBytes.Add(int64(layout.Size))
	return b, nil
}

func (c *Counting) Grow(old Block, oldLayout, newLayout Layout) (Block, error) {
	c.grows.Add(1)
	b, err := c.inner.Grow(old, oldLayout, newLayout)
	if err != nil {
		c.failures.Add(1)
		return b, err
	}
	c.liveBytes.Add(int64(newLayout.Size) - int64(oldLayout.Size))
	return b, nil
}

func (c *Counting) Shrink(old Block, oldLayout, newLayout Layout) (Block, error) {
	c.shrinks.Add(1)
	b, err := c.inner.Shrink(old, oldLayout, newLayout)
	if err != nil {
		c.failures.Add(1)
		return b, err
	}
	c.liveBytes.Add(int64(newLayout.Size) - int64(oldLayout.Size))
	return b, nil
}

func (c *Counting) Deallocate(b Block, layout Layout) {
	c.deallocs.Add(1)
	c.inner.Deallocate(b, layout)
	c.liveBytes.Add(-int64(layout.Size))
}

// Stats returns a snapshot of the counters.
func (c *Counting) Stats() CountingStats {
	return CountingStats{
		Allocs:    c.allocs.Load(),
		Grows:     c.grows.Load(),
		Shrinks:   c.shrinks.Load(),
		Deallocs:  c.deallocs.Load(),
		Failures:  c.failures.Load(),
		LiveBytes: c.liveBytes.Load(),
	}
}
