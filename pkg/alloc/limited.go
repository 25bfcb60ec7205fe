package alloc

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

// Limited enforces a byte budget on top of another allocator.
// Only the requested layout sizes are charged, not alignment padding.
type Limited struct {
	inner Allocator
	limit int64
	sem   *semaphore.Weighted
	used  atomic.Int64
}

// NewLimited wraps inner with a budget of limit bytes.
func NewLimited(inner Allocator, limit int64) *Limited {
	return &Limited{
		inner: inner,
		limit: limit,
		sem:   semaphore.NewWeighted(limit),
	}
}

func (l *Limited) acquire(n int64) error {
	if n <= 0 {
		return nil
	}
	if !l.sem.TryAcquire(n) {
		return errors.Wrapf(ErrMemoryLimitExceeded, "need %d bytes, %d of %d in use", n, l.used.Load(), l.limit)
	}
	l.used.Add(n)
	return nil
}

func (l *Limited) release(n int64) {
	if n <= 0 {
		return
	}
	l.sem.Release(n)
	l.used.Add(-n)
}

// Allocate charges layout.Size against the budget before delegating.
func (l *Limited) Allocate(layout Layout) (Block, error) {
	n := int64(layout.Size)
	if err := l.acquire(n); err != nil {
		return Block{}, err
	}
	b, err := l.inner.Allocate(layout)
	if err != nil {
		l.release(n)
		return Block{}, err
	}
	return b, nil
}

// Grow charges only the size difference.
func (l *Limited) Grow(old Block, oldLayout, newLayout Layout) (Block, error) {
	delta := int64(newLayout.Size) - int64(oldLayout.Size)
	if err := l.acquire(delta); err != nil {
		return Block{}, err
	}
	b, err := l.inner.Grow(old, oldLayout, newLayout)
	if err != nil {
		l.release(delta)
		return Block{}, err
	}
	return b, nil
}

// Shrink refunds the size difference once the inner allocator succeeds.
func (l *Limited) Shrink(old Block, oldLayout, newLayout Layout) (Block, error) {
	b, err := l.inner.Shrink(old, oldLayout, newLayout)
	if err != nil {
		return Block{}, err
	}
	l.release(int64(oldLayout.Size) - int64(newLayout.Size))
	return b, nil
}

// Deallocate refunds the block's size.
func (l *Limited) Deallocate(b Block, layout Layout) {
	l.inner.Deallocate(b, layout)
	l.release(int64(layout.Size))
}

// Used returns the bytes currently charged.
func (l *Limited) Used() int64 {
	return l.used.Load()
}

// Limit returns the configured budget.
func (l *Limited) Limit() int64 {
	return l.limit
}
