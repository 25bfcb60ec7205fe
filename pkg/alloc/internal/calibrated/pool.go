// Package calibrated implements a size-class pool of byte blocks that learns
// which classes are worth retaining.
package calibrated

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
)

const (
	MinBitSize = 6  // 64 bytes (CPU cache line)
	Steps      = 20 // 64B to 32MB

	MinSize = 1 << MinBitSize
	MaxSize = 1 << (MinBitSize + Steps - 1)

	CalibrateThreshold = 42000
	Percentile95       = 0.95
)

// Pool recycles byte blocks in power-of-two size classes.
// Blocks larger than MaxSize bypass the pool entirely.
//
// Every CalibrateThreshold returns to one class the pool retunes its
// retention limit: classes are ranked by returns since the last tuning and
// the limit becomes the largest class among those covering Percentile95 of
// them. Larger blocks are dropped on Put from then on.
type Pool struct {
	returns [Steps]atomic.Uint64
	tuning  atomic.Bool
	limit   atomic.Uint64
	classes [Steps]sync.Pool
}

// New creates an empty pool.
func New() *Pool {
	p := &Pool{}
	for i := range p.classes {
		size := BucketSize(i)
		p.classes[i].New = func() any {
			b := make([]byte, size)
			return &b
		}
	}
	return p
}

// Get returns a block of at least size bytes. Its length is the full size
// class; contents are unspecified.
func (p *Pool) Get(size int) []byte {
	idx := SizeToIndex(max(size, MinSize))
	if idx >= Steps {
		return make([]byte, size)
	}
	return *p.classes[idx].Get().(*[]byte)
}

// Put returns a block obtained from Get. Blocks whose capacity is not a
// size class are dropped.
func (p *Pool) Put(b []byte) {
	size := cap(b)
	idx := SizeToIndex(size)
	if size == 0 || idx >= Steps || BucketSize(idx) != size {
		return
	}

	if p.returns[idx].Add(1) > CalibrateThreshold {
		p.retune()
	}
	if limit := p.limit.Load(); limit > 0 && uint64(size) > limit {
		return
	}

	b = b[:size]
	p.classes[idx].Put(&b)
}

// retune resets the return counters and recomputes the retention limit.
// Concurrent callers skip while one tuning is in flight.
func (p *Pool) retune() {
	if !p.tuning.CompareAndSwap(false, true) {
		return
	}
	defer p.tuning.Store(false)

	var counts [Steps]uint64
	for i := range p.returns {
		counts[i] = p.returns[i].Swap(0)
	}
	p.limit.Store(retentionLimit(counts))
}

// retentionLimit returns the largest class size among the busiest classes
// that together account for Percentile95 of counts.
func retentionLimit(counts [Steps]uint64) uint64 {
	order := make([]int, Steps)
	var total uint64
	for i, n := range counts {
		order[i] = i
		total += n
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(counts[b], counts[a])
	})

	budget := uint64(float64(total) * Percentile95)
	var covered, limit uint64
	for _, i := range order {
		if covered > budget {
			break
		}
		covered += counts[i]
		limit = max(limit, uint64(BucketSize(i)))
	}
	return limit
}

// MaxRetained returns the largest size class currently retained (0 before
// the first tuning).
func (p *Pool) MaxRetained() uint64 {
	return p.limit.Load()
}

// Stats returns return counts per size class since the last tuning.
func (p *Pool) Stats() [Steps]uint64 {
	var out [Steps]uint64
	for i := range p.returns {
		out[i] = p.returns[i].Load()
	}
	return out
}

// SizeToIndex returns the size class index for n bytes.
func SizeToIndex(n int) int {
	n--
	n >>= MinBitSize
	idx := 0
	for n > 0 {
		n >>= 1
		idx++
	}
	return idx
}

// BucketSize returns the size of class i.
func BucketSize(i int) int {
	if i < 0 || i >= Steps {
		return 0
	}
	return MinSize << i
}
