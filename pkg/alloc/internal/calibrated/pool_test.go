package calibrated

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeToIndex(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{1, 0},
		{64, 0},
		{65, 1},
		{128, 1},
		{129, 2},
		{4096, 6},
		{MaxSize, Steps - 1},
		{MaxSize + 1, Steps},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SizeToIndex(tt.size), "size %d", tt.size)
	}
}

func TestBucketSize(t *testing.T) {
	assert.Equal(t, MinSize, BucketSize(0))
	assert.Equal(t, MaxSize, BucketSize(Steps-1))
	assert.Zero(t, BucketSize(-1))
	assert.Zero(t, BucketSize(Steps))
}

func TestPool_Get(t *testing.T) {
	p := New()

	assert.Len(t, p.Get(0), MinSize)
	assert.Len(t, p.Get(1), MinSize)
	assert.Len(t, p.Get(100), 128)
	assert.Len(t, p.Get(MaxSize), MaxSize)
	assert.Len(t, p.Get(MaxSize+1), MaxSize+1, "oversized requests bypass the pool")
}

func TestPool_Put(t *testing.T) {
	p := New()

	p.Put(make([]byte, 256))
	p.Put(make([]byte, 100))
	p.Put(nil)
	p.Put(make([]byte, MaxSize*2))

	stats := p.Stats()
	assert.Equal(t, uint64(1), stats[2])
	var total uint64
	for _, n := range stats {
		total += n
	}
	assert.Equal(t, uint64(1), total, "only exact size classes are accepted")
}

func TestPool_PutReslicesToClass(t *testing.T) {
	p := New()
	b := make([]byte, 512)
	p.Put(b[:10])

	got := p.Get(300)
	assert.Len(t, got, 512)
}

func TestPool_Calibrate(t *testing.T) {
	p := New()
	assert.Zero(t, p.MaxRetained())

	small := make([]byte, MinSize)
	for i := 0; i <= CalibrateThreshold; i++ {
		p.Put(small)
	}
	assert.Equal(t, uint64(MinSize), p.MaxRetained())
	assert.Zero(t, p.Stats()[0], "calibration resets the counters")

	p.Put(make([]byte, 1024))
	assert.Equal(t, uint64(1), p.Stats()[4])
}

func TestRetentionLimit(t *testing.T) {
	tests := []struct {
		name   string
		counts map[int]uint64
		want   uint64
	}{
		{"dominant_class", map[int]uint64{0: 99, 4: 1}, 64},
		{"tail_needed", map[int]uint64{0: 90, 3: 5, 5: 5}, 2048},
		{"large_class_busiest", map[int]uint64{2: 50, 7: 50}, 8192},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var counts [Steps]uint64
			for i, n := range tt.counts {
				counts[i] = n
			}
			assert.Equal(t, tt.want, retentionLimit(counts))
		})
	}
}
