package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/blobvec/pkg/settings"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  settings.Allocator
		want any
	}{
		{"default", settings.Allocator{}, Heap{}},
		{"heap", settings.Allocator{Kind: "heap"}, Heap{}},
		{"pooled_upper", settings.Allocator{Kind: "POOLED"}, &Pooled{}},
		{"mmap", settings.Allocator{Kind: KindMmap}, &Mmap{}},
		{"limited", settings.Allocator{MemoryLimit: 1 << 10}, &Limited{}},
		{"counting", settings.Allocator{MemoryLimit: 1 << 10, CountCalls: true}, &Counting{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := FromConfig(tt.cfg)
			require.NoError(t, err)
			assert.IsType(t, tt.want, a)
		})
	}
}

func TestFromConfig_Chain(t *testing.T) {
	a, err := FromConfig(settings.Allocator{Kind: KindPooled, MemoryLimit: 64, CountCalls: true})
	require.NoError(t, err)

	c := a.(*Counting)
	lim, ok := c.inner.(*Limited)
	require.True(t, ok)
	assert.Equal(t, int64(64), lim.Limit())
	assert.IsType(t, &Pooled{}, lim.inner)
}

func TestFromConfig_UnknownKind(t *testing.T) {
	_, err := FromConfig(settings.Allocator{Kind: "arena"})
	assert.ErrorIs(t, err, ErrUnknownKind)
}
