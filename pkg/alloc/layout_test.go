package alloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name    string
		size    uintptr
		align   uintptr
		wantErr bool
	}{
		{"byte", 1, 1, false},
		{"zero_sized", 0, 1, false},
		{"word", 8, 8, false},
		{"page", 4096, 4096, false},
		{"zero_align", 0, 0, true},
		{"odd_align", 6, 3, true},
		{"over_max_align", 8192, 8192, true},
		{"size_not_multiple", 12, 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLayout(tt.size, tt.align)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLayout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Layout{Size: tt.size, Align: tt.align}, l)
		})
	}
}

func TestLayoutOf(t *testing.T) {
	assert.Equal(t, Layout{Size: 8, Align: 8}, LayoutOf[int64]())
	assert.Equal(t, Layout{Size: 0, Align: 1}, LayoutOf[struct{}]())
	assert.True(t, LayoutOf[struct{}]().IsZeroSized())
	assert.False(t, LayoutOf[byte]().IsZeroSized())
}

func TestLayout_Repeat(t *testing.T) {
	l := Layout{Size: 8, Align: 8}

	r, ok := l.Repeat(4)
	require.True(t, ok)
	assert.Equal(t, Layout{Size: 32, Align: 8}, r)

	r, ok = l.Repeat(0)
	require.True(t, ok)
	assert.Zero(t, r.Size)

	_, ok = l.Repeat(math.MaxInt / 4)
	assert.False(t, ok, "multiplication overflows")

	_, ok = l.Repeat(-1)
	assert.False(t, ok)

	_, ok = Layout{Size: 1, Align: 8}.Repeat(math.MaxInt - 3)
	assert.False(t, ok, "no room left for alignment padding")

	_, ok = Layout{Size: 1, Align: 1}.Repeat(math.MaxInt)
	assert.True(t, ok)
}

func TestLayout_String(t *testing.T) {
	assert.Equal(t, "{size: 16, align: 8}", Layout{Size: 16, Align: 8}.String())
}
