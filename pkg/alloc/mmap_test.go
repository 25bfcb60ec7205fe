//go:build unix

package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmap(t *testing.T) {
	exercise(t, NewMmap())
}

func TestMmap_PageAligned(t *testing.T) {
	m := NewMmap()
	l := Layout{Size: 24, Align: 8}
	b, err := m.Allocate(l)
	require.NoError(t, err)
	assert.Zero(t, uintptr(b.Ptr)%m.pageSize)
	assert.Len(t, b.Mem, 24, "no padding below page alignment")
	m.Deallocate(b, l)

	m.Deallocate(Block{}, l)
}
