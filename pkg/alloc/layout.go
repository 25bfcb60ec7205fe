package alloc

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/huynhanx03/blobvec/pkg/utils"
)

const (
	// MaxAlign is the largest element alignment supported.
	MaxAlign = 4096

	// MaxAllocBytes is the largest single allocation an allocator may be asked for,
	// padding for alignment included.
	MaxAllocBytes = math.MaxInt
)

// Layout describes the storage of one element: its byte size and alignment.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// NewLayout validates and returns a Layout.
// Align must be a power of two no larger than MaxAlign, and Size a multiple of Align.
func NewLayout(size, align uintptr) (Layout, error) {
	if !utils.IsPowerOfTwo(align) || align > MaxAlign {
		return Layout{}, errors.Wrapf(ErrInvalidLayout, "align %d", align)
	}
	if size%align != 0 {
		return Layout{}, errors.Wrapf(ErrInvalidLayout, "size %d is not a multiple of align %d", size, align)
	}
	return Layout{Size: size, Align: align}, nil
}

// LayoutOf returns the layout of T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{Size: unsafe.Sizeof(zero), Align: unsafe.Alignof(zero)}
}

// IsZeroSized reports whether elements of this layout occupy no storage.
func (l Layout) IsZeroSized() bool {
	return l.Size == 0
}

// Repeat returns the layout of an array of n elements.
// It reports false if the array size overflows or exceeds MaxAllocBytes once
// alignment padding is accounted for.
func (l Layout) Repeat(n int) (Layout, bool) {
	size, ok := utils.CheckedMul(int(l.Size), n)
	if !ok {
		return Layout{}, false
	}
	if size > MaxAllocBytes-int(l.Align-1) {
		return Layout{}, false
	}
	return Layout{Size: uintptr(size), Align: l.Align}, true
}

func (l Layout) String() string {
	return fmt.Sprintf("{size: %d, align: %d}", l.Size, l.Align)
}
