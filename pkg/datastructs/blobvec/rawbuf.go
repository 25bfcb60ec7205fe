package blobvec

import (
	"math"
	"unsafe"

	"go.uber.org/zap"

	"github.com/huynhanx03/blobvec/pkg/alloc"
	"github.com/huynhanx03/blobvec/pkg/utils"
)

// Layout describes one element: byte size and alignment.
type Layout = alloc.Layout

// RawBuf owns an allocation of capacity elements. It knows nothing about
// how many of them are initialized.
//
// Every method takes the element layout; it must be the same layout for the
// whole lifetime of the buffer. ptr is never nil: an empty buffer points at
// an aligned sentinel.
type RawBuf struct {
	ptr   unsafe.Pointer
	block alloc.Block
	cap   int
	alloc alloc.Allocator
}

// NewRawBufIn returns an empty buffer. Zero-sized elements never allocate.
func NewRawBufIn(a alloc.Allocator, layout Layout) RawBuf {
	return RawBuf{
		ptr:   dangling(layout.Align),
		alloc: a,
	}
}

// TryRawBufWithCapacityIn allocates room for exactly capacity elements with a
// single allocator call.
func TryRawBufWithCapacityIn(capacity int, a alloc.Allocator, layout Layout) (RawBuf, error) {
	r := NewRawBufIn(a, layout)
	if capacity < 0 {
		return r, ErrCapacityOverflow
	}
	if layout.IsZeroSized() || capacity == 0 {
		return r, nil
	}
	arr, ok := layout.Repeat(capacity)
	if !ok {
		return r, ErrCapacityOverflow
	}
	b, err := a.Allocate(arr)
	if err != nil {
		return r, &AllocError{Layout: arr, Cause: err}
	}
	r.setBlock(b, capacity)
	return r, nil
}

// Ptr returns the start of the buffer.
func (r *RawBuf) Ptr() unsafe.Pointer {
	return r.ptr
}

// Allocator returns the allocator backing the buffer.
func (r *RawBuf) Allocator() alloc.Allocator {
	return r.alloc
}

// Capacity returns how many elements fit without reallocating.
func (r *RawBuf) Capacity(elemSize uintptr) int {
	if elemSize == 0 {
		return zeroSizedCap
	}
	return r.cap
}

func (r *RawBuf) setBlock(b alloc.Block, capacity int) {
	r.block = b
	r.ptr = b.Ptr
	r.cap = capacity
}

// currentMemory returns the live allocation and its layout, if any.
func (r *RawBuf) currentMemory(layout Layout) (alloc.Block, Layout, bool) {
	if layout.IsZeroSized() || r.cap == 0 {
		return alloc.Block{}, Layout{}, false
	}
	return r.block, Layout{Size: layout.Size * uintptr(r.cap), Align: layout.Align}, true
}

func (r *RawBuf) needsToGrow(length, additional int, layout Layout) bool {
	return additional > r.Capacity(layout.Size)-length
}

// Reserve ensures room for length+additional elements with amortized
// growth. It panics on failure.
func (r *RawBuf) Reserve(length, additional int, layout Layout) {
	if r.needsToGrow(length, additional, layout) {
		handleReserveError(r.growAmortized(length, additional, layout))
	}
}

// TryReserve is Reserve reporting failure as ErrCapacityOverflow or *AllocError.
func (r *RawBuf) TryReserve(length, additional int, layout Layout) error {
	if r.needsToGrow(length, additional, layout) {
		return r.growAmortized(length, additional, layout)
	}
	return nil
}

// ReserveExact ensures room for exactly length+additional elements. It
// panics on failure.
func (r *RawBuf) ReserveExact(length, additional int, layout Layout) {
	if r.needsToGrow(length, additional, layout) {
		handleReserveError(r.growExact(length, additional, layout))
	}
}

// TryReserveExact is ReserveExact reporting failure as an error.
func (r *RawBuf) TryReserveExact(length, additional int, layout Layout) error {
	if r.needsToGrow(length, additional, layout) {
		return r.growExact(length, additional, layout)
	}
	return nil
}

// growOne grows a full buffer by at least one element.
func (r *RawBuf) growOne(layout Layout) {
	handleReserveError(r.growAmortized(r.cap, 1, layout))
}

// growAmortized doubles the capacity, or raises it to length+additional if
// that is larger, and never below minNonZeroCap.
func (r *RawBuf) growAmortized(length, additional int, layout Layout) error {
	if debugAssertions && additional <= 0 {
		panic("blobvec: growAmortized called with no additional capacity")
	}
	if layout.IsZeroSized() {
		// Capacity is already unbounded, so getting here means length+additional overflowed.
		return ErrCapacityOverflow
	}
	required, ok := utils.CheckedAdd(length, additional)
	if !ok {
		return ErrCapacityOverflow
	}
	doubled := math.MaxInt
	if r.cap <= math.MaxInt/2 {
		doubled = r.cap * 2
	}
	capacity := max(doubled, required, minNonZeroCap(layout.Size))
	return r.finishGrow(capacity, layout)
}

// growExact sets the capacity to exactly length+additional.
func (r *RawBuf) growExact(length, additional int, layout Layout) error {
	if debugAssertions && additional <= 0 {
		panic("blobvec: growExact called with no additional capacity")
	}
	if layout.IsZeroSized() {
		return ErrCapacityOverflow
	}
	capacity, ok := utils.CheckedAdd(length, additional)
	if !ok {
		return ErrCapacityOverflow
	}
	return r.finishGrow(capacity, layout)
}

func (r *RawBuf) finishGrow(capacity int, layout Layout) error {
	arr, ok := layout.Repeat(capacity)
	if !ok {
		return ErrCapacityOverflow
	}

	var (
		b   alloc.Block
		err error
	)
	if old, oldLayout, ok := r.currentMemory(layout); ok {
		b, err = r.alloc.Grow(old, oldLayout, arr)
	} else {
		b, err = r.alloc.Allocate(arr)
	}
	if err != nil {
		return &AllocError{Layout: arr, Cause: err}
	}

	Logger().Debug("grow",
		zap.Int("old_cap", r.cap),
		zap.Int("new_cap", capacity),
		zap.Uintptr("elem_size", layout.Size),
	)
	r.setBlock(b, capacity)
	return nil
}

// Shrink reduces the capacity to capacity elements. It panics on failure or
// if capacity exceeds the current capacity.
func (r *RawBuf) Shrink(capacity int, layout Layout) {
	handleReserveError(r.TryShrink(capacity, layout))
}

// TryShrink reduces the capacity to capacity elements. Shrinking to zero
// releases the allocation and resets the pointer to the sentinel.
func (r *RawBuf) TryShrink(capacity int, layout Layout) error {
	if capacity < 0 || capacity > r.Capacity(layout.Size) {
		panic("blobvec: tried to shrink to a larger capacity")
	}
	old, oldLayout, ok := r.currentMemory(layout)
	if !ok || capacity == r.cap {
		return nil
	}
	if capacity == 0 {
		r.alloc.Deallocate(old, oldLayout)
		r.block = alloc.Block{}
		r.ptr = dangling(layout.Align)
		r.cap = 0
		return nil
	}
	newLayout := Layout{Size: layout.Size * uintptr(capacity), Align: layout.Align}
	b, err := r.alloc.Shrink(old, oldLayout, newLayout)
	if err != nil {
		return &AllocError{Layout: newLayout, Cause: err}
	}
	Logger().Debug("shrink",
		zap.Int("old_cap", r.cap),
		zap.Int("new_cap", capacity),
		zap.Uintptr("elem_size", layout.Size),
	)
	r.setBlock(b, capacity)
	return nil
}

// Deallocate releases the allocation, if any. It must be called at most once
// per buffer; the buffer must not be used afterwards.
func (r *RawBuf) Deallocate(layout Layout) {
	if old, oldLayout, ok := r.currentMemory(layout); ok {
		r.alloc.Deallocate(old, oldLayout)
	}
}
