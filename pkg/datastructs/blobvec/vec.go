package blobvec

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/huynhanx03/blobvec/pkg/alloc"
	"github.com/huynhanx03/blobvec/pkg/utils"
)

// DropFunc destructs the element at elem. A returned error or a panic both
// count as a failed destruction; the element is considered gone either way.
type DropFunc func(elem unsafe.Pointer) error

// Vec is a growable array of elements described only by their Layout.
// It is NOT thread-safe.
type Vec struct {
	layout   Layout
	len      int
	buf      RawBuf
	drop     DropFunc
	draining bool
	closed   bool
}

type options struct {
	alloc    alloc.Allocator
	drop     DropFunc
	capacity int
}

// Option configures a Vec.
type Option func(*options)

// WithAllocator sets the allocator. The default is alloc.Heap.
func WithAllocator(a alloc.Allocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}

// WithDrop registers the element destructor.
func WithDrop(fn DropFunc) Option {
	return func(o *options) {
		o.drop = fn
	}
}

// WithCapacity pre-sizes the vector with a single exact allocation.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// New creates a Vec for elements of layout. It panics if the layout is
// invalid or the initial allocation fails.
func New(layout Layout, opts ...Option) *Vec {
	v, err := TryNew(layout, opts...)
	if err != nil {
		var ae *AllocError
		if errors.As(err, &ae) || errors.Is(err, ErrCapacityOverflow) {
			handleReserveError(err)
		}
		panic(err)
	}
	return v
}

// TryNew is New reporting failures as errors.
func TryNew(layout Layout, opts ...Option) (*Vec, error) {
	if _, err := alloc.NewLayout(layout.Size, layout.Align); err != nil {
		return nil, err
	}
	o := options{alloc: alloc.NewHeap()}
	for _, opt := range opts {
		opt(&o)
	}
	buf, err := TryRawBufWithCapacityIn(o.capacity, o.alloc, layout)
	if err != nil {
		return nil, err
	}
	return &Vec{
		layout: layout,
		buf:    buf,
		drop:   o.drop,
	}, nil
}

// Layout returns the element layout.
func (v *Vec) Layout() Layout {
	return v.layout
}

// Len returns the number of live elements. While a Drain is outstanding it
// excludes the drained range and the tail.
func (v *Vec) Len() int {
	return v.len
}

// IsEmpty reports whether the vector holds no elements.
func (v *Vec) IsEmpty() bool {
	return v.len == 0
}

// Cap returns the capacity in elements.
func (v *Vec) Cap() int {
	return v.buf.Capacity(v.layout.Size)
}

// Ptr returns the start of the element storage. It is invalidated by growth.
func (v *Vec) Ptr() unsafe.Pointer {
	return v.buf.Ptr()
}

// Dropper returns the registered destructor, or nil.
func (v *Vec) Dropper() DropFunc {
	return v.drop
}

func (v *Vec) checkMut() {
	if v.draining {
		panic(ErrDrainActive)
	}
	if v.closed {
		panic(ErrClosed)
	}
}

func (v *Vec) boundsCheck(i, limit int) {
	if i < 0 || i >= limit {
		panic(fmt.Sprintf("blobvec: index out of range [%d] with length %d", i, v.len))
	}
}

// at returns the address of slot i without any checks.
func (v *Vec) at(i int) unsafe.Pointer {
	return utils.Offset(v.buf.Ptr(), uintptr(i)*v.layout.Size)
}

// aliasOffset returns the byte offset of p within the live elements, if p
// points into them.
func (v *Vec) aliasOffset(p unsafe.Pointer) (uintptr, bool) {
	if v.layout.Size == 0 || v.len == 0 {
		return 0, false
	}
	base := uintptr(v.buf.Ptr())
	addr := uintptr(p)
	if addr < base || addr >= base+uintptr(v.len)*v.layout.Size {
		return 0, false
	}
	return addr - base, true
}

// grow runs fn, which may move the storage, and returns value rebased onto
// the new storage when it pointed into the old one.
func (v *Vec) grow(value unsafe.Pointer, fn func()) unsafe.Pointer {
	off, aliased := v.aliasOffset(value)
	fn()
	if aliased {
		return utils.Offset(v.buf.Ptr(), off)
	}
	return value
}

// GetUnchecked returns the address of element i. The caller guarantees i < Len.
func (v *Vec) GetUnchecked(i int) unsafe.Pointer {
	if debugAssertions && (i < 0 || i >= v.len) {
		panic(fmt.Sprintf("blobvec: index out of range [%d] with length %d", i, v.len))
	}
	return v.at(i)
}

// Get returns the address of element i, panicking if it is out of range.
// The returned pointer may be written through; it is invalidated by growth.
func (v *Vec) Get(i int) unsafe.Pointer {
	v.boundsCheck(i, v.len)
	return v.at(i)
}

// All iterates over the live elements in order.
func (v *Vec) All() iter.Seq2[int, unsafe.Pointer] {
	return func(yield func(int, unsafe.Pointer) bool) {
		for i := 0; i < v.len; i++ {
			if !yield(i, v.at(i)) {
				return
			}
		}
	}
}

// Reserve ensures room for at least n more elements, growing amortized.
func (v *Vec) Reserve(n int) {
	v.checkMut()
	v.buf.Reserve(v.len, n, v.layout)
}

// ReserveExact ensures room for exactly n more elements.
func (v *Vec) ReserveExact(n int) {
	v.checkMut()
	v.buf.ReserveExact(v.len, n, v.layout)
}

// TryReserve is Reserve returning ErrCapacityOverflow or *AllocError.
func (v *Vec) TryReserve(n int) error {
	v.checkMut()
	return v.buf.TryReserve(v.len, n, v.layout)
}

// TryReserveExact is ReserveExact returning ErrCapacityOverflow or *AllocError.
func (v *Vec) TryReserveExact(n int) error {
	v.checkMut()
	return v.buf.TryReserveExact(v.len, n, v.layout)
}

// ShrinkToFit releases capacity beyond Len.
func (v *Vec) ShrinkToFit() {
	v.checkMut()
	if v.Cap() > v.len {
		v.buf.Shrink(v.len, v.layout)
	}
}

// ShrinkTo lowers the capacity to max(Len, minCapacity). It never grows.
func (v *Vec) ShrinkTo(minCapacity int) {
	v.checkMut()
	if v.Cap() > minCapacity {
		v.buf.Shrink(max(v.len, minCapacity), v.layout)
	}
}

// Push copies Layout().Size bytes from value into a new last slot.
// Ownership of those bytes moves into the vector. value may point at one of
// the vector's own elements.
func (v *Vec) Push(value unsafe.Pointer) {
	v.checkMut()
	if v.len == v.buf.Capacity(v.layout.Size) {
		value = v.grow(value, func() { v.buf.growOne(v.layout) })
	}
	utils.Move(v.at(v.len), value, v.layout.Size)
	v.len++
}

// Pop removes the last element without destructing it and returns its
// address, valid until the next mutation.
func (v *Vec) Pop() (unsafe.Pointer, bool) {
	v.checkMut()
	if v.len == 0 {
		return nil, false
	}
	v.len--
	return v.at(v.len), true
}

// SwapRemoveForget removes element i by swapping it with the last element,
// without destructing it. It returns the address of the removed bytes, valid
// until the next mutation. O(1); order is not preserved.
func (v *Vec) SwapRemoveForget(i int) unsafe.Pointer {
	v.checkMut()
	v.boundsCheck(i, v.len)
	last := v.len - 1
	if i != last {
		utils.SwapNonOverlapping(v.at(i), v.at(last), v.layout.Size)
	}
	v.len = last
	return v.at(last)
}

// SwapRemoveInto swap-removes element i and copies its bytes to dst.
func (v *Vec) SwapRemoveInto(i int, dst unsafe.Pointer) {
	p := v.SwapRemoveForget(i)
	utils.Move(dst, p, v.layout.Size)
}

// SwapRemove swap-removes element i and destructs it.
func (v *Vec) SwapRemove(i int) error {
	p := v.SwapRemoveForget(i)
	if v.drop == nil {
		return nil
	}
	return v.drop(p)
}

// ShiftRemoveForget removes element i, shifting every later element one slot
// left, without destructing it. It returns the address of the removed
// bytes, valid until the next mutation. O(Len-i); order is preserved.
func (v *Vec) ShiftRemoveForget(i int) unsafe.Pointer {
	v.checkMut()
	v.boundsCheck(i, v.len)
	size := v.layout.Size
	last := v.len - 1
	// Walking the removed element rightwards parks it past the new length.
	for j := i; j < last; j++ {
		utils.SwapNonOverlapping(v.at(j), v.at(j+1), size)
	}
	v.len = last
	return v.at(last)
}

// ShiftRemove shift-removes element i and destructs it.
func (v *Vec) ShiftRemove(i int) error {
	p := v.ShiftRemoveForget(i)
	if v.drop == nil {
		return nil
	}
	return v.drop(p)
}

// ShiftInsert inserts value at i, shifting [i, Len) one slot right.
// O(Len-i); order is preserved. value may point at one of the vector's own
// elements.
func (v *Vec) ShiftInsert(i int, value unsafe.Pointer) {
	v.checkMut()
	v.boundsCheck(i, v.len+1)
	if v.len == v.buf.Capacity(v.layout.Size) {
		value = v.grow(value, func() { v.buf.growOne(v.layout) })
	}
	size := v.layout.Size
	p := v.at(i)
	if i < v.len {
		// An aliased value at or after i moves with the shifted elements.
		if off, ok := v.aliasOffset(value); ok && off >= uintptr(i)*size {
			value = utils.Offset(value, size)
		}
		utils.Move(utils.Offset(p, size), p, uintptr(v.len-i)*size)
	}
	utils.Move(p, value, size)
	v.len++
}

// ReplaceInsert stores value at i. When i == Len it behaves like Push.
//
// Otherwise the old element is destructed first. While its destructor runs
// the length is held at zero; if the destructor fails, value is destructed
// too, the length stays at zero (remaining elements are leaked, never
// destructed twice) and the failure is returned or re-panicked.
func (v *Vec) ReplaceInsert(i int, value unsafe.Pointer) (err error) {
	v.checkMut()
	v.boundsCheck(i, v.len+1)
	if i == v.len {
		v.Push(value)
		return nil
	}
	slot := v.at(i)
	if v.drop == nil {
		utils.Move(slot, value, v.layout.Size)
		return nil
	}

	oldLen := v.len
	v.len = 0
	failed := true
	defer func() {
		if failed {
			err = multierr.Append(err, v.drop(value))
		}
	}()
	if err = v.drop(slot); err != nil {
		return err
	}
	failed = false
	v.len = oldLen
	utils.Move(slot, value, v.layout.Size)
	return nil
}

// dropRange destructs count slots starting at start. Errors are collected
// and every slot is visited; a panic stops the walk and leaks the rest.
// Callers update the length first.
func (v *Vec) dropRange(start, count int) error {
	if v.drop == nil || count <= 0 {
		return nil
	}
	var errs error
	for k := 0; k < count; k++ {
		errs = multierr.Append(errs, v.drop(v.at(start+k)))
	}
	return errs
}

// Clear destructs every element in order. The length is zero before the
// first destructor runs.
func (v *Vec) Clear() error {
	v.checkMut()
	n := v.len
	v.len = 0
	return v.dropRange(0, n)
}

// Truncate keeps the first n elements and destructs the rest. It is a no-op
// when n >= Len. The length is updated before any destructor runs.
func (v *Vec) Truncate(n int) error {
	v.checkMut()
	if n < 0 {
		panic(fmt.Sprintf("blobvec: negative truncate length %d", n))
	}
	if n >= v.len {
		return nil
	}
	old := v.len
	v.len = n
	return v.dropRange(n, old-n)
}

// ExtendWith appends count bitwise copies of value. The length advances
// after every write. With count == 0 value is destructed instead. value may
// point at one of the vector's own elements. It panics if count is negative.
func (v *Vec) ExtendWith(count int, value unsafe.Pointer) error {
	v.checkMut()
	if count < 0 {
		panic(fmt.Sprintf("blobvec: negative extend count %d", count))
	}
	if count == 0 {
		if v.drop != nil {
			return v.drop(value)
		}
		return nil
	}
	value = v.grow(value, func() { v.buf.Reserve(v.len, count, v.layout) })
	size := v.layout.Size
	for k := 0; k < count; k++ {
		utils.Move(v.at(v.len), value, size)
		v.len++
	}
	return nil
}

// Append moves count contiguous elements from src with one bulk copy.
// src must not overlap the vector's storage. It panics if count is negative.
func (v *Vec) Append(src unsafe.Pointer, count int) {
	v.checkMut()
	if count < 0 {
		panic(fmt.Sprintf("blobvec: negative append count %d", count))
	}
	if count == 0 {
		return
	}
	v.buf.Reserve(v.len, count, v.layout)
	utils.Move(v.at(v.len), src, uintptr(count)*v.layout.Size)
	v.len += count
}

// Close destructs every element and releases the storage. Memory is released
// even if a destructor panics. Calling Close again is a no-op.
func (v *Vec) Close() error {
	if v.closed {
		return nil
	}
	if v.draining {
		panic(ErrDrainActive)
	}
	v.closed = true
	n := v.len
	v.len = 0
	defer v.buf.Deallocate(v.layout)
	return v.dropRange(0, n)
}
