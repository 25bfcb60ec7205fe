package blobvec

import (
	"errors"
	"unsafe"

	"github.com/huynhanx03/blobvec/pkg/alloc"
)

var errDrop = errors.New("drop failed")

// dropRecorder is a drop-counting destructor for int64 elements.
type dropRecorder struct {
	dropped []int64
	failOn  map[int64]bool
	panicOn map[int64]bool
}

func newDropRecorder() *dropRecorder {
	return &dropRecorder{failOn: map[int64]bool{}, panicOn: map[int64]bool{}}
}

func (r *dropRecorder) drop(p unsafe.Pointer) error {
	x := *(*int64)(p)
	r.dropped = append(r.dropped, x)
	if r.panicOn[x] {
		panic("destructor panicked")
	}
	if r.failOn[x] {
		return errDrop
	}
	return nil
}

func (r *dropRecorder) count(x int64) int {
	n := 0
	for _, d := range r.dropped {
		if d == x {
			n++
		}
	}
	return n
}

// failingAllocator fails every call after the first ok calls.
type failingAllocator struct {
	inner alloc.Allocator
	ok    int
	calls int
}

var errInjected = errors.New("injected allocation failure")

func (f *failingAllocator) pass() bool {
	f.calls++
	return f.calls <= f.ok
}

func (f *failingAllocator) Allocate(l alloc.Layout) (alloc.Block, error) {
	if !f.pass() {
		return alloc.Block{}, errInjected
	}
	return f.inner.Allocate(l)
}

func (f *failingAllocator) Grow(b alloc.Block, o, n alloc.Layout) (alloc.Block, error) {
	if !f.pass() {
		return alloc.Block{}, errInjected
	}
	return f.inner.Grow(b, o, n)
}

func (f *failingAllocator) Shrink(b alloc.Block, o, n alloc.Layout) (alloc.Block, error) {
	if !f.pass() {
		return alloc.Block{}, errInjected
	}
	return f.inner.Shrink(b, o, n)
}

func (f *failingAllocator) Deallocate(b alloc.Block, l alloc.Layout) {
	f.inner.Deallocate(b, l)
}

func int64Vec(values ...int64) *Vec {
	v := NewOf[int64]()
	for _, x := range values {
		PushValue(v, x)
	}
	return v
}

func int64VecWithDrop(r *dropRecorder, values ...int64) *Vec {
	v := NewOf[int64](WithDrop(r.drop))
	for _, x := range values {
		PushValue(v, x)
	}
	return v
}

// recoverPanic runs fn and returns the recovered value, if any.
func recoverPanic(fn func()) (r any) {
	defer func() { r = recover() }()
	fn()
	return nil
}
