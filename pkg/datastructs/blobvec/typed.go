package blobvec

import (
	"iter"
	"unsafe"

	"github.com/huynhanx03/blobvec/pkg/alloc"
)

// Helpers for callers that do know the element type. T must not contain Go
// pointers (see the package documentation).

// LayoutOf returns the layout of T.
func LayoutOf[T any]() Layout {
	return alloc.LayoutOf[T]()
}

// NewOf creates a Vec for elements of type T.
func NewOf[T any](opts ...Option) *Vec {
	return New(LayoutOf[T](), opts...)
}

// DropAs adapts a typed destructor.
func DropAs[T any](fn func(*T) error) DropFunc {
	return func(elem unsafe.Pointer) error {
		return fn((*T)(elem))
	}
}

// PushValue appends x.
func PushValue[T any](v *Vec, x T) {
	v.Push(unsafe.Pointer(&x))
}

// At returns element i as *T, panicking if i is out of range.
func At[T any](v *Vec, i int) *T {
	return (*T)(v.Get(i))
}

// Values copies the live elements into a new slice.
func Values[T any](v *Vec) []T {
	out := make([]T, 0, v.Len())
	for _, p := range v.All() {
		out = append(out, *(*T)(p))
	}
	return out
}

// NextValue yields the next drained element by value.
func NextValue[T any](d *Drain) (T, bool) {
	p, ok := d.Next()
	if !ok {
		var zero T
		return zero, false
	}
	return *(*T)(p), true
}

// NextBackValue yields the next drained element from the back by value.
func NextBackValue[T any](d *Drain) (T, bool) {
	p, ok := d.NextBack()
	if !ok {
		var zero T
		return zero, false
	}
	return *(*T)(p), true
}

// Seq adapts values to the pointer sequence Splice consumes.
func Seq[T any](values ...T) iter.Seq[unsafe.Pointer] {
	return func(yield func(unsafe.Pointer) bool) {
		for i := range values {
			if !yield(unsafe.Pointer(&values[i])) {
				return
			}
		}
	}
}
