package blobvec

import (
	"iter"
	"unsafe"

	"go.uber.org/multierr"
)

// Splice replaces [start, end) with the elements of replacement, copying
// Layout().Size bytes from each yielded pointer. The removed elements are
// destructed. replacement may be longer or shorter than the range.
//
// Surplus replacement elements are staged in a temporary vector from the
// same allocator, then the tail is moved once to make room for all of them.
func (v *Vec) Splice(start, end int, replacement iter.Seq[unsafe.Pointer]) (err error) {
	d := v.Drain(start, end)
	defer func() {
		err = multierr.Append(err, d.Close())
	}()

	from, n := d.head, d.end-d.head
	d.head = d.end
	err = v.dropRange(from, n)

	next, stop := iter.Pull(replacement)
	defer stop()

	if !d.fill(next) {
		return err
	}

	rest := New(v.layout, WithAllocator(v.buf.Allocator()))
	defer rest.Close()
	for p, ok := next(); ok; p, ok = next() {
		rest.Push(p)
	}
	if rest.Len() == 0 {
		return err
	}

	d.moveTail(rest.Len())
	i := 0
	d.fill(func() (unsafe.Pointer, bool) {
		if i == rest.Len() {
			return nil, false
		}
		p := rest.at(i)
		i++
		return p, true
	})
	return err
}
