package blobvec

import (
	"fmt"
	"unsafe"

	"github.com/huynhanx03/blobvec/pkg/utils"
)

// Drain removes a contiguous range from a Vec, yielding its elements.
//
// While a Drain is outstanding the Vec reports a length of start, so the
// drained range and the tail behind it are invisible, and every mutating
// method on the Vec panics with ErrDrainActive. Close, KeepRest or full
// consumption followed by Close ends the drain.
//
// Pointers returned by Next and NextBack become invalid once the drain ends.
type Drain struct {
	vec *Vec
	// tailStart and tailLen locate the untouched suffix.
	tailStart int
	tailLen   int
	// [head, end) are the elements not yet yielded.
	head int
	end  int
	done bool
}

// Drain starts draining [start, end). It panics if the range is invalid.
func (v *Vec) Drain(start, end int) *Drain {
	v.checkMut()
	if start < 0 || start > end || end > v.len {
		panic(fmt.Sprintf("blobvec: drain range [%d:%d] out of bounds for length %d", start, end, v.len))
	}
	d := &Drain{
		vec:       v,
		tailStart: end,
		tailLen:   v.len - end,
		head:      start,
		end:       end,
	}
	v.len = start
	v.draining = true
	return d
}

// Len returns the number of elements not yet yielded.
func (d *Drain) Len() int {
	return d.end - d.head
}

// Next yields the next element from the front. Ownership of its bytes
// passes to the caller; they stay readable until the drain ends.
func (d *Drain) Next() (unsafe.Pointer, bool) {
	if d.head == d.end {
		return nil, false
	}
	p := d.vec.at(d.head)
	d.head++
	return p, true
}

// NextBack yields the next element from the back.
func (d *Drain) NextBack() (unsafe.Pointer, bool) {
	if d.head == d.end {
		return nil, false
	}
	d.end--
	return d.vec.at(d.end), true
}

// AsSlice returns the bytes of the elements not yet yielded.
func (d *Drain) AsSlice() []byte {
	n := uintptr(d.end-d.head) * d.vec.layout.Size
	return utils.PointerBytes(d.vec.at(d.head), n)
}

// KeepRest ends the drain without destructing anything. Unyielded elements
// and the tail are moved back behind the head; only already yielded
// elements are removed.
func (d *Drain) KeepRest() {
	if d.done {
		return
	}
	v := d.vec
	size := v.layout.Size
	start := v.len
	unyielded := d.end - d.head

	if size != 0 {
		if d.head != start && unyielded > 0 {
			utils.Move(v.at(start), v.at(d.head), uintptr(unyielded)*size)
		}
		if d.tailStart != start+unyielded && d.tailLen > 0 {
			utils.Move(v.at(start+unyielded), v.at(d.tailStart), uintptr(d.tailLen)*size)
		}
	}
	v.len = start + unyielded + d.tailLen

	d.head = d.end
	d.tailLen = 0
	d.release()
}

// Close ends the drain, destructing every element not yet yielded in order.
// The tail is moved back into place even if a destructor panics. Calling
// Close again is a no-op.
//
// For zero-sized elements no memory moves; only the length changes.
func (d *Drain) Close() error {
	if d.done {
		return nil
	}
	from, n := d.head, d.end-d.head
	d.head = d.end
	defer d.restoreTail()
	return d.vec.dropRange(from, n)
}

// restoreTail moves the tail to directly after the vector's current length
// and releases the vector.
func (d *Drain) restoreTail() {
	v := d.vec
	if d.tailLen > 0 {
		start := v.len
		if d.tailStart != start {
			utils.Move(v.at(start), v.at(d.tailStart), uintptr(d.tailLen)*v.layout.Size)
		}
		v.len = start + d.tailLen
		d.tailLen = 0
	}
	d.release()
}

func (d *Drain) release() {
	d.done = true
	d.vec.draining = false
}

// fill writes elements pulled from next into the gap [Len, tailStart),
// advancing the length after each write. It reports false if next ran dry
// before the gap was full.
func (d *Drain) fill(next func() (unsafe.Pointer, bool)) bool {
	v := d.vec
	for v.len < d.tailStart {
		p, ok := next()
		if !ok {
			return false
		}
		utils.Move(v.at(v.len), p, v.layout.Size)
		v.len++
	}
	return true
}

// moveTail makes room for additional elements in front of the tail.
func (d *Drain) moveTail(additional int) {
	v := d.vec
	used := d.tailStart + d.tailLen
	v.buf.Reserve(used, additional, v.layout)

	newTailStart := d.tailStart + additional
	utils.Move(v.at(newTailStart), v.at(d.tailStart), uintptr(d.tailLen)*v.layout.Size)
	d.tailStart = newTailStart
}
