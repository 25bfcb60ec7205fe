package utils

import (
	"unsafe"
)

// PointerBytes views n bytes starting at p as a byte slice without copying.
// A zero n yields an empty slice regardless of p.
func PointerBytes(p unsafe.Pointer, n uintptr) []byte {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(p), n)
}

// Offset returns p advanced by n bytes.
func Offset(p unsafe.Pointer, n uintptr) unsafe.Pointer {
	return unsafe.Add(p, n)
}

// Move copies n bytes from src to dst. The regions may overlap.
func Move(dst, src unsafe.Pointer, n uintptr) {
	if n == 0 || dst == src {
		return
	}
	copy(PointerBytes(dst, n), PointerBytes(src, n))
}

// SwapNonOverlapping exchanges n bytes between a and b. The regions must not overlap.
func SwapNonOverlapping(a, b unsafe.Pointer, n uintptr) {
	x := PointerBytes(a, n)
	y := PointerBytes(b, n)
	for i := range x {
		x[i], y[i] = y[i], x[i]
	}
}
