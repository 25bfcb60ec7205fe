package blobvec

import (
	"math"
	"unsafe"

	"github.com/huynhanx03/blobvec/pkg/alloc"
	"github.com/huynhanx03/blobvec/pkg/utils"
)

const (
	// zeroSizedCap is the capacity reported for zero-sized elements.
	zeroSizedCap = math.MaxInt

	// minCapTiny is the smallest non-zero capacity for 1-byte elements.
	minCapTiny = 8
	// minCapSmall is the smallest non-zero capacity for elements up to smallElemSize bytes.
	minCapSmall = 4
	// minCapLarge is the smallest non-zero capacity for larger elements.
	minCapLarge = 1

	smallElemSize = 1024
)

// sentinel backs the dangling pointer of empty buffers. It is never written.
var sentinel [2 * alloc.MaxAlign]byte

// dangling returns a non-nil pointer aligned to align that must not be dereferenced.
func dangling(align uintptr) unsafe.Pointer {
	base := uintptr(unsafe.Pointer(&sentinel[0]))
	aligned, _ := utils.AlignUp(base, align)
	return unsafe.Pointer(&sentinel[aligned-base])
}

// minNonZeroCap skips the tiny capacities (1, 2, ...) that amortize poorly
// for small elements without over-allocating large ones.
func minNonZeroCap(elemSize uintptr) int {
	switch {
	case elemSize == 1:
		return minCapTiny
	case elemSize <= smallElemSize:
		return minCapSmall
	default:
		return minCapLarge
	}
}
