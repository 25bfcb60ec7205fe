package utils

import "math/bits"

// IsPowerOfTwo reports whether the given n is a power of two.
func IsPowerOfTwo(n uintptr) bool {
	return n > 0 && n&(n-1) == 0
}

// AlignUp rounds n up to the next multiple of align. align must be a power of two.
// The second result is false if the rounding overflows.
func AlignUp(n, align uintptr) (uintptr, bool) {
	mask := align - 1
	sum, carry := bits.Add64(uint64(n), uint64(mask), 0)
	if carry != 0 || sum > uint64(^uintptr(0)) {
		return 0, false
	}
	return uintptr(sum) &^ mask, true
}

// CheckedMul returns a*b for non-negative operands, or false if the product
// does not fit in an int.
func CheckedMul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > uint64(maxInt) {
		return 0, false
	}
	return int(lo), true
}

// CheckedAdd returns a+b for non-negative operands, or false on overflow.
func CheckedAdd(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	s := a + b
	if s < a {
		return 0, false
	}
	return s, true
}

const maxInt = int(^uint(0) >> 1)
