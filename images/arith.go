package images

import "math/bits"

// CheckedMul multiplies two non-negative ints, failing with
// ErrDimensionTooLarge instead of wrapping on overflow.
func CheckedMul(a, b int) (int, error) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > uint64(maxInt) {
		return 0, ErrDimensionTooLarge
	}
	return int(lo), nil
}

// CheckedAdd adds two non-negative ints with the same overflow contract as
// CheckedMul.
func CheckedAdd(a, b int) (int, error) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || sum > uint64(maxInt) {
		return 0, ErrDimensionTooLarge
	}
	return int(sum), nil
}

const maxInt = int(^uint(0) >> 1)
