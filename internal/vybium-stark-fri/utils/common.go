package utils

// Integer covers the integer types used for domain sizes and orders.
type Integer interface {
	~int | ~uint32 | ~uint64
}

// IsPowerOfTwo checks if a number is a power of 2
func IsPowerOfTwo[T Integer](n T) bool {
	return n > 0 && (n&(n-1)) == 0
}

// Log2 computes the base-2 logarithm of a power of 2, or -1 otherwise
func Log2[T Integer](n T) int {
	if !IsPowerOfTwo(n) {
		return -1
	}

	result := 0
	for n > 1 {
		n >>= 1
		result++
	}
	return result
}

// NextPowerOfTwo returns the smallest power of 2 >= n
func NextPowerOfTwo(n int) int {
	power := 1
	for power < n {
		power <<= 1
	}
	return power
}
