package align

// Alignment utilities for byte offsets inside staging buffers. All
// alignments handled here are powers of two; callers validate that where
// the value comes from outside (see IsPowerOfTwo).

// Up returns n rounded up to the next multiple of alignment.
// alignment must be a non-zero power of two.
//
// Example:
//
//	Up(0, 8) = 0
//	Up(1, 8) = 8
//	Up(8, 8) = 8
//	Up(9, 8) = 16
func Up(n, alignment uint64) uint64 {
	mask := alignment - 1
	return (n + mask) &^ mask
}

// IsAligned reports whether n is a multiple of alignment.
// alignment must be a non-zero power of two.
func IsAligned(n, alignment uint64) bool {
	return n&(alignment-1) == 0
}

// IsPowerOfTwo reports whether n is a power of two. Zero is not.
func IsPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}
