package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
// Reused storage keeps its old contents; callers that need silence call Zero.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}

	if cap(buf) >= n {
		return buf[:n]
	}

	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	clear(buf)
}

// Frames returns the number of stereo frames that can be processed from
// left and right: the shorter of the two lengths.
func Frames(left, right []float64) int {
	return min(len(left), len(right))
}

// Interleave writes left and right into dst as L,R pairs and returns dst.
// dst is grown with EnsureLen.
func Interleave(dst, left, right []float64) []float64 {
	n := Frames(left, right)

	dst = EnsureLen(dst, 2*n)
	for i := range n {
		dst[2*i] = left[i]
		dst[2*i+1] = right[i]
	}

	return dst
}

// Deinterleave splits L,R pairs from src into left and right and returns
// the two channel slices, grown with EnsureLen. A trailing odd sample is dropped.
func Deinterleave(left, right, src []float64) ([]float64, []float64) {
	n := len(src) / 2

	left = EnsureLen(left, n)
	right = EnsureLen(right, n)

	for i := range n {
		left[i] = src[2*i]
		right[i] = src[2*i+1]
	}

	return left, right
}
