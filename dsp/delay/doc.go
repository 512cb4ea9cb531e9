// Package delay provides an integer-sample circular delay line whose
// storage can be reserved once and resized without reallocating.
//
// A Line has a logical capacity N (at least 1) inside a possibly larger
// reserved backing array. The configured delay d is clamped to [0, N-1];
// d == 0 makes the line a pass-through.
package delay
