package delay

import "github.com/cwbudde/algo-reverb/dsp/core"

// Line is a circular delay line with independent read and write cursors.
// The zero value has no storage and passes samples through unchanged.
type Line struct {
	buffer   []float64
	writePos int
	readPos  int
	delay    int
}

// New returns a delay line with logical capacity size (clamped to >= 1).
func New(size int) *Line {
	d := &Line{}
	d.SetSize(size)

	return d
}

// Reserve makes room for a logical capacity of up to n samples so that
// later SetSize calls up to n do not allocate. Growing the reservation
// discards the stored samples.
func (d *Line) Reserve(n int) {
	if n <= cap(d.buffer) {
		return
	}

	size := max(len(d.buffer), 1)
	d.buffer = make([]float64, size, n)
	d.rewind()
}

// SetSize sets the logical capacity (clamped to >= 1), clears the samples
// and resets both cursors. The delay is re-clamped to the new capacity.
func (d *Line) SetSize(n int) {
	d.buffer = core.EnsureLen(d.buffer, max(n, 1))
	core.Zero(d.buffer)
	d.rewind()
}

// SetDelay sets the delay in samples, clamped to [0, Capacity()-1], and
// repositions the read cursor relative to the write cursor.
func (d *Line) SetDelay(samples int) {
	size := len(d.buffer)
	if size == 0 {
		return
	}

	d.delay = min(max(samples, 0), size-1)
	d.readPos = (d.writePos - d.delay + size) % size
}

// Delay returns the configured delay in samples.
func (d *Line) Delay() int { return d.delay }

// Capacity returns the logical capacity.
func (d *Line) Capacity() int { return len(d.buffer) }

// Process writes input, reads the delayed sample and advances both cursors.
func (d *Line) Process(input float64) float64 {
	size := len(d.buffer)
	if size == 0 {
		return input
	}

	d.buffer[d.writePos] = input
	out := d.buffer[d.readPos]

	d.writePos++
	if d.writePos >= size {
		d.writePos = 0
	}

	d.readPos++
	if d.readPos >= size {
		d.readPos = 0
	}

	return out
}

// Clear zeroes the samples and rewinds the cursors, keeping the delay.
func (d *Line) Clear() {
	core.Zero(d.buffer)
	d.rewind()
}

func (d *Line) rewind() {
	d.writePos = 0
	d.readPos = 0

	if len(d.buffer) > 0 {
		d.SetDelay(d.delay)
	}
}
