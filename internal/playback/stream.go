// Package playback streams rendered stereo audio to the default output
// device through oto.
package playback

import (
	"encoding/binary"
	"io"
	"math"
)

const bytesPerFrame = 2 * 4

// Renderer produces the next frames into left and right and returns how
// many it wrote. Returning 0 ends the stream.
type Renderer interface {
	Render(left, right []float64) int
}

// Stream adapts a Renderer to the interleaved float32 little-endian byte
// stream oto reads.
type Stream struct {
	r           Renderer
	left, right []float64
	buf         []byte
	pending     []byte
	done        bool
}

// NewStream renders blockSize frames at a time.
func NewStream(r Renderer, blockSize int) *Stream {
	blockSize = max(blockSize, 1)

	return &Stream{
		r:     r,
		left:  make([]float64, blockSize),
		right: make([]float64, blockSize),
		buf:   make([]byte, blockSize*bytesPerFrame),
	}
}

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0

	for n < len(p) {
		if len(s.pending) == 0 {
			if s.done {
				break
			}

			frames := s.r.Render(s.left, s.right)
			if frames <= 0 {
				s.done = true
				break
			}

			s.pending = EncodeFloat32LE(s.buf, s.left[:frames], s.right[:frames])
		}

		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 && s.done {
		return 0, io.EOF
	}

	return n, nil
}

// EncodeFloat32LE interleaves left and right into dst as float32 little
// endian samples and returns the written part of dst. dst grows if needed.
func EncodeFloat32LE(dst []byte, left, right []float64) []byte {
	frames := min(len(left), len(right))
	size := frames * bytesPerFrame

	if cap(dst) < size {
		dst = make([]byte, size)
	}

	dst = dst[:size]

	for i := range frames {
		binary.LittleEndian.PutUint32(dst[i*bytesPerFrame:], math.Float32bits(float32(left[i])))
		binary.LittleEndian.PutUint32(dst[i*bytesPerFrame+4:], math.Float32bits(float32(right[i])))
	}

	return dst
}
