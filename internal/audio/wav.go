// Package audio reads and writes stereo WAV files as float64 channels.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	ErrInvalidWAV        = errors.New("audio: not a valid WAV file")
	ErrUnsupportedFormat = errors.New("audio: unsupported WAV format")
)

const (
	formatPCM = 1

	numChannels = 2
)

// Stereo is a two-channel clip with samples in [-1, 1].
type Stereo struct {
	SampleRate int
	BitDepth   int
	Left       []float64
	Right      []float64
}

// NewStereo returns a silent clip of frames frames.
func NewStereo(sampleRate, bitDepth, frames int) *Stereo {
	return &Stereo{
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		Left:       make([]float64, frames),
		Right:      make([]float64, frames),
	}
}

// Frames returns the clip length.
func (s *Stereo) Frames() int { return min(len(s.Left), len(s.Right)) }

// Duration returns the clip length in seconds.
func (s *Stereo) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}

	return float64(s.Frames()) / float64(s.SampleRate)
}

// AppendSilence extends both channels by frames zero samples.
func (s *Stereo) AppendSilence(frames int) {
	if frames <= 0 {
		return
	}

	s.Left = append(s.Left, make([]float64, frames)...)
	s.Right = append(s.Right, make([]float64, frames)...)
}

func supportedDepth(bits int) bool {
	return bits == 16 || bits == 24 || bits == 32
}

// fullScale returns 2^(bits-1).
func fullScale(bits int) float64 { return float64(int64(1) << (bits - 1)) }

// IntToFloat scales a PCM sample of the given depth to [-1, 1).
func IntToFloat(v, bits int) float64 {
	return float64(v) / fullScale(bits)
}

// FloatToInt scales x to a PCM sample of the given depth, clipping at
// full scale.
func FloatToInt(x float64, bits int) int {
	fs := fullScale(bits)
	v := math.Round(x * fs)

	return int(math.Max(-fs, math.Min(fs-1, v)))
}

// ReadWAV decodes a 16, 24 or 32 bit PCM WAV. Mono input is copied to
// both channels.
func ReadWAV(r io.ReadSeeker) (*Stereo, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	bits := int(dec.BitDepth)
	if !supportedDepth(bits) {
		return nil, fmt.Errorf("%w: %d bit", ErrUnsupportedFormat, bits)
	}

	chans := int(dec.NumChans)
	if chans != 1 && chans != numChannels {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, chans)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audio: decode: %w", err)
	}

	frames := len(buf.Data) / chans
	s := NewStereo(int(dec.SampleRate), bits, frames)

	for i := range frames {
		l := IntToFloat(buf.Data[i*chans], bits)
		r := l

		if chans == numChannels {
			r = IntToFloat(buf.Data[i*chans+1], bits)
		}

		s.Left[i], s.Right[i] = l, r
	}

	return s, nil
}

// ReadFile opens and decodes path.
func ReadFile(path string) (*Stereo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ReadWAV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// WriteWAV encodes s as stereo PCM at bits per sample.
func WriteWAV(w io.WriteSeeker, s *Stereo, bits int) error {
	if !supportedDepth(bits) {
		return fmt.Errorf("%w: %d bit", ErrUnsupportedFormat, bits)
	}

	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, s.SampleRate)
	}

	frames := s.Frames()
	data := make([]int, numChannels*frames)

	for i := range frames {
		data[2*i] = FloatToInt(s.Left[i], bits)
		data[2*i+1] = FloatToInt(s.Right[i], bits)
	}

	enc := wav.NewEncoder(w, s.SampleRate, bits, numChannels, formatPCM)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: numChannels, SampleRate: s.SampleRate},
		Data:           data,
		SourceBitDepth: bits,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audio: encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("audio: finish: %w", err)
	}

	return nil
}

// WriteFile creates path and writes s to it.
func WriteFile(path string, s *Stereo, bits int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteWAV(f, s, bits); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
