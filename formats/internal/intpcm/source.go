// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer PCM decoders to audio.Source.
package intpcm

import (
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader is the subset of the go-audio wav and aiff decoders used here.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM from a Reader into float32 samples in [-1,1].
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	unsigned   bool // 8-bit WAV stores unsigned samples centered at 128
	intBuf     *goaudio.IntBuffer
	done       bool
}

// New wraps dec. bitDepth must be one of 8, 16, 24 or 32; unsigned marks
// 8-bit data stored with an offset of 128.
func New(dec Reader, sampleRate, channels, bitDepth int, unsigned bool) *Source {
	return &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
		unsigned:   unsigned && bitDepth == 8,
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }
func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

// Scale returns the divisor that maps a full-scale integer of the given bit
// depth onto [-1,1]. Unknown depths are treated as 16-bit.
func Scale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.done {
		return 0, io.EOF
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		s.done = true
		if err != nil && err != io.EOF {
			return 0, err
		}
		return 0, io.EOF
	}

	scale := Scale(s.bitDepth)
	for i := range n {
		v := s.intBuf.Data[i]
		if s.unsigned {
			v -= 128
		}
		dst[i] = float32(v) / scale
	}

	// go-audio reports a short read with a nil error at the end of the data.
	if err == io.EOF || (err == nil && n < len(dst)) {
		s.done = true
		return n, io.EOF
	}

	return n, err
}
