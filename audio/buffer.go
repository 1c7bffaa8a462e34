// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// maxStalls is how many consecutive empty, error-free reads ReadAll tolerates
// before giving up on a source.
const maxStalls = 64

// Buffer is a fully decoded PCM track held in memory.
//
// Samples are interleaved float32 values in [-1,1]. A Buffer never changes
// after construction; code that needs different audio builds a new Buffer.
type Buffer struct {
	data       []float32
	channels   int
	sampleRate int
}

// NewBuffer wraps interleaved samples into a Buffer. The Buffer takes
// ownership of data; the caller must not modify it afterwards.
func NewBuffer(data []float32, channels, sampleRate int) (*Buffer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels = %d", ErrInvalidBuffer, channels)
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate = %d", ErrInvalidBuffer, sampleRate)
	}

	if len(data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples is not a whole number of %d-channel frames",
			ErrInvalidBuffer, len(data), channels)
	}

	return &Buffer{
		data:       data,
		channels:   channels,
		sampleRate: sampleRate,
	}, nil
}

func (b *Buffer) Channels() int   { return b.channels }
func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Frames() int     { return len(b.data) / b.channels }

// Duration is the playing time of the buffer at normal speed.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(float64(b.Frames()) / float64(b.sampleRate) * float64(time.Second))
}

// Sample returns the value of channel ch in frame i.
func (b *Buffer) Sample(i, ch int) float32 {
	return b.data[i*b.channels+ch]
}

// Frame returns a read-only view of frame i.
func (b *Buffer) Frame(i int) []float32 {
	start := i * b.channels
	end := start + b.channels

	return b.data[start:end:end]
}

// Samples returns a read-only view of all interleaved samples.
func (b *Buffer) Samples() []float32 {
	return b.data[:len(b.data):len(b.data)]
}

// Reader returns a Source that streams the buffer from the start.
func (b *Buffer) Reader() Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *Buffer
	off int
}

func (s *bufferSource) SampleRate() int { return s.buf.sampleRate }
func (s *bufferSource) Channels() int   { return s.buf.channels }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.buf.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if s.off >= len(s.buf.data) {
		return 0, io.EOF
	}

	n := copy(dst, s.buf.data[s.off:])
	s.off += n

	if s.off >= len(s.buf.data) {
		return n, io.EOF
	}

	return n, nil
}

// ReadAll drains src into a Buffer. A trailing partial frame is dropped.
// The source is not closed.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels = %d", ErrInvalidBuffer, channels)
	}

	chunk := src.BufSize()
	if chunk < channels {
		chunk = 4096
	}
	chunk -= chunk % channels
	if chunk == 0 {
		chunk = channels
	}

	tmp := make([]float32, chunk)
	data := make([]float32, 0, chunk*4)
	stalls := 0

	for {
		n, err := src.ReadSamples(tmp)
		if n > 0 {
			data = append(data, tmp[:n]...)
			stalls = 0
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			stalls++
			if stalls >= maxStalls {
				return nil, fmt.Errorf("reading samples: %w", io.ErrNoProgress)
			}
		}
	}

	data = data[:len(data)-len(data)%channels]

	return NewBuffer(data, channels, src.SampleRate())
}
