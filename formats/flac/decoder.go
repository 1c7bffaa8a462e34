// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	beepflac "github.com/gopxl/beep/v2/flac"
	"github.com/ik5/audplay/audio"
)

// framesPerRead bounds the intermediate stereo buffer.
const framesPerRead = 2048

// streamer is the part of beep.StreamSeekCloser the source uses.
type streamer interface {
	Stream(samples [][2]float64) (n int, ok bool)
	Err() error
	Close() error
}

// source adapts a beep streamer, which always yields stereo pairs, to
// interleaved float32. Mono files keep one channel.
type source struct {
	st         streamer
	sampleRate int
	channels   int
	pairs      [][2]float64
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return framesPerRead * s.channels }
func (s *source) Close() error    { return s.st.Close() }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if s.done {
		return 0, io.EOF
	}

	frames := min(len(dst)/s.channels, framesPerRead)
	if frames == 0 {
		return 0, nil
	}

	if cap(s.pairs) < frames {
		s.pairs = make([][2]float64, framesPerRead)
	}

	n, ok := s.st.Stream(s.pairs[:frames])

	if s.channels == 1 {
		for i := range n {
			dst[i] = float32(s.pairs[i][0])
		}
	} else {
		for i := range n {
			dst[2*i] = float32(s.pairs[i][0])
			dst[2*i+1] = float32(s.pairs[i][1])
		}
	}

	if !ok {
		s.done = true
		if err := s.st.Err(); err != nil {
			return n * s.channels, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	st, format, err := beepflac.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	src, err := newSource(st, format)
	if err != nil {
		return nil, err
	}

	return src, nil
}

func newSource(st streamer, format beep.Format) (*source, error) {
	switch format.NumChannels {
	case 1, 2:
	default:
		_ = st.Close()
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, format.NumChannels)
	}

	return &source{
		st:         st,
		sampleRate: int(format.SampleRate),
		channels:   format.NumChannels,
	}, nil
}
