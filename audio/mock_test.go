// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
)

// mockSource generates frames from a waveform function and reports io.EOF
// together with the last chunk, like most real decoders do.
type mockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int
	chunk        int // max samples returned per read, 0 means len(dst)
	waveform     func(sample int, channel int) float32
}

func newMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

func newSilentSource(sampleRate, channels, totalSamples int) *mockSource {
	return newMockSource(sampleRate, channels, totalSamples, func(int, int) float32 { return 0 })
}

// newRampSource yields frame index i scaled by 1/1000 on channel 0 and its
// negation on channel 1, so frame order and channel order are both visible.
func newRampSource(sampleRate, channels, totalSamples int) *mockSource {
	return newMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		v := float32(sample) / 1000
		if channel%2 == 1 {
			return -v
		}
		return v
	})
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }
func (m *mockSource) Close() error    { return nil }

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	if m.chunk > 0 && len(dst) > m.chunk {
		dst = dst[:m.chunk]
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}

	m.generated += frames
	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}

// stallingSource never produces data and never reports an error.
type stallingSource struct{}

func (stallingSource) SampleRate() int                      { return 8000 }
func (stallingSource) Channels() int                        { return 1 }
func (stallingSource) BufSize() int                         { return 16 }
func (stallingSource) Close() error                         { return nil }
func (stallingSource) ReadSamples(dst []float32) (int, error) { return 0, nil }

var errBroken = errors.New("broken stream")

// brokenSource returns a few samples and then a hard error.
type brokenSource struct{ calls int }

func (*brokenSource) SampleRate() int { return 8000 }
func (*brokenSource) Channels() int   { return 1 }
func (*brokenSource) BufSize() int    { return 4 }
func (*brokenSource) Close() error    { return nil }

func (s *brokenSource) ReadSamples(dst []float32) (int, error) {
	s.calls++
	if s.calls > 1 {
		return 0, errBroken
	}
	return len(dst), nil
}
