// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of channel ch at frame i.
type Waveform func(i, ch int) float32

// MockSource is an audio.Source that computes its frames on demand. Like
// most decoders it reports io.EOF together with the final chunk.
type MockSource struct {
	rate, channels int
	frames         int // total length
	next           int // first frame of the next read
	wave           Waveform
}

// NewMockSource returns a source that is frames long, drawn from wave.
func NewMockSource(sampleRate, channels, frames int, wave Waveform) *MockSource {
	return &MockSource{
		rate:     sampleRate,
		channels: channels,
		frames:   frames,
		wave:     wave,
	}
}

// NewSilentSource yields frames of digital silence.
func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return 0 })
}

// NewSineSource yields a full-scale sine of freq Hz on every channel.
func NewSineSource(sampleRate, channels, frames int, freq float64) *MockSource {
	step := 2 * math.Pi * freq / float64(sampleRate)

	return NewMockSource(sampleRate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(step * float64(i)))
	})
}

// NewConstantSource yields value on every channel of every frame.
func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds to the first frame so the same source can be drained again.
func (m *MockSource) Reset() { m.next = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	left := m.frames - m.next
	if left <= 0 {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, left)
	for f := range n {
		row := dst[f*m.channels : (f+1)*m.channels]
		for ch := range row {
			row[ch] = m.wave(m.next+f, ch)
		}
	}
	m.next += n

	if n == left {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}
