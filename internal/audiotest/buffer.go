// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"testing"

	"github.com/ik5/audplay/audio"
)

// Buffer builds an audio.Buffer or fails the test.
func Buffer(tb testing.TB, data []float32, channels, sampleRate int) *audio.Buffer {
	tb.Helper()

	b, err := audio.NewBuffer(data, channels, sampleRate)
	if err != nil {
		tb.Fatalf("audio.NewBuffer() error = %v", err)
	}

	return b
}

// Ramp returns a buffer whose every sample equals its frame index, which
// makes interpolated positions easy to read back.
func Ramp(tb testing.TB, frames, channels, sampleRate int) *audio.Buffer {
	tb.Helper()

	data := make([]float32, frames*channels)
	for f := range frames {
		for c := range channels {
			data[f*channels+c] = float32(f)
		}
	}

	return Buffer(tb, data, channels, sampleRate)
}
