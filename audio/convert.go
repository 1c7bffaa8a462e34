// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/audplay/utils"
)

// Convert returns b rate-converted to dstRate using Catmull-Rom cubic
// interpolation, preserving the channel count. Edge frames are repeated
// where the interpolation window runs off either end of the buffer.
// When downsampling, a one-pole low-pass filter tuned to just under the
// target Nyquist is run over the source first to take the edge off aliasing.
//
// Convert returns b itself when the rates already match.
func Convert(b *Buffer, dstRate int) (*Buffer, error) {
	if dstRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, dstRate)
	}

	if dstRate == b.sampleRate {
		return b, nil
	}

	ch := b.channels
	srcFrames := b.Frames()
	ratio := float64(b.sampleRate) / float64(dstRate) // source frames per output frame

	src := b.data
	if ratio > 1.0 {
		src = lowPass(b.data, ch, lowPassAlpha(b.sampleRate, dstRate))
	}

	dstFrames := int(int64(srcFrames) * int64(dstRate) / int64(b.sampleRate))
	out := make([]float32, dstFrames*ch)

	at := func(i, c int) float32 {
		if i < 0 {
			i = 0
		} else if i >= srcFrames {
			i = srcFrames - 1
		}
		return src[i*ch+c]
	}

	for f := range dstFrames {
		pos := float64(f) * ratio
		i := int(pos)
		x := float32(pos - float64(i))

		for c := range ch {
			out[f*ch+c] = utils.CubicInterpolate(at(i-1, c), at(i, c), at(i+1, c), at(i+2, c), x)
		}
	}

	return NewBuffer(out, ch, dstRate)
}

// cutoffFraction places the anti-alias cutoff relative to the target rate.
const cutoffFraction = 0.45

// lowPassAlpha returns the one-pole coefficient whose cutoff sits at
// cutoffFraction of dstRate, given the filter runs at srcRate.
func lowPassAlpha(srcRate, dstRate int) float32 {
	fc := cutoffFraction * float64(dstRate)
	return float32(1 - math.Exp(-2*math.Pi*fc/float64(srcRate)))
}

// lowPass runs y[n] = alpha*x[n] + (1-alpha)*y[n-1] per channel, seeding the
// filter with the first frame to avoid a warm-up transient.
func lowPass(data []float32, ch int, alpha float32) []float32 {
	out := make([]float32, len(data))
	if len(data) < ch {
		return out
	}

	state := make([]float32, ch)
	copy(state, data[:ch])

	for i := 0; i < len(data); i += ch {
		for c := range ch {
			state[c] = alpha*data[i+c] + (1-alpha)*state[c]
			out[i+c] = state[c]
		}
	}

	return out
}

// Downmix averages all channels of b into a single channel.
// A mono buffer is returned unchanged.
func Downmix(b *Buffer) *Buffer {
	if b.channels == 1 {
		return b
	}

	frames := b.Frames()
	out := make([]float32, frames)

	switch b.channels {
	case 2:
		for f := range frames {
			idx := f << 1
			out[f] = (b.data[idx] + b.data[idx+1]) * 0.5
		}
	default:
		inv := float32(1.0) / float32(b.channels)
		for f := range frames {
			var sum float32
			base := f * b.channels
			for c := range b.channels {
				sum += b.data[base+c]
			}
			out[f] = sum * inv
		}
	}

	return &Buffer{
		data:       out,
		channels:   1,
		sampleRate: b.sampleRate,
	}
}
