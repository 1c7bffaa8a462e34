// SPDX-License-Identifier: EPL-2.0

package effects

import "math"

type filterShape uint8

const (
	peaking filterShape = iota
	lowShelf
	highShelf
)

// coeffs are biquad coefficients normalized by a0.
type coeffs struct {
	b0, b1, b2, a1, a2 float64
}

// designBiquad returns RBJ cookbook coefficients. ok is false when the
// filter would do nothing: 0 dB gain, or a center at or above Nyquist.
func designBiquad(shape filterShape, freq, q, gainDB float64, sampleRate int) (c coeffs, ok bool) {
	if gainDB == 0 || sampleRate <= 0 || freq >= float64(sampleRate)/2 {
		return coeffs{}, false
	}

	a := math.Pow(10, gainDB/40)
	w0 := 2 * math.Pi * freq / float64(sampleRate)
	cosw, sinw := math.Cos(w0), math.Sin(w0)
	alpha := sinw / (2 * q)

	var b0, b1, b2, a0, a1, a2 float64

	switch shape {
	case lowShelf:
		sq := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) - (a-1)*cosw + sq)
		b1 = 2 * a * ((a - 1) - (a+1)*cosw)
		b2 = a * ((a + 1) - (a-1)*cosw - sq)
		a0 = (a + 1) + (a-1)*cosw + sq
		a1 = -2 * ((a - 1) + (a+1)*cosw)
		a2 = (a + 1) + (a-1)*cosw - sq
	case highShelf:
		sq := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) + (a-1)*cosw + sq)
		b1 = -2 * a * ((a - 1) + (a+1)*cosw)
		b2 = a * ((a + 1) + (a-1)*cosw - sq)
		a0 = (a + 1) - (a-1)*cosw + sq
		a1 = 2 * ((a - 1) - (a+1)*cosw)
		a2 = (a + 1) - (a-1)*cosw - sq
	default:
		b0 = 1 + alpha*a
		b1 = -2 * cosw
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cosw
		a2 = 1 - alpha/a
	}

	return coeffs{
		b0: b0 / a0,
		b1: b1 / a0,
		b2: b2 / a0,
		a1: a1 / a0,
		a2: a2 / a0,
	}, true
}

// biquadState is the transposed direct form II memory of one filter on one
// channel.
type biquadState struct {
	z1, z2 float64
}

func (s *biquadState) process(c *coeffs, x float64) float64 {
	y := c.b0*x + s.z1
	s.z1 = c.b1*x - c.a1*y + s.z2
	s.z2 = c.b2*x - c.a2*y

	return y
}

// magnitudeDB evaluates the filter's response at freq, for tests and
// diagnostics.
func (c coeffs) magnitudeDB(freq float64, sampleRate int) float64 {
	w := 2 * math.Pi * freq / float64(sampleRate)
	// H(e^jw) = (b0 + b1 e^-jw + b2 e^-2jw) / (1 + a1 e^-jw + a2 e^-2jw)
	nr := c.b0 + c.b1*math.Cos(w) + c.b2*math.Cos(2*w)
	ni := -c.b1*math.Sin(w) - c.b2*math.Sin(2*w)
	dr := 1 + c.a1*math.Cos(w) + c.a2*math.Cos(2*w)
	di := -c.a1*math.Sin(w) - c.a2*math.Sin(2*w)

	return 10 * math.Log10((nr*nr+ni*ni)/(dr*dr+di*di))
}
