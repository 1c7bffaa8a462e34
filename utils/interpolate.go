// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample interpolation kernels shared by the
// rate converter and the playback renderer.
package utils

// Lerp linearly interpolates between y0 and y1 at fraction x in [0,1].
// The blend is done in float64 so fractional playback positions keep
// their precision on long tracks.
func Lerp(y0, y1 float32, x float64) float32 {
	return float32(float64(y0) + (float64(y1)-float64(y0))*x)
}

// CubicInterpolate evaluates the Catmull-Rom spline through y0..y3 at
// fraction x in [0,1] between y1 and y2.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a := 1.5*(y1-y2) + 0.5*(y3-y0)
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := 0.5 * (y2 - y0)

	return ((a*x+b)*x+c)*x + y1
}
