// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"math"
	"sync/atomic"
)

// state is shared between the control side and the audio callback. Each
// field is independently atomic; float64 values are stored as their bits.
type state struct {
	position atomic.Uint64 // fractional frame
	speed    atomic.Uint64
	volume   atomic.Uint64
	playing  atomic.Bool
}

func newState() *state {
	s := &state{}
	s.setSpeed(1)
	s.setVolume(1)

	return s
}

func (s *state) pos() float64       { return math.Float64frombits(s.position.Load()) }
func (s *state) setPos(v float64)   { s.position.Store(math.Float64bits(v)) }
func (s *state) rate() float64      { return math.Float64frombits(s.speed.Load()) }
func (s *state) setSpeed(v float64) { s.speed.Store(math.Float64bits(v)) }
func (s *state) gain() float64      { return math.Float64frombits(s.volume.Load()) }
func (s *state) setVolume(v float64) {
	s.volume.Store(math.Float64bits(v))
}

// advance moves the position from old to next unless someone stored a
// different position in between; a concurrent seek wins.
func (s *state) advance(old, next float64) bool {
	return s.position.CompareAndSwap(math.Float64bits(old), math.Float64bits(next))
}

// finish clears playing and reports whether this call did it.
func (s *state) finish() bool {
	return s.playing.CompareAndSwap(true, false)
}

func (s *state) reset() {
	s.playing.Store(false)
	s.setPos(0)
}
