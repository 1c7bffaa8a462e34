// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// LimiterParams describe the gain computer and envelope timing.
type LimiterParams struct {
	ThresholdDB float64
	Ratio       float64
	AttackMs    float64
	ReleaseMs   float64
}

// DefaultLimiterParams returns a gentle setting: -12 dB, 1.5:1, 10 ms
// attack and 1 s release.
func DefaultLimiterParams() LimiterParams {
	return LimiterParams{
		ThresholdDB: -12,
		Ratio:       1.5,
		AttackMs:    10,
		ReleaseMs:   1000,
	}
}

// Validate reports whether p can be used.
func (p LimiterParams) Validate() error {
	switch {
	case !(p.Ratio >= 1):
		return fmt.Errorf("%w: ratio %v < 1", ErrInvalidLimiter, p.Ratio)
	case !(p.AttackMs > 0):
		return fmt.Errorf("%w: attack %v ms", ErrInvalidLimiter, p.AttackMs)
	case !(p.ReleaseMs > 0):
		return fmt.Errorf("%w: release %v ms", ErrInvalidLimiter, p.ReleaseMs)
	case !(p.ThresholdDB <= 0):
		return fmt.Errorf("%w: threshold %v dB above 0", ErrInvalidLimiter, p.ThresholdDB)
	}

	return nil
}

type limSnapshot struct {
	params  LimiterParams
	attack  float64 // one-pole coefficients per frame
	release float64
	slope   float64 // 1 - 1/ratio
}

// Limiter is a feed-forward peak compressor. All channels share one
// envelope so the stereo image does not shift under gain reduction.
//
// SetParams may be called while Process runs; Configure must not overlap it.
type Limiter struct {
	mu         sync.Mutex
	snap       atomic.Pointer[limSnapshot]
	sampleRate int

	env float64 // linear peak envelope
}

// NewLimiter returns a limiter with DefaultLimiterParams.
func NewLimiter() *Limiter {
	l := &Limiter{}
	l.snap.Store(l.derive(DefaultLimiterParams()))

	return l
}

// Configure sets the sample rate used for the time constants and resets the
// envelope.
func (l *Limiter) Configure(sampleRate, channels int) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidFormat, sampleRate, channels)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sampleRate = sampleRate
	l.env = 0
	l.snap.Store(l.derive(l.snap.Load().params))

	return nil
}

// SetParams validates and publishes p.
func (l *Limiter) SetParams(p LimiterParams) error {
	if err := p.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.snap.Store(l.derive(p))

	return nil
}

// Params returns the active parameters.
func (l *Limiter) Params() LimiterParams {
	return l.snap.Load().params
}

// derive must be called with mu held, or before l is shared.
func (l *Limiter) derive(p LimiterParams) *limSnapshot {
	s := &limSnapshot{params: p, slope: 1 - 1/p.Ratio}
	if l.sampleRate > 0 {
		s.attack = math.Exp(-1000 / (p.AttackMs * float64(l.sampleRate)))
		s.release = math.Exp(-1000 / (p.ReleaseMs * float64(l.sampleRate)))
	}

	return s
}

// Process applies gain reduction to an interleaved block in place. It does
// nothing before Configure.
func (l *Limiter) Process(block []float32, channels int) {
	if l.sampleRate == 0 || channels <= 0 {
		return
	}

	s := l.snap.Load()
	if s.slope == 0 {
		return
	}

	env := l.env

	for i := 0; i+channels <= len(block); i += channels {
		var peak float64
		for _, v := range block[i : i+channels] {
			peak = max(peak, math.Abs(float64(v)))
		}

		coef := s.release
		if peak > env {
			coef = s.attack
		}
		env = coef*env + (1-coef)*peak

		if env <= 0 {
			continue
		}

		over := 20*math.Log10(env) - s.params.ThresholdDB
		if over <= 0 {
			continue
		}

		gain := float32(math.Pow(10, -over*s.slope/20))
		for c := range channels {
			block[i+c] *= gain
		}
	}

	l.env = env
}
