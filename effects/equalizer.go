// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// NumBands is the number of equalizer bands.
const NumBands = 10

// MaxGainDB bounds band gain in both directions.
const MaxGainDB = 24.0

// BandFrequencies are the band centers in Hz. The first band is a low
// shelf, the last a high shelf, the rest peaking filters.
var BandFrequencies = [NumBands]float64{32, 64, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

const (
	shelfQ = 0.707
	peakQ  = 1.0
)

func bandShape(band int) (filterShape, float64) {
	switch band {
	case 0:
		return lowShelf, shelfQ
	case NumBands - 1:
		return highShelf, shelfQ
	default:
		return peaking, peakQ
	}
}

// eqSnapshot is published whole; the audio side never sees a half update.
type eqSnapshot struct {
	gains  [NumBands]float64
	coeffs [NumBands]coeffs
	active [NumBands]bool
}

// Equalizer is a 10-band graphic equalizer made of RBJ biquads.
//
// SetGain may be called from any goroutine while Process runs. Configure
// reallocates filter memory and must not overlap Process.
type Equalizer struct {
	mu         sync.Mutex // serializes writers
	snap       atomic.Pointer[eqSnapshot]
	sampleRate int
	channels   int

	state []biquadState // [channel*NumBands + band]
	live  [NumBands]bool // bands Process ran last block, audio side only
}

// NewEqualizer returns a flat equalizer. It passes audio through untouched
// until Configure is called.
func NewEqualizer() *Equalizer {
	e := &Equalizer{}
	e.snap.Store(&eqSnapshot{})

	return e
}

// Configure prepares the filters for a new stream format and clears their
// memory. Current gains are kept.
func (e *Equalizer) Configure(sampleRate, channels int) error {
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidFormat, sampleRate, channels)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.sampleRate = sampleRate
	e.channels = channels
	e.state = make([]biquadState, channels*NumBands)
	e.live = [NumBands]bool{}
	e.snap.Store(e.design(e.snap.Load().gains))

	return nil
}

// SetGain sets band gain in dB, clamped to ±MaxGainDB. NaN is ignored.
func (e *Equalizer) SetGain(band int, gainDB float64) error {
	if band < 0 || band >= NumBands {
		return fmt.Errorf("%w: %d", ErrBandOutOfRange, band)
	}

	if math.IsNaN(gainDB) {
		return nil
	}

	gainDB = max(-MaxGainDB, min(MaxGainDB, gainDB))

	e.mu.Lock()
	defer e.mu.Unlock()

	gains := e.snap.Load().gains
	gains[band] = gainDB
	e.snap.Store(e.design(gains))

	return nil
}

// Gain returns the current gain of band, or 0 when band is out of range.
func (e *Equalizer) Gain(band int) float64 {
	if band < 0 || band >= NumBands {
		return 0
	}

	return e.snap.Load().gains[band]
}

// Gains returns all band gains.
func (e *Equalizer) Gains() [NumBands]float64 {
	return e.snap.Load().gains
}

// design must be called with mu held.
func (e *Equalizer) design(gains [NumBands]float64) *eqSnapshot {
	s := &eqSnapshot{gains: gains}

	for band := range NumBands {
		shape, q := bandShape(band)
		s.coeffs[band], s.active[band] = designBiquad(shape, BandFrequencies[band], q, gains[band], e.sampleRate)
	}

	return s
}

// Process filters an interleaved block in place. A block whose channel count
// differs from the configured one is left untouched.
func (e *Equalizer) Process(block []float32, channels int) {
	if channels != e.channels || len(e.state) == 0 {
		return
	}

	s := e.snap.Load()

	for band := range NumBands {
		if !s.active[band] {
			e.live[band] = false
			continue
		}

		// a band coming back from bypass starts from rest, not from
		// whatever it held when it was switched off
		if !e.live[band] {
			for ch := range channels {
				e.state[ch*NumBands+band] = biquadState{}
			}
			e.live[band] = true
		}

		c := &s.coeffs[band]
		for ch := range channels {
			st := &e.state[ch*NumBands+band]
			for i := ch; i < len(block); i += channels {
				block[i] = float32(st.process(c, float64(block[i])))
			}
		}
	}
}
