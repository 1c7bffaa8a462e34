// SPDX-License-Identifier: EPL-2.0

package effects

// Chain runs the equalizer and then the limiter.
type Chain struct {
	eq  *Equalizer
	lim *Limiter
}

// NewChain returns a flat equalizer followed by a default limiter.
func NewChain() *Chain {
	return &Chain{
		eq:  NewEqualizer(),
		lim: NewLimiter(),
	}
}

func (c *Chain) Equalizer() *Equalizer { return c.eq }
func (c *Chain) Limiter() *Limiter     { return c.lim }

// Configure prepares both stages for a stream format. Call it only while no
// audio is being processed.
func (c *Chain) Configure(sampleRate, channels int) error {
	if err := c.eq.Configure(sampleRate, channels); err != nil {
		return err
	}

	return c.lim.Configure(sampleRate, channels)
}

func (c *Chain) SetBandGain(band int, gainDB float64) error {
	return c.eq.SetGain(band, gainDB)
}

func (c *Chain) SetLimiter(p LimiterParams) error {
	return c.lim.SetParams(p)
}

// Process runs on the audio thread; it neither allocates nor blocks.
func (c *Chain) Process(block []float32, channels int) {
	c.eq.Process(block, channels)
	c.lim.Process(block, channels)
}
