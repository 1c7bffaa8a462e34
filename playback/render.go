// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"github.com/ik5/audplay/driver"
)

// render is the driver callback. It runs on the audio thread: it must not
// block, allocate or take e.mu. Anything it cannot render becomes silence.
func (e *Engine) render(out []float32, status driver.Status) {
	if status != 0 {
		e.report(status)
	}

	buf := e.buf.Load()
	if buf == nil || !e.state.playing.Load() || status&driver.StatusError != 0 {
		clear(out)
		return
	}

	ch := buf.Channels()
	frames := len(out) / ch
	pos := e.state.pos()
	speed := e.state.rate()

	valid := Interpolate(out, buf, pos, speed)
	if valid == 0 {
		e.endOfTrack()
		return
	}

	block := out[:valid*ch]
	e.fx.Process(block, ch)

	vol := float32(e.state.gain())
	for i := range block {
		block[i] *= vol
	}

	next := min(pos+float64(frames)*speed, float64(buf.Frames()))
	e.state.advance(pos, next)

	if valid < frames {
		e.endOfTrack()
	}
}

func (e *Engine) endOfTrack() {
	if !e.state.finish() {
		return
	}

	select {
	case e.finished <- struct{}{}:
	default:
	}
}

func (e *Engine) report(status driver.Status) {
	select {
	case e.statuses <- status:
	default:
		e.dropped.Add(1)
	}
}

// reportStatus logs device statuses off the audio thread.
func (e *Engine) reportStatus() {
	for {
		select {
		case <-e.quit:
			return
		case s := <-e.statuses:
			level := e.logger.Warn
			if s == driver.StatusPriming {
				level = e.logger.Debug
			}

			if n := e.dropped.Load(); n > 0 {
				level("output device status", "status", s.String(), "dropped", n)
				continue
			}
			level("output device status", "status", s.String())
		}
	}
}
