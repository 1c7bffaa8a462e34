// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/utils"
)

// Interpolate renders len(dst)/channels frames of buf starting at the
// fractional frame pos and stepping speed frames per output frame.
//
// Frame i reads from pos + i*speed, blending the two neighbouring source
// frames linearly. The last usable index is Frames()-2 since every output
// needs the frame after it; output past that point is zeroed. Interpolate
// returns the number of frames it rendered, which is 0 once the track has
// run out.
func Interpolate(dst []float32, buf *audio.Buffer, pos, speed float64) int {
	ch := buf.Channels()
	frames := len(dst) / ch
	maxIdx := float64(buf.Frames() - 2)
	data := buf.Samples()

	valid := 0
	for i := range frames {
		// computed fresh per frame so rounding never accumulates
		idx := pos + float64(i)*speed
		if !(idx >= 0 && idx <= maxIdx) {
			break
		}

		f := int(idx)
		frac := idx - float64(f)
		src := data[f*ch : f*ch+2*ch]
		out := dst[i*ch : i*ch+ch]

		for c := range out {
			out[c] = utils.Lerp(src[c], src[ch+c], frac)
		}
		valid++
	}

	clear(dst[valid*ch:])

	return valid
}
