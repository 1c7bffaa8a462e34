// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"math"
	"testing"
)

func TestDesignBiquad_Bypass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		freq   float64
		gainDB float64
		rate   int
	}{
		{"zero gain", 1000, 0, 48000},
		{"at nyquist", 24000, 6, 48000},
		{"above nyquist", 16000, 6, 22050},
		{"no rate", 1000, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, ok := designBiquad(peaking, tt.freq, peakQ, tt.gainDB, tt.rate); ok {
				t.Errorf("designBiquad(%v Hz, %v dB, %d) active, want bypass", tt.freq, tt.gainDB, tt.rate)
			}
		})
	}
}

func TestDesignBiquad_Response(t *testing.T) {
	t.Parallel()

	const rate = 48000

	tests := []struct {
		name    string
		shape   filterShape
		freq    float64
		q       float64
		gainDB  float64
		probeHz float64
		wantDB  float64
	}{
		{"peak boost at center", peaking, 1000, peakQ, 6, 1000, 6},
		{"peak cut at center", peaking, 1000, peakQ, -12, 1000, -12},
		{"peak far away", peaking, 1000, peakQ, 12, 20, 0},
		{"low shelf at dc", lowShelf, 32, shelfQ, 9, 1, 9},
		{"low shelf above", lowShelf, 32, shelfQ, 9, 5000, 0},
		{"high shelf near nyquist", highShelf, 8000, shelfQ, -6, 23900, -6},
		{"high shelf below", highShelf, 8000, shelfQ, -6, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, ok := designBiquad(tt.shape, tt.freq, tt.q, tt.gainDB, rate)
			if !ok {
				t.Fatal("designBiquad() bypassed, want active")
			}

			got := c.magnitudeDB(tt.probeHz, rate)
			if math.Abs(got-tt.wantDB) > 0.25 {
				t.Errorf("response at %v Hz = %.3f dB, want %.3f dB", tt.probeHz, got, tt.wantDB)
			}
		})
	}
}
