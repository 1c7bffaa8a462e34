// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func sine(freq float64, rate, channels, frames int, amp float64) []float32 {
	out := make([]float32, frames*channels)
	for i := range frames {
		v := float32(amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
		for c := range channels {
			out[i*channels+c] = v
		}
	}

	return out
}

func rmsDB(block []float32) float64 {
	var sum float64
	for _, v := range block {
		sum += float64(v) * float64(v)
	}

	return 10 * math.Log10(sum/float64(len(block)))
}

func TestEqualizer_FlatIsIdentity(t *testing.T) {
	t.Parallel()

	eq := NewEqualizer()
	if err := eq.Configure(44100, 2); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	in := sine(440, 44100, 2, 1024, 0.8)
	out := append([]float32(nil), in...)
	eq.Process(out, 2)

	for i := range in {
		if in[i] != out[i] {
			t.Fatalf("sample[%d] = %v, want %v unchanged", i, out[i], in[i])
		}
	}
}

func TestEqualizer_SetGain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		band    int
		gain    float64
		want    float64
		wantErr error
	}{
		{"in range", 3, 6, 6, nil},
		{"clamped high", 0, 40, MaxGainDB, nil},
		{"clamped low", 9, -100, -MaxGainDB, nil},
		{"nan ignored", 5, math.NaN(), 0, nil},
		{"negative band", -1, 3, 0, ErrBandOutOfRange},
		{"band too high", NumBands, 3, 0, ErrBandOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eq := NewEqualizer()

			err := eq.SetGain(tt.band, tt.gain)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SetGain() error = %v, want %v", err, tt.wantErr)
			}

			if got := eq.Gain(tt.band); got != tt.want {
				t.Errorf("Gain(%d) = %v, want %v", tt.band, got, tt.want)
			}
		})
	}
}

func TestEqualizer_Configure_Invalid(t *testing.T) {
	t.Parallel()

	eq := NewEqualizer()
	if err := eq.Configure(0, 2); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Configure(0, 2) error = %v, want ErrInvalidFormat", err)
	}

	if err := eq.Configure(48000, 0); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Configure(48000, 0) error = %v, want ErrInvalidFormat", err)
	}
}

func TestEqualizer_BoostsBand(t *testing.T) {
	t.Parallel()

	const rate = 48000

	eq := NewEqualizer()
	if err := eq.Configure(rate, 1); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	if err := eq.SetGain(5, 6); err != nil {
		t.Fatalf("SetGain() error = %v", err)
	}

	in := sine(1000, rate, 1, rate/2, 0.25)
	out := append([]float32(nil), in...)
	eq.Process(out, 1)

	// skip the filter's settling time
	half := len(in) / 2
	gain := rmsDB(out[half:]) - rmsDB(in[half:])
	if math.Abs(gain-6) > 0.5 {
		t.Errorf("1 kHz gain = %.2f dB, want about 6 dB", gain)
	}
}

func TestEqualizer_BandAboveNyquistBypassed(t *testing.T) {
	t.Parallel()

	eq := NewEqualizer()
	if err := eq.SetGain(NumBands-1, 12); err != nil {
		t.Fatalf("SetGain() error = %v", err)
	}

	if err := eq.Configure(22050, 1); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	if eq.snap.Load().active[NumBands-1] {
		t.Error("16 kHz band active at 22050 Hz, want bypassed")
	}

	if eq.Gain(NumBands-1) != 12 {
		t.Errorf("Gain() = %v after Configure, want 12 kept", eq.Gain(NumBands-1))
	}
}

func TestEqualizer_ChannelMismatch(t *testing.T) {
	t.Parallel()

	eq := NewEqualizer()
	_ = eq.Configure(48000, 2)
	_ = eq.SetGain(5, 12)

	in := sine(1000, 48000, 1, 256, 0.5)
	out := append([]float32(nil), in...)
	eq.Process(out, 1)

	for i := range in {
		if in[i] != out[i] {
			t.Fatalf("sample[%d] changed on channel mismatch", i)
		}
	}
}

func TestEqualizer_ConcurrentSetGain(t *testing.T) {
	t.Parallel()

	eq := NewEqualizer()
	_ = eq.Configure(48000, 2)

	in := sine(250, 48000, 2, 512, 0.5)
	block := make([]float32, len(in))

	var wg sync.WaitGroup
	wg.Go(func() {
		for i := range 200 {
			_ = eq.SetGain(i%NumBands, float64(i%25-12))
		}
	})

	for range 200 {
		copy(block, in)
		eq.Process(block, 2)
	}

	wg.Wait()

	for i, v := range block {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("sample[%d] = %v", i, v)
		}
	}
}

func TestEqualizer_ReenabledBandStartsClean(t *testing.T) {
	t.Parallel()

	eq := NewEqualizer()
	if err := eq.Configure(48000, 2); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	_ = eq.SetGain(5, 12)
	eq.Process(sine(1000, 48000, 2, 512, 0.5), 2)

	_ = eq.SetGain(5, 0)
	eq.Process(sine(1000, 48000, 2, 512, 0.5), 2)

	// zeros in must give zeros out once the band is back; leftover filter
	// memory would ring instead
	_ = eq.SetGain(5, 12)
	silence := make([]float32, 256*2)
	eq.Process(silence, 2)

	for i, v := range silence {
		if v != 0 {
			t.Fatalf("sample[%d] = %v after re-enabling band, want 0", i, v)
		}
	}
}
