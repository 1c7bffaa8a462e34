// SPDX-License-Identifier: EPL-2.0

package effects

import (
	"errors"
	"math"
	"testing"
)

func constant(v float32, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}

	return out
}

func TestLimiterParams_Validate(t *testing.T) {
	t.Parallel()

	def := DefaultLimiterParams()

	tests := []struct {
		name    string
		mutate  func(p *LimiterParams)
		wantErr error
	}{
		{"defaults", func(*LimiterParams) {}, nil},
		{"ratio one", func(p *LimiterParams) { p.Ratio = 1 }, nil},
		{"threshold zero", func(p *LimiterParams) { p.ThresholdDB = 0 }, nil},
		{"ratio below one", func(p *LimiterParams) { p.Ratio = 0.5 }, ErrInvalidLimiter},
		{"ratio nan", func(p *LimiterParams) { p.Ratio = math.NaN() }, ErrInvalidLimiter},
		{"zero attack", func(p *LimiterParams) { p.AttackMs = 0 }, ErrInvalidLimiter},
		{"negative release", func(p *LimiterParams) { p.ReleaseMs = -1 }, ErrInvalidLimiter},
		{"positive threshold", func(p *LimiterParams) { p.ThresholdDB = 3 }, ErrInvalidLimiter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := def
			tt.mutate(&p)

			if err := p.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLimiter_Defaults(t *testing.T) {
	t.Parallel()

	want := LimiterParams{ThresholdDB: -12, Ratio: 1.5, AttackMs: 10, ReleaseMs: 1000}
	if got := NewLimiter().Params(); got != want {
		t.Errorf("Params() = %+v, want %+v", got, want)
	}
}

func TestLimiter_SetParams_RejectsInvalid(t *testing.T) {
	t.Parallel()

	l := NewLimiter()
	bad := DefaultLimiterParams()
	bad.Ratio = 0

	if err := l.SetParams(bad); !errors.Is(err, ErrInvalidLimiter) {
		t.Fatalf("SetParams() error = %v, want ErrInvalidLimiter", err)
	}

	if l.Params() != DefaultLimiterParams() {
		t.Errorf("Params() = %+v, want defaults kept", l.Params())
	}
}

func TestLimiter_ReducesAboveThreshold(t *testing.T) {
	t.Parallel()

	const rate = 48000

	l := NewLimiter()
	if err := l.Configure(rate, 2); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}

	// full scale is 12 dB over; 1.5:1 takes off 4 dB
	block := constant(1, rate*2)
	l.Process(block, 2)

	want := float32(math.Pow(10, -4.0/20))
	got := block[len(block)-1]
	if math.Abs(float64(got-want)) > 0.01 {
		t.Errorf("settled output = %v, want %v", got, want)
	}

	if block[len(block)-1] != block[len(block)-2] {
		t.Error("channels received different gain")
	}
}

func TestLimiter_PassesBelowThreshold(t *testing.T) {
	t.Parallel()

	l := NewLimiter()
	_ = l.Configure(44100, 1)

	block := constant(0.1, 4096) // -20 dBFS
	l.Process(block, 1)

	for i, v := range block {
		if v != 0.1 {
			t.Fatalf("sample[%d] = %v, want 0.1", i, v)
		}
	}
}

func TestLimiter_UnitRatioIsIdentity(t *testing.T) {
	t.Parallel()

	l := NewLimiter()
	_ = l.Configure(44100, 1)

	p := DefaultLimiterParams()
	p.Ratio = 1
	if err := l.SetParams(p); err != nil {
		t.Fatalf("SetParams() error = %v", err)
	}

	block := constant(1, 1024)
	l.Process(block, 1)

	for i, v := range block {
		if v != 1 {
			t.Fatalf("sample[%d] = %v, want 1", i, v)
		}
	}
}

func TestLimiter_UnconfiguredIsIdentity(t *testing.T) {
	t.Parallel()

	block := constant(1, 64)
	NewLimiter().Process(block, 1)

	if block[63] != 1 {
		t.Errorf("sample = %v before Configure, want 1", block[63])
	}
}
