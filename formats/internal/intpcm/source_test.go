// SPDX-License-Identifier: EPL-2.0

package intpcm

import (
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
)

type mockReader struct {
	samples []int
	offset  int
	err     error
}

func (m *mockReader) Format() *goaudio.Format {
	return &goaudio.Format{SampleRate: 8000, NumChannels: 1}
}

func (m *mockReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	return n, nil
}

func TestSource_Normalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		unsigned bool
		in       []int
		want     []float32
	}{
		{"16-bit", 16, false, []int{0, 16384, -32768}, []float32{0, 0.5, -1}},
		{"24-bit", 24, false, []int{4194304, -8388608}, []float32{0.5, -1}},
		{"32-bit", 32, false, []int{1073741824}, []float32{0.5}},
		{"8-bit signed", 8, false, []int{64, -128}, []float32{0.5, -1}},
		{"8-bit unsigned", 8, true, []int{128, 192, 0}, []float32{0, 0.5, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := New(&mockReader{samples: tt.in}, 8000, 1, tt.bitDepth, tt.unsigned)
			dst := make([]float32, len(tt.in))

			n, err := src.ReadSamples(dst)
			if err != nil && err != io.EOF {
				t.Fatalf("ReadSamples() error = %v", err)
			}

			if n != len(tt.want) {
				t.Fatalf("ReadSamples() n = %d, want %d", n, len(tt.want))
			}

			for i, w := range tt.want {
				if math.Abs(float64(dst[i]-w)) > 1e-6 {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], w)
				}
			}
		})
	}
}

func TestSource_ShortReadIsEOF(t *testing.T) {
	t.Parallel()

	src := New(&mockReader{samples: []int{1, 2, 3}}, 8000, 1, 16, false)

	n, err := src.ReadSamples(make([]float32, 8))
	if n != 3 || err != io.EOF {
		t.Fatalf("ReadSamples() = (%d, %v), want (3, EOF)", n, err)
	}

	n, err = src.ReadSamples(make([]float32, 8))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_DecoderError(t *testing.T) {
	t.Parallel()

	want := errors.New("corrupt")
	src := New(&mockReader{err: want}, 8000, 1, 16, false)

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, want) {
		t.Errorf("ReadSamples() error = %v, want %v", err, want)
	}
}

func TestSource_EmptyDst(t *testing.T) {
	t.Parallel()

	src := New(&mockReader{samples: []int{1}}, 8000, 1, 16, false)

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}
