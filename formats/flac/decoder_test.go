// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/ik5/audplay/audio"
)

type mockStreamer struct {
	pairs  [][2]float64
	pos    int
	err    error
	closed bool
}

func (m *mockStreamer) Stream(samples [][2]float64) (int, bool) {
	if m.pos >= len(m.pairs) {
		return 0, false
	}

	n := copy(samples, m.pairs[m.pos:])
	m.pos += n

	return n, true
}

func (m *mockStreamer) Err() error   { return m.err }
func (m *mockStreamer) Close() error { m.closed = true; return nil }

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("This is not FLAC data")},
		{"empty", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotFlacFile) {
				t.Errorf("Decode() error = %v, want ErrNotFlacFile", err)
			}
		})
	}
}

func TestSource_ReadAll(t *testing.T) {
	t.Parallel()

	pairs := [][2]float64{{0.5, -0.5}, {0.25, -0.25}, {1, -1}}

	tests := []struct {
		name     string
		channels int
		want     []float32
	}{
		{"stereo", 2, []float32{0.5, -0.5, 0.25, -0.25, 1, -1}},
		{"mono", 1, []float32{0.5, 0.25, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st := &mockStreamer{pairs: pairs}
			src, err := newSource(st, beep.Format{SampleRate: 44100, NumChannels: tt.channels, Precision: 2})
			if err != nil {
				t.Fatalf("newSource() error = %v", err)
			}

			buf, err := audio.ReadAll(src)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}

			if buf.Channels() != tt.channels || buf.SampleRate() != 44100 {
				t.Errorf("got %d ch @ %d Hz, want %d ch @ 44100 Hz", buf.Channels(), buf.SampleRate(), tt.channels)
			}

			got := buf.Samples()
			if len(got) != len(tt.want) {
				t.Fatalf("got %d samples, want %d", len(got), len(tt.want))
			}

			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("sample[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}

			if err := src.Close(); err != nil || !st.closed {
				t.Errorf("Close() error = %v, closed = %v", err, st.closed)
			}
		})
	}
}

func TestSource_StreamError(t *testing.T) {
	t.Parallel()

	st := &mockStreamer{err: io.ErrUnexpectedEOF}
	src, err := newSource(st, beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2})
	if err != nil {
		t.Fatalf("newSource() error = %v", err)
	}

	_, err = src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, ErrDecode) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want ErrDecode wrapping io.ErrUnexpectedEOF", err)
	}
}

func TestNewSource_TooManyChannels(t *testing.T) {
	t.Parallel()

	st := &mockStreamer{}
	_, err := newSource(st, beep.Format{SampleRate: 48000, NumChannels: 6, Precision: 2})
	if !errors.Is(err, ErrUnsupportedChannels) {
		t.Errorf("newSource() error = %v, want ErrUnsupportedChannels", err)
	}

	if !st.closed {
		t.Error("streamer not closed on rejection")
	}
}
