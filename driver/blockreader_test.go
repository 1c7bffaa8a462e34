// SPDX-License-Identifier: EPL-2.0

package driver

import (
	"encoding/binary"
	"math"
	"testing"
)

// countingCallback fills each block with the block's sequence number.
type countingCallback struct {
	calls    int
	statuses []Status
}

func (c *countingCallback) fn(out []float32, status Status) {
	c.calls++
	c.statuses = append(c.statuses, status)
	for i := range out {
		out[i] = float32(c.calls)
	}
}

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
	}

	return out
}

func TestBlockReader_SilentWhenStopped(t *testing.T) {
	t.Parallel()

	cb := &countingCallback{}
	r := newBlockReader(StreamConfig{SampleRate: 8000, Channels: 2, BlockSize: 4}, cb.fn)

	p := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	n, err := r.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read() = %d, %v", n, err)
	}

	for i, b := range p {
		if b != 0 {
			t.Fatalf("byte[%d] = %d, want silence", i, b)
		}
	}

	if cb.calls != 0 {
		t.Errorf("callback ran %d times while stopped", cb.calls)
	}
}

func TestBlockReader_FixedBlocks(t *testing.T) {
	t.Parallel()

	cb := &countingCallback{}
	// 4 frames x 2 channels x 4 bytes = 32 bytes per block
	r := newBlockReader(StreamConfig{SampleRate: 8000, Channels: 2, BlockSize: 4}, cb.fn)
	r.setRunning(true)

	for _, size := range []int{12, 20, 1, 31, 64} {
		p := make([]byte, size)
		if n, err := r.Read(p); err != nil || n != size {
			t.Fatalf("Read(%d) = %d, %v", size, n, err)
		}
	}

	// 128 bytes total is exactly four blocks
	if cb.calls != 4 {
		t.Errorf("callback ran %d times, want 4", cb.calls)
	}

	if cb.statuses[0] != StatusPriming {
		t.Errorf("first status = %v, want priming", cb.statuses[0])
	}

	for i, s := range cb.statuses[1:] {
		if s != 0 {
			t.Errorf("status[%d] = %v, want ok", i+1, s)
		}
	}
}

func TestBlockReader_ContentSpansReads(t *testing.T) {
	t.Parallel()

	cb := &countingCallback{}
	r := newBlockReader(StreamConfig{SampleRate: 8000, Channels: 1, BlockSize: 2}, cb.fn)
	r.setRunning(true)

	var all []byte
	for range 3 {
		p := make([]byte, 12) // 3 samples per read, blocks are 2
		_, _ = r.Read(p)
		all = append(all, p...)
	}

	want := []float32{1, 1, 2, 2, 3, 3, 4, 4, 5}
	got := decode(all)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample[%d] = %v, want %v (got %v)", i, got[i], want[i], got)
		}
	}
}

func TestBlockReader_StopHaltsCallbacks(t *testing.T) {
	t.Parallel()

	cb := &countingCallback{}
	r := newBlockReader(StreamConfig{SampleRate: 8000, Channels: 1, BlockSize: 2}, cb.fn)
	r.setRunning(true)
	_, _ = r.Read(make([]byte, 8))

	r.setRunning(false)
	before := cb.calls
	_, _ = r.Read(make([]byte, 64))

	if cb.calls != before {
		t.Errorf("callback ran %d times after stop", cb.calls-before)
	}

	r.flag(StatusUnderflow)
	r.setRunning(true)
	_, _ = r.Read(make([]byte, 8))

	if last := cb.statuses[len(cb.statuses)-1]; last != StatusUnderflow|StatusPriming {
		t.Errorf("status after restart = %v, want underflow|priming", last)
	}
}
