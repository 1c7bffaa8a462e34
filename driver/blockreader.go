// SPDX-License-Identifier: EPL-2.0

package driver

import (
	"encoding/binary"
	"math"
	"sync"
)

// blockReader turns a fixed-size Callback into an io.Reader of
// little-endian float32 bytes, for backends that pull arbitrary amounts.
// While stopped it reads silence without touching the callback.
type blockReader struct {
	cb       Callback
	channels int

	mu      sync.Mutex // held for the whole of each callback
	running bool
	block   []float32
	raw     []byte
	off     int // consumed bytes of raw
	status  Status
}

func newBlockReader(cfg StreamConfig, cb Callback) *blockReader {
	n := cfg.BlockSize * cfg.Channels

	return &blockReader{
		cb:       cb,
		channels: cfg.Channels,
		block:    make([]float32, n),
		raw:      make([]byte, n*4),
		off:      n * 4,
	}
}

func (r *blockReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		clear(p)
		return len(p), nil
	}

	n := 0
	for n < len(p) {
		if r.off == len(r.raw) {
			r.render()
		}

		c := copy(p[n:], r.raw[r.off:])
		r.off += c
		n += c
	}

	return n, nil
}

// render must be called with mu held.
func (r *blockReader) render() {
	r.cb(r.block, r.status)
	r.status = 0

	for i, v := range r.block {
		binary.LittleEndian.PutUint32(r.raw[i*4:], math.Float32bits(v))
	}
	r.off = 0
}

// setRunning blocks until any callback in progress has returned.
func (r *blockReader) setRunning(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if on && !r.running {
		// first block after a start primes the device buffer
		r.status |= StatusPriming
		r.off = len(r.raw)
	}
	r.running = on
}

// flag records a status to hand to the next callback.
func (r *blockReader) flag(s Status) {
	r.mu.Lock()
	r.status |= s
	r.mu.Unlock()
}
