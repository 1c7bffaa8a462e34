// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"log/slog"
	"sync"

	"github.com/ik5/audplay/driver"
)

// Garbage is written into every block before the callback runs, so tests
// can tell whether the callback filled all of it.
const Garbage float32 = 42

// FakeDriver is a driver.Driver whose streams only produce audio when a
// test calls Pull.
type FakeDriver struct {
	// OpenErr and StartErr, when set, are returned by Open and Start.
	OpenErr  error
	StartErr error

	mu      sync.Mutex
	streams []*FakeStream
	closed  bool
}

func NewFakeDriver() *FakeDriver {
	return &FakeDriver{}
}

// Factory adapts d for driver.Register.
func (d *FakeDriver) Factory() driver.Factory {
	return func(*slog.Logger) (driver.Driver, error) { return d, nil }
}

func (d *FakeDriver) Name() string { return "fake" }

func (d *FakeDriver) Open(cfg driver.StreamConfig, cb driver.Callback) (driver.Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.OpenErr != nil {
		return nil, d.OpenErr
	}

	s := &FakeStream{
		Config: cfg,
		cb:     cb,
		block:  make([]float32, cfg.BlockSize*cfg.Channels),
		drv:    d,
	}
	d.streams = append(d.streams, s)

	return s, nil
}

func (d *FakeDriver) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	return nil
}

// Closed reports whether Close was called.
func (d *FakeDriver) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.closed
}

// Opens is the number of streams opened so far.
func (d *FakeDriver) Opens() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.streams)
}

// Last returns the most recently opened stream, or nil.
func (d *FakeDriver) Last() *FakeStream {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.streams) == 0 {
		return nil
	}

	return d.streams[len(d.streams)-1]
}

// Pull runs one callback on the most recent stream. See FakeStream.Pull.
func (d *FakeDriver) Pull(status driver.Status) ([]float32, bool) {
	s := d.Last()
	if s == nil {
		return nil, false
	}

	return s.Pull(status)
}

// FakeStream records its lifecycle calls.
type FakeStream struct {
	Config driver.StreamConfig

	cb    driver.Callback
	drv   *FakeDriver
	block []float32

	mu                    sync.Mutex // held during callbacks
	running, closed       bool
	starts, stops, closes int
}

func (s *FakeStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return driver.ErrStreamClosed
	}

	s.drv.mu.Lock()
	err := s.drv.StartErr
	s.drv.mu.Unlock()

	if err != nil {
		return err
	}

	s.starts++
	s.running = true

	return nil
}

func (s *FakeStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stops++
	s.running = false

	return nil
}

func (s *FakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closes++
	s.running = false
	s.closed = true

	return nil
}

// Pull runs the callback once, the way the device would, and returns a copy
// of the block. It returns false without calling back when the stream is
// not running.
func (s *FakeStream) Pull(status driver.Status) ([]float32, bool) {
	out := make([]float32, len(s.block))
	if !s.PullInto(out, status) {
		return nil, false
	}

	return out, true
}

// PullInto is Pull without the allocation; out must be at least one block
// long.
func (s *FakeStream) PullInto(out []float32, status driver.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return false
	}

	for i := range s.block {
		s.block[i] = Garbage
	}

	s.cb(s.block, status)
	copy(out, s.block)

	return true
}

// Running reports whether the stream is started.
func (s *FakeStream) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// Counts returns how many times Start, Stop and Close were called.
func (s *FakeStream) Counts() (starts, stops, closes int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.starts, s.stops, s.closes
}

// IsClosed reports whether Close was called.
func (s *FakeStream) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}
