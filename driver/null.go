// SPDX-License-Identifier: EPL-2.0

package driver

import (
	"log/slog"
	"sync"
	"time"
)

func init() {
	Register("null", newNullDriver)
}

// nullDriver paces callbacks in real time and throws the output away. It
// needs no audio hardware.
type nullDriver struct {
	logger *slog.Logger
}

func newNullDriver(logger *slog.Logger) (Driver, error) {
	return &nullDriver{logger: logger}, nil
}

func (d *nullDriver) Name() string { return "null" }
func (d *nullDriver) Close() error { return nil }

func (d *nullDriver) Open(cfg StreamConfig, cb Callback) (Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	period := time.Duration(cfg.BlockSize) * time.Second / time.Duration(cfg.SampleRate)

	return &nullStream{
		cb:     cb,
		block:  make([]float32, cfg.BlockSize*cfg.Channels),
		period: period,
		logger: d.logger,
	}, nil
}

type nullStream struct {
	cb     Callback
	block  []float32
	period time.Duration
	logger *slog.Logger

	mu     sync.Mutex
	quit   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

func (s *nullStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStreamClosed
	}

	if s.quit != nil {
		return nil
	}

	s.quit = make(chan struct{})
	quit := s.quit
	s.wg.Go(func() { s.run(quit) })

	return nil
}

func (s *nullStream) run(quit <-chan struct{}) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	status := StatusPriming
	last := time.Now()

	for {
		select {
		case <-quit:
			return
		case now := <-ticker.C:
			// a tick arriving two periods late means the consumer fell behind
			if now.Sub(last) > 2*s.period {
				status |= StatusUnderflow
			}
			last = now

			s.cb(s.block, status)
			status = 0
		}
	}
}

func (s *nullStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stop()

	return nil
}

func (s *nullStream) stop() {
	if s.quit == nil {
		return
	}

	close(s.quit)
	s.wg.Wait()
	s.quit = nil
}

func (s *nullStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stop()
	if !s.closed {
		s.closed = true
		s.logger.Debug("stream closed")
	}

	return nil
}
