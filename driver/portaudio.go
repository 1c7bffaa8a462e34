// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package driver

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

func init() {
	Register("portaudio", newPortAudioDriver)
}

type portAudioDriver struct {
	logger *slog.Logger
	once   sync.Once
}

func newPortAudioDriver(logger *slog.Logger) (Driver, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing portaudio: %w", err)
	}

	return &portAudioDriver{logger: logger}, nil
}

func (d *portAudioDriver) Name() string { return "portaudio" }

func (d *portAudioDriver) Close() error {
	var err error
	d.once.Do(func() {
		err = portaudio.Terminate()
	})

	return err
}

func (d *portAudioDriver) Open(cfg StreamConfig, cb Callback) (Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &portAudioStream{cb: cb, logger: d.logger}

	st, err := portaudio.OpenDefaultStream(0, cfg.Channels, float64(cfg.SampleRate), cfg.BlockSize, s.process)
	if err != nil {
		return nil, fmt.Errorf("opening portaudio stream: %w", err)
	}
	s.stream = st

	d.logger.Debug("stream opened", "rate", cfg.SampleRate, "channels", cfg.Channels, "block", cfg.BlockSize)

	return s, nil
}

type portAudioStream struct {
	cb      Callback
	stream  *portaudio.Stream
	logger  *slog.Logger
	running atomic.Bool

	mu     sync.Mutex
	closed bool
}

func statusFromFlags(flags portaudio.StreamCallbackFlags) Status {
	var s Status
	if flags&portaudio.OutputUnderflow != 0 {
		s |= StatusUnderflow
	}
	if flags&portaudio.OutputOverflow != 0 {
		s |= StatusOverflow
	}
	if flags&portaudio.PrimingOutput != 0 {
		s |= StatusPriming
	}

	return s
}

func (s *portAudioStream) process(out []float32, _ portaudio.StreamCallbackTimeInfo, flags portaudio.StreamCallbackFlags) {
	if !s.running.Load() {
		clear(out)
		return
	}

	s.cb(out, statusFromFlags(flags))
}

func (s *portAudioStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStreamClosed
	}

	if s.running.Load() {
		return nil
	}

	s.running.Store(true)
	if err := s.stream.Start(); err != nil {
		s.running.Store(false)
		return fmt.Errorf("starting portaudio stream: %w", err)
	}

	return nil
}

// Stop relies on Pa_StopStream, which returns only after the last
// callback has finished.
func (s *portAudioStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stop()
}

func (s *portAudioStream) stop() error {
	if !s.running.Load() {
		return nil
	}

	s.running.Store(false)
	if err := s.stream.Stop(); err != nil {
		return fmt.Errorf("stopping portaudio stream: %w", err)
	}

	return nil
}

func (s *portAudioStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	stopErr := s.stop()
	s.closed = true

	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("closing portaudio stream: %w", err)
	}

	s.logger.Debug("stream closed")

	return stopErr
}
