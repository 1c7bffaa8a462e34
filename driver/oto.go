// SPDX-License-Identifier: EPL-2.0

package driver

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

func init() {
	Register("oto", newOtoDriver)
}

// oto allows one context per process, fixed to the format it was created
// with.
var otoContext struct {
	sync.Mutex
	ctx      *oto.Context
	rate     int
	channels int
}

func sharedOtoContext(cfg StreamConfig) (*oto.Context, error) {
	otoContext.Lock()
	defer otoContext.Unlock()

	if otoContext.ctx != nil {
		if otoContext.rate != cfg.SampleRate || otoContext.channels != cfg.Channels {
			return nil, fmt.Errorf("%w: open at %d Hz/%d ch, requested %d Hz/%d ch",
				ErrFormatMismatch, otoContext.rate, otoContext.channels, cfg.SampleRate, cfg.Channels)
		}
		return otoContext.ctx, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   2 * time.Duration(cfg.BlockSize) * time.Second / time.Duration(cfg.SampleRate),
	})
	if err != nil {
		return nil, fmt.Errorf("creating oto context: %w", err)
	}
	<-ready

	otoContext.ctx = ctx
	otoContext.rate = cfg.SampleRate
	otoContext.channels = cfg.Channels

	return ctx, nil
}

type otoDriver struct {
	logger *slog.Logger
}

func newOtoDriver(logger *slog.Logger) (Driver, error) {
	return &otoDriver{logger: logger}, nil
}

func (d *otoDriver) Name() string { return "oto" }
func (d *otoDriver) Close() error { return nil }

func (d *otoDriver) Open(cfg StreamConfig, cb Callback) (Stream, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, err := sharedOtoContext(cfg)
	if err != nil {
		return nil, err
	}

	r := newBlockReader(cfg, cb)
	s := &otoStream{reader: r, player: ctx.NewPlayer(r), logger: d.logger}

	d.logger.Debug("stream opened", "rate", cfg.SampleRate, "channels", cfg.Channels, "block", cfg.BlockSize)

	return s, nil
}

// player is the part of *oto.Player a stream drives.
type player interface {
	Play()
	Pause()
	Close() error
}

type otoStream struct {
	reader *blockReader
	player player
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

func (s *otoStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStreamClosed
	}

	s.reader.setRunning(true)
	s.player.Play()

	return nil
}

func (s *otoStream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stop()
}

func (s *otoStream) stop() error {
	if s.closed {
		return nil
	}

	s.reader.setRunning(false)
	s.player.Pause()

	return nil
}

func (s *otoStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	_ = s.stop()
	s.closed = true

	if err := s.player.Close(); err != nil {
		return fmt.Errorf("closing oto player: %w", err)
	}

	s.logger.Debug("stream closed")

	return nil
}
