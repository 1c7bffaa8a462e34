// SPDX-License-Identifier: EPL-2.0

package audplay

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/driver"
	"github.com/ik5/audplay/effects"
	"github.com/ik5/audplay/formats"
	"github.com/ik5/audplay/playback"
)

// DefaultDriver is used when Options leaves Driver empty.
const DefaultDriver = "oto"

// DefaultTargetRate is the rate loaded tracks are converted to unless
// Options says otherwise. The oto backend can only open one device format
// per process, so a fixed rate keeps successive tracks playable.
const DefaultTargetRate = 44100

// Options configures a Player. The zero value plays through oto at
// DefaultTargetRate with every bundled decoder.
type Options struct {
	Driver     string          // output backend name, see driver.Names
	Logger     *slog.Logger    // nil means slog.Default()
	Registry   *audio.Registry // nil means formats.Default()
	BlockSize  int             // frames per callback, 0 means playback.DefaultBlockSize
	TargetRate int             // 0 means DefaultTargetRate, -1 keeps the source rate
	Mono       bool
}

// Player is a playback engine wired to an output driver and the EQ and
// limiter chain.
type Player struct {
	*playback.Engine

	drv driver.Driver
	fx  *effects.Chain
}

// New opens the named driver and builds a stopped Player with nothing
// loaded.
func New(opts Options) (*Player, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	name := opts.Driver
	if name == "" {
		name = DefaultDriver
	}

	registry := opts.Registry
	if registry == nil {
		registry = formats.Default()
	}

	target := opts.TargetRate
	switch {
	case target == 0:
		target = DefaultTargetRate
	case target < 0:
		target = 0
	}

	drv, err := driver.New(name, logger)
	if err != nil {
		return nil, err
	}

	fx := effects.NewChain()

	eng, err := playback.New(playback.Config{
		Driver:     drv,
		Effects:    fx,
		Registry:   registry,
		Logger:     logger,
		BlockSize:  opts.BlockSize,
		TargetRate: target,
		Mono:       opts.Mono,
	})
	if err != nil {
		return nil, errors.Join(err, drv.Close())
	}

	logger.Debug("player ready", "driver", drv.Name(), "target_rate", target, "block", opts.BlockSize)

	return &Player{
		Engine: eng,
		drv:    drv,
		fx:     fx,
	}, nil
}

// Effects gives direct access to the EQ and limiter, for reading back
// current settings.
func (p *Player) Effects() *effects.Chain { return p.fx }

// DriverName is the name of the output backend in use.
func (p *Player) DriverName() string { return p.drv.Name() }

// Close shuts the engine down, then the driver.
func (p *Player) Close() error {
	err := p.Engine.Close()
	if derr := p.drv.Close(); derr != nil {
		err = errors.Join(err, fmt.Errorf("closing driver %s: %w", p.drv.Name(), derr))
	}

	return err
}

// Formats lists the file extensions the bundled decoders accept.
func Formats() []string {
	return formats.Default().Formats()
}
