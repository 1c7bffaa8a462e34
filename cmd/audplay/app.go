// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ik5/audplay"
	"github.com/ik5/audplay/internal/config"
	"github.com/ik5/audplay/internal/logging"
	"github.com/ik5/audplay/playback"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// errQuit ends the session without reporting a failure.
var errQuit = errors.New("quit")

// progressInterval is how often the position is logged at debug level.
const progressInterval = time.Second

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	cfg, err := config.ParseArgs(config.Load(), args)
	if err != nil {
		fmt.Fprint(stderr, usage)
		return err
	}

	if cfg.ShowHelp {
		fmt.Fprint(stdout, usage)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: stderr,
	})
	if err != nil {
		return err
	}

	// config uses 0 for "keep the source rate"
	target := cfg.TargetRate
	if target == 0 {
		target = -1
	}

	p, err := audplay.New(audplay.Options{
		Driver:     cfg.Driver,
		Logger:     logger,
		BlockSize:  cfg.BlockSize,
		TargetRate: target,
		Mono:       cfg.Mono,
	})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, p.Close())
	}()

	if err := applySettings(p, cfg); err != nil {
		return err
	}

	a := &app{
		p:        p,
		logger:   logger,
		out:      stdout,
		playlist: cfg.Files,
		track:    -1,
		prompt:   isTerminal(stdin),
	}

	return a.run(ctx, stdin)
}

func applySettings(p *audplay.Player, cfg config.Config) error {
	p.SetVolume(cfg.Volume)

	if !p.SetSpeed(cfg.Speed) {
		return fmt.Errorf("%w: speed %v", config.ErrInvalid, cfg.Speed)
	}

	for band, gain := range cfg.EQ {
		if err := p.SetBandGain(band, gain); err != nil {
			return err
		}
	}

	return p.SetLimiter(cfg.Limiter)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// app is one interactive session over a playlist.
type app struct {
	p        *audplay.Player
	logger   *slog.Logger
	out      io.Writer
	playlist []string
	track    int // index into playlist, -1 before anything loaded
	prompt   bool
}

func (a *app) run(ctx context.Context, stdin io.Reader) error {
	g, ctx := errgroup.WithContext(ctx)

	// Scan cannot be interrupted, so the reader is not waited for.
	lines := make(chan string)
	go readLines(ctx, stdin, lines)

	g.Go(func() error { return a.control(ctx, lines) })
	g.Go(func() error { return a.progress(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}

	return nil
}

func readLines(ctx context.Context, r io.Reader, lines chan<- string) {
	defer close(lines)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		select {
		case lines <- sc.Text():
		case <-ctx.Done():
			return
		}
	}
}

// control owns the player: it runs commands and moves through the
// playlist as tracks finish. It returns errQuit to end the session.
func (a *app) control(ctx context.Context, lines <-chan string) error {
	if len(a.playlist) > 0 {
		a.playFrom(0)
	}

	a.showPrompt()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-a.p.Finished():
			if !a.playFrom(a.track+1) && lines == nil {
				return errQuit
			}

		case line, ok := <-lines:
			if !ok {
				// no more input: linger only while there is something to hear
				lines = nil
				if a.p.State() != playback.Playing {
					return errQuit
				}
				continue
			}

			if err := a.exec(line); err != nil {
				if errors.Is(err, errQuit) {
					return err
				}
				fmt.Fprintf(a.out, "error: %v\n", err)
			}

			a.showPrompt()
		}
	}
}

// playFrom loads and plays the first playable track at or after index i.
// It reports whether anything started.
func (a *app) playFrom(i int) bool {
	for ; i >= 0 && i < len(a.playlist); i++ {
		if err := a.p.LoadFile(a.playlist[i]); err != nil {
			a.logger.Error("skipping track", "file", a.playlist[i], "error", err)
			continue
		}

		a.track = i

		if err := a.p.Play(); err != nil {
			a.logger.Error("cannot play", "file", a.playlist[i], "error", err)
			return false
		}

		a.logger.Info("now playing", "file", a.playlist[i], "track", i+1, "of", len(a.playlist))

		return true
	}

	if len(a.playlist) > 0 {
		a.logger.Info("end of playlist")
	}

	return false
}

func (a *app) progress(ctx context.Context) error {
	t := time.NewTicker(progressInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if a.p.Playing() {
				a.logger.Debug("progress",
					"position", a.p.Position().Round(time.Millisecond),
					"duration", a.p.Duration().Round(time.Millisecond),
					"dropped_statuses", a.p.Dropped())
			}
		}
	}
}

func (a *app) showPrompt() {
	if a.prompt {
		fmt.Fprint(a.out, "> ")
	}
}
