// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/audplay/effects"
)

var (
	errUnknownCommand = errors.New("unknown command, try help")
	errUsage          = errors.New("usage")
	errNoTrack        = errors.New("no such track")
)

// command is one parsed input line.
type command struct {
	name string
	args []string
}

// parseCommand splits line into a lowercased command name and its
// arguments. It reports false for blank lines.
func parseCommand(line string) (command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, false
	}

	return command{name: strings.ToLower(fields[0]), args: fields[1:]}, true
}

func (c command) float(i int) (float64, error) {
	v, err := strconv.ParseFloat(c.args[i], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a number", errUsage, c.name, c.args[i])
	}

	return v, nil
}

func (c command) want(n int, form string) error {
	if len(c.args) != n {
		return fmt.Errorf("%w: %s %s", errUsage, c.name, form)
	}

	return nil
}

func (a *app) exec(line string) error {
	cmd, ok := parseCommand(line)
	if !ok {
		return nil
	}

	switch cmd.name {
	case "play":
		return a.p.Play()
	case "pause":
		return a.p.Pause()
	case "stop":
		return a.p.Stop()
	case "seek":
		return a.seek(cmd)
	case "volume", "vol":
		return a.volume(cmd)
	case "speed":
		return a.speed(cmd)
	case "eq":
		return a.eq(cmd)
	case "limiter":
		return a.limiter(cmd)
	case "load":
		return a.load(cmd)
	case "next":
		return a.skip(1)
	case "prev":
		return a.skip(-1)
	case "status":
		a.status()
		return nil
	case "help", "?":
		fmt.Fprint(a.out, commandHelp)
		return nil
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd.name)
	}
}

func (a *app) seek(cmd command) error {
	if err := cmd.want(1, "SECONDS"); err != nil {
		return err
	}

	secs, err := cmd.float(0)
	if err != nil {
		return err
	}

	return a.p.Seek(secs)
}

func (a *app) volume(cmd command) error {
	if err := cmd.want(1, "V"); err != nil {
		return err
	}

	v, err := cmd.float(0)
	if err != nil {
		return err
	}

	a.p.SetVolume(v)
	fmt.Fprintf(a.out, "volume %.2f\n", a.p.Volume())

	return nil
}

func (a *app) speed(cmd command) error {
	if err := cmd.want(1, "S"); err != nil {
		return err
	}

	s, err := cmd.float(0)
	if err != nil {
		return err
	}

	if !a.p.SetSpeed(s) {
		return fmt.Errorf("%w: speed must be a finite number >= 0", errUsage)
	}

	fmt.Fprintf(a.out, "speed %.2f\n", a.p.Speed())

	return nil
}

func (a *app) eq(cmd command) error {
	if len(cmd.args) == 0 {
		gains := a.p.Effects().Equalizer().Gains()
		for band, freq := range effects.BandFrequencies {
			fmt.Fprintf(a.out, "%d %7.0f Hz %+6.1f dB\n", band, freq, gains[band])
		}
		return nil
	}

	if err := cmd.want(2, "BAND DB"); err != nil {
		return err
	}

	band, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return fmt.Errorf("%w: eq: band %q is not an integer", errUsage, cmd.args[0])
	}

	gain, err := cmd.float(1)
	if err != nil {
		return err
	}

	return a.p.SetBandGain(band, gain)
}

func (a *app) limiter(cmd command) error {
	if len(cmd.args) == 0 {
		lp := a.p.Effects().Limiter().Params()
		fmt.Fprintf(a.out, "threshold %.1f dB ratio %.2f attack %.1f ms release %.1f ms\n",
			lp.ThresholdDB, lp.Ratio, lp.AttackMs, lp.ReleaseMs)
		return nil
	}

	if err := cmd.want(4, "DB RATIO ATTACK RELEASE"); err != nil {
		return err
	}

	var v [4]float64
	for i := range v {
		f, err := cmd.float(i)
		if err != nil {
			return err
		}
		v[i] = f
	}

	return a.p.SetLimiter(effects.LimiterParams{
		ThresholdDB: v[0],
		Ratio:       v[1],
		AttackMs:    v[2],
		ReleaseMs:   v[3],
	})
}

// load plays a file at once and appends it to the playlist. Paths may
// contain spaces.
func (a *app) load(cmd command) error {
	if len(cmd.args) == 0 {
		return fmt.Errorf("%w: load FILE", errUsage)
	}

	path := strings.Join(cmd.args, " ")
	if err := a.p.LoadFile(path); err != nil {
		return err
	}

	a.playlist = append(a.playlist, path)
	a.track = len(a.playlist) - 1

	return nil
}

func (a *app) skip(delta int) error {
	i := a.track + delta
	if i < 0 || i >= len(a.playlist) {
		return errNoTrack
	}

	if !a.playFrom(i) {
		return fmt.Errorf("%w: nothing playable from %d", errNoTrack, i+1)
	}

	return nil
}

func (a *app) status() {
	name := "-"
	if a.track >= 0 && a.track < len(a.playlist) {
		name = filepath.Base(a.playlist[a.track])
	}

	fmt.Fprintf(a.out, "%s %s / %s speed %.2f volume %.2f track %s\n",
		a.p.State(),
		a.p.Position().Round(time.Millisecond),
		a.p.Duration().Round(time.Millisecond),
		a.p.Speed(),
		a.p.Volume(),
		name)
}
