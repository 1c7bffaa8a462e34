// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ik5/audplay/effects"
)

var ErrInvalid = errors.New("invalid configuration")

// Config holds runtime settings for the player.
type Config struct {
	// Output
	Driver     string // driver.Names() entry
	BlockSize  int    // frames per callback
	TargetRate int    // resample tracks to this rate on load, 0 keeps theirs
	Mono       bool

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // text, json, logfmt

	// Initial playback settings
	Volume  float64
	Speed   float64
	EQ      [effects.NumBands]float64 // dB per band
	Limiter effects.LimiterParams

	Files    []string // tracks given on the command line
	ShowHelp bool
}

// Load reads configuration from AUDPLAY_* environment variables with sane
// defaults. Unparseable values fall back to the default.
func Load() Config {
	lim := effects.DefaultLimiterParams()

	cfg := Config{
		Driver:     envStr("AUDPLAY_DRIVER", "oto"),
		BlockSize:  envInt("AUDPLAY_BLOCK_SIZE", 2048),
		TargetRate: envInt("AUDPLAY_TARGET_RATE", 44100),
		Mono:       envBool("AUDPLAY_MONO", false),

		LogLevel:  strings.ToLower(envStr("AUDPLAY_LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(envStr("AUDPLAY_LOG_FORMAT", "text")),

		Volume: envFloat("AUDPLAY_VOLUME", 1.0),
		Speed:  envFloat("AUDPLAY_SPEED", 1.0),
		Limiter: effects.LimiterParams{
			ThresholdDB: envFloat("AUDPLAY_LIMITER_THRESHOLD", lim.ThresholdDB),
			Ratio:       envFloat("AUDPLAY_LIMITER_RATIO", lim.Ratio),
			AttackMs:    envFloat("AUDPLAY_LIMITER_ATTACK", lim.AttackMs),
			ReleaseMs:   envFloat("AUDPLAY_LIMITER_RELEASE", lim.ReleaseMs),
		},
	}

	if v := os.Getenv("AUDPLAY_EQ"); v != "" {
		if gains, err := ParseGains(v); err == nil {
			cfg.EQ = gains
		}
	}

	return cfg
}

// ParseArgs applies command-line flags on top of base. Positional
// arguments become Files.
func ParseArgs(base Config, args []string) (Config, error) {
	cfg := base

	fs := flag.NewFlagSet("audplay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Driver, "driver", cfg.Driver, "output driver")
	fs.StringVar(&cfg.Driver, "d", cfg.Driver, "output driver (short)")
	fs.IntVar(&cfg.BlockSize, "block", cfg.BlockSize, "frames per audio callback")
	fs.IntVar(&cfg.TargetRate, "rate", cfg.TargetRate, "resample tracks to this rate, 0 to keep")
	fs.BoolVar(&cfg.Mono, "mono", cfg.Mono, "downmix to mono")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (short)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text, json or logfmt")
	fs.Float64Var(&cfg.Volume, "volume", cfg.Volume, "initial volume 0..1")
	fs.Float64Var(&cfg.Speed, "speed", cfg.Speed, "initial speed")
	fs.Var((*gainsValue)(&cfg.EQ), "eq", "comma separated band gains in dB")
	fs.Float64Var(&cfg.Limiter.ThresholdDB, "limiter-threshold", cfg.Limiter.ThresholdDB, "limiter threshold dB")
	fs.Float64Var(&cfg.Limiter.Ratio, "limiter-ratio", cfg.Limiter.Ratio, "limiter ratio")
	fs.Float64Var(&cfg.Limiter.AttackMs, "limiter-attack", cfg.Limiter.AttackMs, "limiter attack ms")
	fs.Float64Var(&cfg.Limiter.ReleaseMs, "limiter-release", cfg.Limiter.ReleaseMs, "limiter release ms")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "show help")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "show help (short)")

	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.Files = fs.Args()

	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Driver == "":
		return fmt.Errorf("%w: empty driver", ErrInvalid)
	case c.BlockSize < 16 || c.BlockSize > 1<<16:
		return fmt.Errorf("%w: block size %d outside 16..65536", ErrInvalid, c.BlockSize)
	case c.TargetRate < 0:
		return fmt.Errorf("%w: target rate %d", ErrInvalid, c.TargetRate)
	case !(c.Volume >= 0 && c.Volume <= 1):
		return fmt.Errorf("%w: volume %v outside 0..1", ErrInvalid, c.Volume)
	case !(c.Speed >= 0) || c.Speed > 16:
		return fmt.Errorf("%w: speed %v outside 0..16", ErrInvalid, c.Speed)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}

	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat)
	}

	for band, g := range c.EQ {
		if !(g >= -effects.MaxGainDB && g <= effects.MaxGainDB) {
			return fmt.Errorf("%w: band %d gain %v dB", ErrInvalid, band, g)
		}
	}

	if err := c.Limiter.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// ParseGains reads up to effects.NumBands comma separated dB values.
// Missing trailing bands are 0.
func ParseGains(s string) ([effects.NumBands]float64, error) {
	var gains [effects.NumBands]float64

	parts := strings.Split(s, ",")
	if len(parts) > effects.NumBands {
		return gains, fmt.Errorf("%w: %d gains for %d bands", ErrInvalid, len(parts), effects.NumBands)
	}

	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		g, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return gains, fmt.Errorf("%w: band %d: %w", ErrInvalid, i, err)
		}
		gains[i] = g
	}

	return gains, nil
}

type gainsValue [effects.NumBands]float64

func (g *gainsValue) String() string {
	if g == nil {
		return ""
	}

	parts := make([]string, len(g))
	for i, v := range g {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strings.Join(parts, ",")
}

func (g *gainsValue) Set(s string) error {
	gains, err := ParseGains(s)
	if err != nil {
		return err
	}
	*g = gains

	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
