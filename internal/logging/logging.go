// SPDX-License-Identifier: EPL-2.0

// Package logging builds the slog.Logger used across audplay, backed by
// github.com/charmbracelet/log.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var ErrInvalidOption = errors.New("invalid logging option")

// Options select level and format. A nil Output means os.Stderr.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json, logfmt
	Output io.Writer
}

// New returns a logger writing through a charmbracelet/log handler.
func New(opts Options) (*slog.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	formatter, err := parseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handler := log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "audplay",
	})

	return slog.New(handler), nil
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel, nil
	case "", "info":
		return log.InfoLevel, nil
	case "warn":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	}

	return 0, fmt.Errorf("%w: level %q", ErrInvalidOption, s)
}

func parseFormat(s string) (log.Formatter, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}

	return 0, fmt.Errorf("%w: format %q", ErrInvalidOption, s)
}
