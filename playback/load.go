// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/formats"
)

// LoadBuffer replaces the current track with buf. Like every Load method it
// first stops playback and rewinds; on failure the previous track stays
// loaded.
func (e *Engine) LoadBuffer(buf *audio.Buffer) error {
	return e.load(func() (*audio.Buffer, error) {
		if buf == nil {
			return nil, ErrEmptyBuffer
		}
		return buf, nil
	})
}

// LoadSource drains and closes src, then loads the result.
func (e *Engine) LoadSource(src audio.Source) error {
	return e.load(func() (*audio.Buffer, error) {
		defer src.Close()
		return readAll(src)
	})
}

// LoadFile decodes the file at path. The decoder is picked by extension,
// falling back to the file's leading bytes.
func (e *Engine) LoadFile(path string) error {
	return e.load(func() (*audio.Buffer, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
		}
		defer f.Close()

		if info, err := f.Stat(); err == nil && info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, path)
		}

		r := bufio.NewReader(f)
		format := filepath.Ext(path)
		if _, ok := e.decoder(format); !ok {
			header, _ := r.Peek(formats.HeaderSize)
			format = formats.Detect(header)
		}

		return e.decode(format, r)
	})
}

// LoadBytes decodes an in-memory file. An empty format is detected from
// the data.
func (e *Engine) LoadBytes(format string, data []byte) error {
	return e.load(func() (*audio.Buffer, error) {
		if len(data) == 0 {
			return nil, ErrEmptyBuffer
		}

		if format == "" {
			format = formats.Detect(data[:min(len(data), formats.HeaderSize)])
		}

		return e.decode(format, bytes.NewReader(data))
	})
}

func (e *Engine) decoder(format string) (audio.Decoder, bool) {
	if e.registry == nil || format == "" {
		return nil, false
	}

	return e.registry.Get(format)
}

func (e *Engine) decode(format string, r io.Reader) (buf *audio.Buffer, err error) {
	dec, ok := e.decoder(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	defer func() {
		if p := recover(); p != nil {
			buf, err = nil, fmt.Errorf("%w: decoder panic: %v", ErrDecode, p)
		}
	}()

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer src.Close()

	return readAll(src)
}

// readAll turns source failures, panics included, into ErrDecode.
func readAll(src audio.Source) (buf *audio.Buffer, err error) {
	defer func() {
		if p := recover(); p != nil {
			buf, err = nil, fmt.Errorf("%w: source panic: %v", ErrDecode, p)
		}
	}()

	buf, err = audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return buf, nil
}

// load runs the common part of every Load method: stop, obtain a buffer,
// shape it to the configured output format, configure effects, swap.
func (e *Engine) load(get func() (*audio.Buffer, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	// the stream is closed from here on, so no callback can see the swap
	stopErr := e.stopLocked()

	buf, err := get()
	if err == nil {
		buf, err = e.shape(buf)
	}

	if err == nil {
		err = e.fx.Configure(buf.SampleRate(), buf.Channels())
	}

	if err != nil {
		e.logger.Warn("load failed", "error", err)
		return err
	}

	e.buf.Store(buf)
	e.state.reset()

	// drop a stale end-of-track signal from the previous track
	select {
	case <-e.finished:
	default:
	}

	e.logger.Info("track loaded",
		"frames", buf.Frames(),
		"rate", buf.SampleRate(),
		"channels", buf.Channels(),
		"duration", buf.Duration())

	if stopErr != nil {
		e.logger.Warn("stopping previous stream", "error", stopErr)
	}

	return nil
}

func (e *Engine) shape(buf *audio.Buffer) (*audio.Buffer, error) {
	if buf.Frames() == 0 {
		return nil, ErrEmptyBuffer
	}

	if e.mono {
		buf = audio.Downmix(buf)
	}

	if e.target > 0 {
		converted, err := audio.Convert(buf, e.target)
		if err != nil {
			return nil, fmt.Errorf("converting to %d Hz: %w", e.target, err)
		}
		buf = converted
	}

	if buf.Frames() == 0 {
		return nil, ErrEmptyBuffer
	}

	return buf, nil
}
