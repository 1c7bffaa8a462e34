// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/driver"
	"github.com/ik5/audplay/effects"
)

// DefaultBlockSize is the number of frames per callback when Config leaves
// BlockSize unset.
const DefaultBlockSize = 2048

// statusQueue bounds the device statuses waiting to be logged.
const statusQueue = 64

// State is the engine's transport state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Effects processes each rendered block before volume is applied.
// Process runs on the audio thread and must not block or allocate.
// Configure is only called while no stream is open.
type Effects interface {
	Configure(sampleRate, channels int) error
	SetBandGain(band int, gainDB float64) error
	SetLimiter(p effects.LimiterParams) error
	Process(block []float32, channels int)
}

// Config configures an Engine. Driver is required.
type Config struct {
	Driver   driver.Driver
	Effects  Effects         // nil means effects.NewChain()
	Registry *audio.Registry // decoders for LoadFile and LoadBytes; nil means none
	Logger   *slog.Logger    // nil means slog.Default()

	BlockSize  int  // frames per callback; 0 means DefaultBlockSize
	TargetRate int  // convert loaded audio to this rate; 0 keeps the source rate
	Mono       bool // fold loaded audio to one channel
}

// Engine plays one in-memory track through an output driver.
//
// Control methods may be called from any goroutine. The driver callback
// never takes the engine's mutex; it reads shared state through atomics.
type Engine struct {
	drv       driver.Driver
	fx        Effects
	registry  *audio.Registry
	logger    *slog.Logger
	blockSize int
	target    int
	mono      bool

	mu      sync.Mutex // serializes control calls
	stream  driver.Stream
	started bool
	closed  bool

	buf   atomic.Pointer[audio.Buffer]
	state *state

	finished chan struct{}
	statuses chan driver.Status
	dropped  atomic.Uint64
	quit     chan struct{}
	wg       sync.WaitGroup
}

// New builds a stopped engine with nothing loaded.
func New(cfg Config) (*Engine, error) {
	if cfg.Driver == nil {
		return nil, ErrNoDriver
	}

	if cfg.BlockSize < 0 || cfg.TargetRate < 0 {
		return nil, fmt.Errorf("%w: block size %d, target rate %d",
			driver.ErrInvalidConfig, cfg.BlockSize, cfg.TargetRate)
	}

	e := &Engine{
		drv:       cfg.Driver,
		fx:        cfg.Effects,
		registry:  cfg.Registry,
		logger:    cfg.Logger,
		blockSize: cfg.BlockSize,
		target:    cfg.TargetRate,
		mono:      cfg.Mono,
		state:     newState(),
		finished:  make(chan struct{}, 1),
		statuses:  make(chan driver.Status, statusQueue),
		quit:      make(chan struct{}),
	}

	if e.fx == nil {
		e.fx = effects.NewChain()
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	if e.blockSize == 0 {
		e.blockSize = DefaultBlockSize
	}

	e.wg.Go(e.reportStatus)

	return e, nil
}

// Play starts or resumes playback, opening the output stream if needed.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	buf := e.buf.Load()
	if buf == nil {
		return ErrNoTrack
	}

	if e.stream == nil {
		s, err := e.drv.Open(driver.StreamConfig{
			SampleRate: buf.SampleRate(),
			Channels:   buf.Channels(),
			BlockSize:  e.blockSize,
		}, e.render)
		if err != nil {
			return fmt.Errorf("opening output stream: %w", err)
		}
		e.stream = s
		e.started = false
	}

	e.state.playing.Store(true)

	if !e.started {
		if err := e.stream.Start(); err != nil {
			e.state.playing.Store(false)
			_ = e.stream.Close()
			e.stream = nil
			return fmt.Errorf("starting output stream: %w", err)
		}
		e.started = true
	}

	e.logger.Debug("play", "position", e.positionOf(buf))

	return nil
}

// Pause stops producing sound but keeps the stream and position.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	if e.buf.Load() == nil {
		return ErrNoTrack
	}

	e.state.playing.Store(false)
	e.logger.Debug("pause")

	return nil
}

// Stop halts playback, rewinds to the start and closes the output stream.
// No callback is running once it returns.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	return e.stopLocked()
}

// stopLocked rewinds only after the stream is down: a callback still in
// flight would otherwise advance the position past the rewind.
func (e *Engine) stopLocked() error {
	e.state.playing.Store(false)

	if e.stream == nil {
		e.state.reset()
		return nil
	}

	err := errors.Join(e.stream.Stop(), e.stream.Close())
	e.stream = nil
	e.started = false
	e.state.reset()

	e.logger.Debug("stop")

	if err != nil {
		return fmt.Errorf("closing output stream: %w", err)
	}

	return nil
}

// Seek moves to seconds from the start, clamped to the track. NaN is
// ignored.
func (e *Engine) Seek(seconds float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	buf := e.buf.Load()
	if buf == nil {
		return ErrNoTrack
	}

	if math.IsNaN(seconds) {
		return nil
	}

	frame := max(0, min(seconds*float64(buf.SampleRate()), float64(buf.Frames())))
	e.state.setPos(frame)

	return nil
}

// SetVolume sets output gain, clamped to [0,1]. NaN is ignored.
func (e *Engine) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}

	e.state.setVolume(max(0, min(1, v)))
}

// SetSpeed sets the playback rate, 1 being normal. Negative, NaN and
// infinite values are rejected and the current speed kept.
func (e *Engine) SetSpeed(s float64) bool {
	if !(s >= 0) || math.IsInf(s, 1) {
		return false
	}

	e.state.setSpeed(s)

	return true
}

func (e *Engine) SetBandGain(band int, gainDB float64) error {
	return e.fx.SetBandGain(band, gainDB)
}

func (e *Engine) SetLimiter(p effects.LimiterParams) error {
	return e.fx.SetLimiter(p)
}

// Finished delivers a value each time playback reaches the end of the
// track. A signal nobody has received yet is not repeated.
func (e *Engine) Finished() <-chan struct{} {
	return e.finished
}

func (e *Engine) Playing() bool   { return e.state.playing.Load() }
func (e *Engine) Volume() float64 { return e.state.gain() }
func (e *Engine) Speed() float64  { return e.state.rate() }
func (e *Engine) Frame() float64  { return e.state.pos() }
func (e *Engine) Dropped() uint64 { return e.dropped.Load() }

// State reports the transport state. A track that played to its end stays
// Paused at the end until it is stopped, seeked or reloaded.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.stream == nil:
		return Stopped
	case e.state.playing.Load():
		return Playing
	default:
		return Paused
	}
}

// Position is the playback position as time into the track.
func (e *Engine) Position() time.Duration {
	buf := e.buf.Load()
	if buf == nil {
		return 0
	}

	return e.positionOf(buf)
}

func (e *Engine) positionOf(buf *audio.Buffer) time.Duration {
	return time.Duration(e.state.pos() / float64(buf.SampleRate()) * float64(time.Second))
}

// Duration is the length of the loaded track, or 0.
func (e *Engine) Duration() time.Duration {
	if buf := e.buf.Load(); buf != nil {
		return buf.Duration()
	}

	return 0
}

// SampleRate of the loaded track, or 0.
func (e *Engine) SampleRate() int {
	if buf := e.buf.Load(); buf != nil {
		return buf.SampleRate()
	}

	return 0
}

// Channels of the loaded track, or 0.
func (e *Engine) Channels() int {
	if buf := e.buf.Load(); buf != nil {
		return buf.Channels()
	}

	return 0
}

// Close stops playback, releases the track and the status reporter. The
// driver is left open.
func (e *Engine) Close() error {
	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()
		return nil
	}

	err := e.stopLocked()
	e.buf.Store(nil)
	e.closed = true
	close(e.quit)

	e.mu.Unlock()

	e.wg.Wait()

	return err
}
