// SPDX-License-Identifier: EPL-2.0

package driver

import (
	"fmt"
	"strings"
)

// Status carries device conditions reported alongside a callback.
type Status uint8

const (
	// StatusUnderflow means the device ran out of data before this block.
	StatusUnderflow Status = 1 << iota
	// StatusOverflow means data was dropped by the device.
	StatusOverflow
	// StatusPriming means the block fills the device's buffer before output
	// starts.
	StatusPriming
	// StatusError means the device is in a failed state; the block is
	// discarded.
	StatusError
)

func (s Status) String() string {
	if s == 0 {
		return "ok"
	}

	var parts []string
	for _, f := range []struct {
		bit  Status
		name string
	}{
		{StatusUnderflow, "underflow"},
		{StatusOverflow, "overflow"},
		{StatusPriming, "priming"},
		{StatusError, "error"},
	} {
		if s&f.bit != 0 {
			parts = append(parts, f.name)
		}
	}

	return strings.Join(parts, "|")
}

// Callback fills out with BlockSize interleaved frames. It runs on the
// device's thread and must neither block nor allocate.
type Callback func(out []float32, status Status)

// StreamConfig describes the PCM format of an output stream.
type StreamConfig struct {
	SampleRate int
	Channels   int
	BlockSize  int // frames per callback
}

func (c StreamConfig) Validate() error {
	if c.SampleRate <= 0 || c.Channels <= 0 || c.BlockSize <= 0 {
		return fmt.Errorf("%w: %d Hz, %d channels, %d frames",
			ErrInvalidConfig, c.SampleRate, c.Channels, c.BlockSize)
	}

	return nil
}

// Stream is an open output stream.
//
// Stop must not return while a callback is running, and no callback may
// start after it returns. Close implies Stop.
type Stream interface {
	Start() error
	Stop() error
	Close() error
}

// Driver opens output streams on one audio backend.
type Driver interface {
	Name() string
	Open(cfg StreamConfig, cb Callback) (Stream, error)
	// Close releases backend resources. Streams must be closed first.
	Close() error
}
