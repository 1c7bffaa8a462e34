// SPDX-License-Identifier: EPL-2.0

// Package driver abstracts the audio output device.
//
// A Driver opens a Stream for a given StreamConfig and calls back for one
// block of BlockSize frames at a time, at the device's pace. Backends
// register themselves by name:
//
//	d, err := driver.New("oto", logger)
//	s, err := d.Open(driver.StreamConfig{SampleRate: 44100, Channels: 2, BlockSize: 2048}, fill)
//	s.Start()
//	...
//	s.Close()
//
// # Backends
//
//   - "oto": github.com/ebitengine/oto/v3. oto allows one device context per
//     process, fixed to the first stream's format; opening another format
//     fails with ErrFormatMismatch.
//   - "null": no device; a ticker runs the callback in real time and the
//     output is discarded.
//   - "portaudio": github.com/gordonklaus/portaudio, compiled only with the
//     portaudio build tag since it needs the C library.
//
// # Stop
//
// Every backend guarantees that once Stream.Stop returns, no callback is
// running and none will start until the next Start.
package driver
