// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC audio through github.com/gopxl/beep/v2/flac.
//
// beep hands out stereo float64 pairs; the source narrows them to
// interleaved float32 and keeps a single channel for mono files. Files
// with more than two channels are rejected with ErrUnsupportedChannels.
// Close releases the underlying decoder.
package flac
