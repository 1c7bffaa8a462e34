// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio.
//
// This package uses github.com/jfreymuth/oggvorbis, which decodes straight
// to interleaved float32, so samples are passed through without scaling.
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("audio.ogg")
//	source, err := decoder.Decode(file)
//
// Channel count and sample rate come from the stream's identification
// header. Errors past the headers are wrapped in ErrDecode.
package vorbis
