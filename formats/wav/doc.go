// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE files.
//
// Decoding is done by github.com/go-audio/wav; this package adapts it to
// audio.Source. Integer PCM at 8, 16, 24 and 32 bits is supported, mono or
// multi-channel, at any sample rate. IEEE float and compressed WAV variants
// are rejected with ErrUnsupportedEncoding.
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	source, err := decoder.Decode(file)
//
// The decoder seeks between RIFF chunks. Readers that cannot seek are read
// into memory first.
package wav
