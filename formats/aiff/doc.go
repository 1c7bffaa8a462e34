// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF (Audio Interchange File Format) files.
//
// This package uses github.com/go-audio/aiff to parse the file and adapts it
// to audio.Source. Signed PCM at 8, 16, 24 and 32 bits is supported, any
// channel count and sample rate. AIFF-C compressed files are not.
//
//	decoder := aiff.Decoder{}
//	file, _ := os.Open("audio.aif")
//	source, err := decoder.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF file
//	}
//
// AIFF is big-endian and stores its sample rate as an 80-bit float; the
// decoder handles both.
package aiff
