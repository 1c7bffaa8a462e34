// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio.
//
// This package uses github.com/hajimehoshi/go-mp3. The decoder always
// produces stereo at the file's own sample rate, so a mono file comes out
// with both channels equal.
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("audio.mp3")
//	source, err := decoder.Decode(file)
//	if errors.Is(err, mp3.ErrNotMP3File) {
//	    // no MP3 frames found
//	}
//
// Mid-stream decoding failures are reported from ReadSamples wrapped in
// ErrDecode. Encoding is not supported.
package mp3
