// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM data types shared by the player.
//
// # Source Interface
//
// Decoders produce audio as a stream through the Source interface:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// # Buffer
//
// The playback engine needs random access to the whole track, so a Source is
// drained into a Buffer before playing:
//
//	src, _ := decoder.Decode(file)
//	buf, err := audio.ReadAll(src)
//
// A Buffer carries its frame count, channel count and sample rate explicitly
// and is validated at construction; it is never modified afterwards.
//
// # Conversion
//
// Convert changes the sample rate of a Buffer with cubic interpolation and
// Downmix folds all channels into one:
//
//	out, err := audio.Convert(buf, 48000)
//	mono := audio.Downmix(out)
//
// # Format Registry
//
// The registry maps format keys (usually file extensions) to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get(".WAV")
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available. Other errors
// indicate problems with the source.
package audio
