// SPDX-License-Identifier: EPL-2.0

// Package audplay plays decoded audio through an output device with
// variable speed, a 10-band equalizer, a limiter and volume control.
//
// # Quick Start
//
//	p, err := audplay.New(audplay.Options{})
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	if err := p.LoadFile("song.flac"); err != nil {
//	    return err
//	}
//
//	p.SetSpeed(1.25)
//	p.SetVolume(0.8)
//	_ = p.SetBandGain(0, 6) // +6 dB at 32 Hz
//	_ = p.Play()
//
//	<-p.Finished()
//
// # Output Drivers
//
// Output goes through a driver picked by name:
//   - "oto" uses github.com/ebitengine/oto/v3 and is the default
//   - "portaudio" uses github.com/gordonklaus/portaudio, built with -tags portaudio
//   - "null" paces callbacks in real time and discards the sound
//
// # Formats
//
// WAV, AIFF, MP3, Ogg Vorbis and FLAC are decoded by the formats
// subpackages. LoadFile picks a decoder by extension and falls back to
// sniffing the file header.
//
// # Signal Path
//
// Each block is resampled from the track by linear interpolation at the
// current speed, run through the equalizer and limiter, then scaled by the
// volume. The engine holds the whole track in memory, so seeking is exact
// and free.
package audplay
