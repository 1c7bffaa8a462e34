// SPDX-License-Identifier: EPL-2.0

// Package playback is the real-time playback engine.
//
// An Engine holds one decoded track in memory and plays it through a
// driver.Driver. Speed is continuously variable: every output frame is
// linearly interpolated from the two source frames around its fractional
// position, so there is no separate resampling pass.
//
// # States
//
//	Stopped --Play--> Playing --Pause--> Paused --Play--> Playing
//	any     --Stop--> Stopped (rewound, stream closed)
//	any     --Load--> Stopped (rewound, stream closed, new track)
//
// Reaching the end of the track clears Playing, leaves the position at the
// end and sends on Finished.
//
// # Audio thread
//
// The driver callback renders each block as
//
//	interpolate -> effects (equalizer, limiter) -> volume
//
// It never blocks, allocates or takes the engine's mutex. Position, speed,
// volume and the playing flag are separate atomics; the track itself is an
// atomic pointer that is only swapped while the stream is closed. Device
// status flags are queued to a goroutine that logs them. A block flagged
// driver.StatusError is played as silence and does not advance the
// position.
//
// # Loading
//
//	engine.LoadFile("song.flac")
//	engine.LoadBytes("", data) // format detected from the header
//	engine.LoadSource(src)
//	engine.LoadBuffer(buf)
//
// A failed load leaves the previous track loaded but stopped. Load errors
// wrap ErrSourceNotFound, ErrUnsupportedFormat, ErrDecode or ErrEmptyBuffer.
package playback
