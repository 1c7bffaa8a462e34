// SPDX-License-Identifier: EPL-2.0

// Package effects implements the playback effects chain: a 10-band
// equalizer followed by a peak limiter.
//
// # Threading
//
// Parameters are published as immutable snapshots through atomic pointers,
// so SetGain and SetParams are safe while the audio thread is inside
// Process. Filter memory belongs to the audio thread; Configure replaces it
// and must only be called while no stream is running.
//
// # Equalizer
//
// Bands sit at 32 Hz to 16 kHz in octaves. Band 0 is a low shelf and band 9
// a high shelf (Q 0.707); the others are peaking filters with Q 1. A band at
// 0 dB, or with its center at or above Nyquist, is skipped entirely.
//
// # Limiter
//
// The limiter follows the loudest channel with a one-pole peak envelope and
// reduces every channel by the same amount:
//
//	gain dB = (threshold - level) * (1 - 1/ratio)   when level > threshold
package effects
