// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	ErrSourceNotFound    = errors.New("audio source not found")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrDecode            = errors.New("audio decode failed")
	ErrEmptyBuffer       = errors.New("audio contains no frames")
	ErrNoTrack           = errors.New("no track loaded")
	ErrClosed            = errors.New("engine closed")
	ErrNoDriver          = errors.New("no output driver configured")
)
