// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotFlacFile         = errors.New("not a valid FLAC stream")
	ErrUnsupportedChannels = errors.New("only mono and stereo FLAC are supported")
	ErrDecode              = errors.New("flac decode failed")
)
