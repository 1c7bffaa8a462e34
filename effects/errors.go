// SPDX-License-Identifier: EPL-2.0

package effects

import "errors"

var (
	ErrBandOutOfRange = errors.New("equalizer band out of range")
	ErrInvalidLimiter = errors.New("invalid limiter parameters")
	ErrInvalidFormat  = errors.New("sample rate and channels must be positive")
)
