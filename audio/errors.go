// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrInvalidBuffer  = errors.New("invalid sample buffer")
	ErrInvalidRate    = errors.New("sample rate must be positive")
)
