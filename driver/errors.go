// SPDX-License-Identifier: EPL-2.0

package driver

import "errors"

var (
	ErrUnknownDriver  = errors.New("unknown audio driver")
	ErrInvalidConfig  = errors.New("invalid stream config")
	ErrFormatMismatch = errors.New("device already open with a different format")
	ErrStreamClosed   = errors.New("stream closed")
)
