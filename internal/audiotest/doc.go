// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides sources, buffers and a hand-cranked output
// driver for tests.
package audiotest
