// SPDX-License-Identifier: EPL-2.0

// Package formats bundles the decoders shipped with audplay.
//
// NewRegistry registers wav, aiff, mp3, vorbis and flac under their common
// extensions; Default shares one such registry across the process:
//
//	decoder, err := formats.Default().Get(filepath.Ext(path))
//
// When no name is available, Detect sniffs the leading bytes:
//
//	format := formats.Detect(data[:formats.HeaderSize])
package formats
