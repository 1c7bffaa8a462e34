// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"sync"

	"github.com/ik5/audplay/audio"
	"github.com/ik5/audplay/formats/aiff"
	"github.com/ik5/audplay/formats/flac"
	"github.com/ik5/audplay/formats/mp3"
	"github.com/ik5/audplay/formats/vorbis"
	"github.com/ik5/audplay/formats/wav"
)

// HeaderSize is how many leading bytes Detect looks at.
const HeaderSize = 12

// NewRegistry returns a registry with every bundled decoder registered
// under its usual file extensions.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("flac", flac.Decoder{})

	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *audio.Registry
)

// Default returns a shared registry built by NewRegistry on first use.
func Default() *audio.Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}

// Detect guesses a format key from the first bytes of a file. It returns ""
// when the header matches nothing it knows.
func Detect(header []byte) string {
	switch {
	case len(header) >= 12 && bytes.HasPrefix(header, []byte("RIFF")) &&
		(bytes.Equal(header[8:12], []byte("WAVE"))):
		return "wav"
	case len(header) >= 12 && bytes.HasPrefix(header, []byte("FORM")) &&
		(bytes.Equal(header[8:12], []byte("AIFF")) || bytes.Equal(header[8:12], []byte("AIFC"))):
		return "aiff"
	case bytes.HasPrefix(header, []byte("OggS")):
		return "ogg"
	case bytes.HasPrefix(header, []byte("fLaC")):
		return "flac"
	case bytes.HasPrefix(header, []byte("ID3")):
		return "mp3"
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// MPEG frame sync
		return "mp3"
	}

	return ""
}
