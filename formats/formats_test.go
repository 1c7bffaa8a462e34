// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"testing"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   string
	}{
		{"wav", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), "wav"},
		{"riff not wave", []byte("RIFF\x24\x00\x00\x00AVI LIST"), ""},
		{"aiff", []byte("FORM\x00\x00\x00\x2eAIFFCOMM"), "aiff"},
		{"aifc", []byte("FORM\x00\x00\x00\x2eAIFCFVER"), "aiff"},
		{"ogg", []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00"), "ogg"},
		{"flac", []byte("fLaC\x00\x00\x00\x22"), "flac"},
		{"mp3 with id3", []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), "mp3"},
		{"mp3 frame sync", []byte{0xFF, 0xFB, 0x90, 0x64}, "mp3"},
		{"short riff", []byte("RIFF"), ""},
		{"empty", nil, ""},
		{"text", []byte("hello world!"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Detect(tt.header); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	for _, key := range []string{"wav", ".WAV", "wave", "aif", "aiff", "mp3", "ogg", "oga", "flac"} {
		if _, ok := r.Get(key); !ok {
			t.Errorf("Get(%q) not found", key)
		}
	}

	if _, ok := r.Get("xm"); ok {
		t.Error("Get(\"xm\") found, want missing")
	}
}

func TestDetectedFormatsAreRegistered(t *testing.T) {
	t.Parallel()

	for _, f := range []string{"wav", "aiff", "ogg", "flac", "mp3"} {
		if _, ok := Default().Get(f); !ok {
			t.Errorf("Detect can return %q but Default() has no decoder for it", f)
		}
	}
}

func TestDefault_Shared(t *testing.T) {
	t.Parallel()

	if Default() != Default() {
		t.Error("Default() returned different registries")
	}
}
