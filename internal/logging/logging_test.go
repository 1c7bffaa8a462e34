// SPDX-License-Identifier: EPL-2.0

package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"", false, true, true},
		{"WARN", false, false, true},
		{"error", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger, err := New(Options{Level: tt.level, Output: &buf})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			logger.Debug("debug-msg")
			logger.Info("info-msg")
			logger.Warn("warn-msg")

			out := buf.String()
			for msg, want := range map[string]bool{"debug-msg": tt.wantDebug, "info-msg": tt.wantInfo, "warn-msg": tt.wantWarn} {
				if got := strings.Contains(out, msg); got != want {
					t.Errorf("%s logged = %v, want %v\n%s", msg, got, want, out)
				}
			}
		})
	}
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("track loaded", "rate", 44100)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if entry["msg"] != "track loaded" {
		t.Errorf("msg = %v, want \"track loaded\"", entry["msg"])
	}

	if entry["rate"] != float64(44100) {
		t.Errorf("rate = %v, want 44100", entry["rate"])
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Level: "trace"}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("New(level trace) error = %v, want ErrInvalidOption", err)
	}

	if _, err := New(Options{Format: "xml"}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("New(format xml) error = %v, want ErrInvalidOption", err)
	}
}
