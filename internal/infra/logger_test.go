package infra

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLoggerProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("production", &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("model", "gpt-image-1").Msg("generated")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "generated" {
		t.Fatalf("message = %v, want generated", entry["message"])
	}
	if entry["service"] != "cardgen" {
		t.Fatalf("service = %v, want cardgen", entry["service"])
	}
	if entry["model"] != "gpt-image-1" {
		t.Fatalf("model = %v, want gpt-image-1", entry["model"])
	}
}

func TestNewLoggerDevelopmentEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("development", &buf)

	logger.Debug().Msg("visible")
	if !bytes.Contains(buf.Bytes(), []byte("visible")) {
		t.Fatalf("debug message missing from output: %q", buf.String())
	}
}
