package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Info("should be dropped")
	logger.Warn("should be kept", "key", "value")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Errorf("info line emitted at warn level: %q", out)
	}
	if !strings.Contains(out, "should be kept") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestNewWithWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info")

	logger.Info("hello", "request_id", "abc-123")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "hello" {
		t.Errorf("expected msg 'hello', got %v", record["msg"])
	}
	if record["request_id"] != "abc-123" {
		t.Errorf("expected request_id 'abc-123', got %v", record["request_id"])
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "verbose")

	logger.Debug("dropped")
	logger.Info("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Errorf("debug line emitted at fallback info level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("info line missing: %q", buf.String())
	}
}

func TestDefault(t *testing.T) {
	if Default() == nil {
		t.Fatal("expected non-nil default logger")
	}
}
