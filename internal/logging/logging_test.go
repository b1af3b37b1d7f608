package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/san-kum/cardsearch/internal/config"
)

func initTo(t *testing.T, level, format string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	if _, err := Init(config.LogConfig{Level: level, Format: format}, &buf); err != nil {
		t.Fatalf("Init(%s, %s) failed: %v", level, format, err)
	}
	return &buf
}

func TestNew_HasComponent(t *testing.T) {
	buf := initTo(t, "debug", "text")

	New("search").Info("hello")

	output := buf.String()
	if !strings.Contains(output, "component=search") {
		t.Errorf("expected component=search in output, got: %s", output)
	}
	if !strings.Contains(output, "hello") {
		t.Errorf("expected 'hello' in output, got: %s", output)
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := initTo(t, "info", "JSON")

	New("server").Info("json check")

	output := buf.String()
	if !strings.Contains(output, `"level":"INFO"`) {
		t.Errorf("expected JSON level field, got: %s", output)
	}
	if !strings.Contains(output, `"component":"server"`) {
		t.Errorf("expected JSON component field, got: %s", output)
	}
}

func TestInit_LevelGating(t *testing.T) {
	buf := initTo(t, "warn", "")

	logger := New("gate")
	logger.Info("should be suppressed")
	logger.Warn("should appear")

	output := buf.String()
	if strings.Contains(output, "should be suppressed") {
		t.Error("Info message should be suppressed at Warn level")
	}
	if !strings.Contains(output, "should appear") {
		t.Error("Warn message should appear at Warn level")
	}
}

func TestInit_RejectsBadConfig(t *testing.T) {
	tests := []config.LogConfig{
		{Level: "loud", Format: "text"},
		{Level: "info", Format: "xml"},
	}
	for _, cfg := range tests {
		if _, err := Init(cfg, nil); err == nil {
			t.Errorf("Init(%+v) should fail", cfg)
		}
	}
}

func TestDiscard(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not enable any level")
	}
}
