package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentStore, Output: &buf})

	l.Debug("expense inserted", FieldID, 7)

	out := buf.String()
	if !strings.Contains(out, "component=store") {
		t.Fatalf("missing component attr in %q", out)
	}
	if !strings.Contains(out, "id=7") {
		t.Fatalf("missing id attr in %q", out)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Component: ComponentApp, Output: &buf})

	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}

	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn not logged: %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentApp, Output: &buf}).WithComponent(ComponentConfig)

	l.ErrorContext(context.Background(), "load failed", FieldError, errors.New("boom"))
	out := buf.String()
	if !strings.Contains(out, "component=config") || strings.Contains(out, "component=app") {
		t.Fatalf("want only the config component in %q", out)
	}
	if strings.Count(out, "component=") != 1 {
		t.Fatalf("component tagged more than once: %q", out)
	}
	if !strings.Contains(out, "error=boom") {
		t.Fatalf("missing error attr in %q", out)
	}
}
