package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		hasError bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"ERROR", LevelError, false},
		{"invalid", LevelInfo, true},
		{"", LevelInfo, true},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			level, err := ParseLevel(test.input)
			if test.hasError && err == nil {
				t.Error("expected error, got nil")
			}
			if !test.hasError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !test.hasError && level != test.expected {
				t.Errorf("expected %v, got %v", test.expected, level)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	for _, level := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		parsed, err := ParseLevel(LevelString(level))
		if err != nil || parsed != level {
			t.Errorf("round trip failed for %v", level)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("expected json, got %v %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatText {
		t.Errorf("expected text default, got %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = FormatJSON
	cfg.Writer = &buf

	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Info("ring drawn", slog.Int("ring", 1))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON log: %v", err)
	}
	if entry["msg"] != "ring drawn" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
	if entry["component"] != "progressring" {
		t.Errorf("unexpected component %v", entry["component"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = LevelWarn
	cfg.Writer = &buf

	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Writer = &buf
	cfg.Component = ""

	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.WithComponent("progressbar").Info("hello")

	if !strings.Contains(buf.String(), "component=progressbar") {
		t.Errorf("missing component: %s", buf.String())
	}
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rings.log")
	cfg, err := FromSettings("debug", "text", "file", path)
	if err != nil {
		t.Fatalf("FromSettings failed: %v", err)
	}

	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Debug("to file")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestFileOutputRequiresPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output = "file"
	if _, err := New(cfg); err == nil {
		t.Error("expected error without file path")
	}
}

func TestFromSettingsErrors(t *testing.T) {
	if _, err := FromSettings("loud", "text", "stderr", ""); err == nil {
		t.Error("expected level error")
	}
	if _, err := FromSettings("info", "yaml", "stderr", ""); err == nil {
		t.Error("expected format error")
	}
}

func TestDefaultFollowsSetDefault(t *testing.T) {
	if Default() == nil || Default().Logger == nil {
		t.Fatal("expected a usable default logger")
	}

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = LevelDebug
	cfg.Writer = &buf
	l, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	SetDefault(l)

	if Default() != l {
		t.Error("Default did not return the installed logger")
	}
	if LevelString(Default().Level()) != "debug" {
		t.Errorf("expected debug level, got %s", LevelString(Default().Level()))
	}
	slog.Info("through slog")
	if !strings.Contains(buf.String(), "through slog") {
		t.Errorf("slog default not redirected: %q", buf.String())
	}
}
