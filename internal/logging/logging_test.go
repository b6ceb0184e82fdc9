package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONLinesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "pantry.log")

	logger, closeFn, err := New(Options{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("grocy request")
	logger.Named("poller").Warn("refresh failed")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2:\n%s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if entry[LevelKey] != "warn" || entry[MessageKey] != "refresh failed" || entry[NameKey] != "poller" {
		t.Fatalf("entry = %v", entry)
	}
	if _, ok := entry[TimeKey]; !ok {
		t.Fatalf("entry has no %q key: %v", TimeKey, entry)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pantry.log")

	logger, closeFn, err := New(Options{File: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Fatalf("log = %q, want only the info entry", data)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatalf("New returned nil error, want error")
	}
}

func TestNew_ConsoleWithoutFile(t *testing.T) {
	logger, closeFn, err := New(Options{Level: "warn", Development: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closeFn()
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug enabled at warn level")
	}
}
