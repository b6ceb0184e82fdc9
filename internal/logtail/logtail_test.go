package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "pantry.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v, want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	line := `{"level":"warn","ts":"2022-04-22T17:20:05.000Z","logger":"poller","msg":"refresh failed","error":"boom","failures":2}`

	e := Parse(line)
	if e.Raw != "" {
		t.Fatalf("Raw = %q, want empty", e.Raw)
	}
	want := time.Date(2022, 4, 22, 17, 20, 5, 0, time.UTC)
	if !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	if e.Level != "warn" || e.Logger != "poller" || e.Message != "refresh failed" {
		t.Fatalf("entry = %+v", e)
	}
	if e.Fields["error"] != "boom" || e.Fields["failures"] != "2" {
		t.Fatalf("Fields = %v", e.Fields)
	}
}

func TestParse_PlainLine(t *testing.T) {
	e := Parse("panic: something")
	if e.Raw != "panic: something" {
		t.Fatalf("Raw = %q", e.Raw)
	}
	if got := e.Format(); got != "panic: something" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestEntryFormat(t *testing.T) {
	e := Entry{
		Level:   "info",
		Logger:  "grocy",
		Message: "grocy request",
		Fields:  map[string]string{"status": "200", "path": "stock"},
	}
	want := "INFO  [grocy] grocy request path=stock status=200"
	if got := e.Format(); got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestParseLinesAndLevels(t *testing.T) {
	entries := ParseLines([]string{
		`{"level":"debug","msg":"a"}`,
		"",
		`{"level":"error","msg":"b"}`,
		"not json",
	})
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}

	tests := []struct {
		entry Entry
		min   string
		want  bool
	}{
		{entries[0], "info", false},
		{entries[0], "debug", true},
		{entries[1], "warn", true},
		{entries[2], "error", true},
	}
	for _, tc := range tests {
		if got := tc.entry.AtLeast(tc.min); got != tc.want {
			t.Errorf("AtLeast(%q) for %+v = %v, want %v", tc.min, tc.entry, got, tc.want)
		}
	}
}
