package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With("component", "coldstart").Info("attempt started",
		"expected_response", 4*time.Second,
		"note", "two words",
	)
	logger.Debug("hidden")

	got := buf.String()
	if !strings.Contains(got, "INFO  coldstart: attempt started") {
		t.Fatalf("console line = %q, want level, component and message", got)
	}
	if !strings.Contains(got, "expected_response=4s") || !strings.Contains(got, `note="two words"`) {
		t.Fatalf("console line = %q, want formatted fields", got)
	}
	if strings.Contains(got, "hidden") {
		t.Fatalf("debug record written at info level: %q", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Fatalf("want exactly one line, got %q", got)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("prefetch failed", "error", errors.New("boom"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("json output invalid: %v (%q)", err, buf.String())
	}
	if record["level"] != "warn" || record["msg"] != "prefetch failed" {
		t.Fatalf("record = %v, want warn prefetch failed", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("record = %v, want ts key", record)
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("New returned nil error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOpenFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "lantern.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString("ok\n"); err != nil {
		t.Fatalf("write log file: %v", err)
	}
}
