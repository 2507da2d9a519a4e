package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
	}
	for in, want := range cases {
		if got := parseLevel(in, slog.LevelInfo); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if got := parseLevel("", slog.LevelWarn); got != slog.LevelWarn {
		t.Errorf("expected fallback WARN for empty level, got %v", got)
	}
}

func TestSetupWriter_ErrorIncludesStack(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	SetupWriter(&buf, slog.LevelInfo)
	slog.Error("boom", "key", "value")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "boom" {
		t.Errorf("expected msg=boom, got %v", entry["msg"])
	}
	if _, ok := entry["stacktrace"]; !ok {
		t.Error("expected stacktrace attribute on ERROR record")
	}
}

func TestSetupWriter_FiltersBelowLevel(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	SetupWriter(&buf, slog.LevelWarn)
	slog.Info("quiet")

	if buf.Len() != 0 {
		t.Errorf("expected INFO to be filtered at WARN level, got %q", buf.String())
	}
}
