package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

func fixedLogger(level Level, buf *bytes.Buffer) *Logger {
	l := NewWithOutput(level, buf)
	l.core.now = func() time.Time {
		return time.Date(2024, 1, 1, 12, 30, 45, 123000000, time.UTC)
	}
	return l
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{" error ", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(LevelInfo, &buf)

	l.Info("sol %d", 4512)

	want := "12:30:45.123 [INFO] sol 4512\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(LevelWarn, &buf)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown too")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "[WARN]") || !strings.Contains(lines[1], "[ERROR]") {
		t.Errorf("unexpected lines: %q", lines)
	}

	if l.Enabled(LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	l.SetLevel(LevelDebug)
	if !l.Enabled(LevelDebug) {
		t.Error("debug should be enabled after SetLevel")
	}
}

func TestNamedSharesCore(t *testing.T) {
	var buf bytes.Buffer
	root := fixedLogger(LevelInfo, &buf)
	sched := root.Named("schedule").Named("cron")

	sched.Info("next sunrise")
	if !strings.Contains(buf.String(), "[INFO] schedule.cron: next sunrise") {
		t.Errorf("missing name prefix: %q", buf.String())
	}

	buf.Reset()
	root.SetLevel(LevelError)
	sched.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("named logger ignored parent level: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	if l.Enabled(LevelError) {
		t.Error("Discard logger should not be enabled at any level")
	}
}

func TestRotating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marstime.log")
	w := Rotating(path, 0)
	defer w.Close()

	lj, ok := w.(*lumberjack.Logger)
	if !ok {
		t.Fatalf("Rotating returned %T", w)
	}
	if lj.Filename != path || lj.MaxSize != 10 {
		t.Errorf("unexpected rotation settings: %+v", lj)
	}

	l := NewWithOutput(LevelInfo, w)
	l.Info("written")
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
