package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_LevelGating(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)

	l.Debug("debug message %d", 1)
	if buf.Len() != 0 {
		t.Errorf("expected Debug to be suppressed at LevelInfo, got %q", buf.String())
	}

	l.Info("info message")
	if !strings.Contains(buf.String(), "info message") {
		t.Errorf("expected Info to be written, got %q", buf.String())
	}
}

func TestLogger_DebugAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug)

	l.Debug("detail: %s", "value")
	if !strings.Contains(buf.String(), "detail: value") {
		t.Errorf("expected Debug to be written at LevelDebug, got %q", buf.String())
	}
}

func TestLogger_WarnAlwaysWrites(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Warn("something: %s", "bad")
	if !strings.Contains(buf.String(), "warning: something: bad") {
		t.Errorf("expected Warn to always write, got %q", buf.String())
	}
}

func TestNewFromVerbose(t *testing.T) {
	if l := NewFromVerbose(true); l.level != LevelDebug {
		t.Errorf("expected LevelDebug when verbose, got %v", l.level)
	}
	if l := NewFromVerbose(false); l.level != LevelInfo {
		t.Errorf("expected LevelInfo when not verbose, got %v", l.level)
	}
}
