package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, LevelWarn)

	l.Errorf("e %d", 1)
	l.Warnf("w %d", 2)
	l.Infof("i %d", 3)
	l.Debugf("d %d", 4)

	out := buf.String()
	if !strings.Contains(out, "[ERROR] e 1") || !strings.Contains(out, "[WARN] w 2") {
		t.Errorf("output %q missing error/warn lines", out)
	}
	if strings.Contains(out, "i 3") || strings.Contains(out, "d 4") {
		t.Errorf("output %q contains suppressed levels", out)
	}
}

func TestFormatVerbsInMessage(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, LevelDebug)

	// A payload containing % verbs must pass through untouched.
	l.Warnf("dropping malformed frame: %v", "payload with %s and %d")

	if !strings.Contains(buf.String(), "payload with %s and %d") {
		t.Errorf("output %q mangled percent signs", buf.String())
	}
}

func TestNopDiscardsSafely(t *testing.T) {
	l := Nop()
	l.Errorf("goes nowhere %d", 1)
	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
