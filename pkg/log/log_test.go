package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewDebug(&buf)
	l.Debugf("PC=%04X", 0x100)
	l.Warnf("title not terminated")

	out := buf.String()
	if !strings.Contains(out, "level=debug msg=PC=0100") {
		t.Errorf("expected debug line, got %q", out)
	}
	if !strings.Contains(out, "level=warning msg=title not terminated") {
		t.Errorf("expected warning line, got %q", out)
	}
}
