package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriters(false, &out, &errOut)

	logger.Infof("value %d", 42)
	logger.Warnf("Warning: using default for %s %v", "n", 7)
	logger.Debugf("not shown")

	if out.String() != "value 42\n" {
		t.Errorf("got stdout %q, want %q", out.String(), "value 42\n")
	}
	if errOut.String() != "Warning: using default for n 7\n" {
		t.Errorf("got stderr %q", errOut.String())
	}
}

func TestLogger_Debug(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriters(true, &out, &errOut)

	logger.Debugf("scanning %s", "argv")

	if !strings.HasSuffix(errOut.String(), "scanning argv\n") {
		t.Errorf("debug line missing from stderr, got %q", errOut.String())
	}
	if out.Len() != 0 {
		t.Errorf("debug output leaked to stdout: %q", out.String())
	}
	if !logger.IsDebug() {
		t.Error("IsDebug should be true")
	}
}
