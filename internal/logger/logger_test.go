package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, "wordpool", false)
	lg.Debug("hidden")
	lg.Info("loaded", "words", 3)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line logged at info level: %q", out)
	}
	if !strings.Contains(out, "loaded") || !strings.Contains(out, "words=3") {
		t.Fatalf("missing info line: %q", out)
	}
	if !strings.Contains(out, "wordpool") {
		t.Fatalf("missing prefix: %q", out)
	}

	buf.Reset()
	verbose := NewWithWriter(&buf, "", true)
	verbose.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("debug line missing at debug level: %q", buf.String())
	}
}
