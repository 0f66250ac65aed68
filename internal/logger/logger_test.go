package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogger_VerboseGate(t *testing.T) {
	verbose := false
	var buf bytes.Buffer

	log := New("session", func() bool { return verbose })
	log.SetOutput(&buf)

	log.Debug("hidden")
	log.Info("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("Expected no output when not verbose, got %q", buf.String())
	}

	log.Warn("shown")
	if !strings.Contains(buf.String(), "WARN [session] shown") {
		t.Errorf("Expected warn line, got %q", buf.String())
	}

	verbose = true
	buf.Reset()
	log.Debug("visible", F("phase", "idle"), Error(errors.New("boom")))
	line := buf.String()
	if !strings.Contains(line, "DEBUG [session] visible [phase=idle error=boom]") {
		t.Errorf("Unexpected debug line %q", line)
	}
}

func TestLogger_WithComponentSharesOutput(t *testing.T) {
	var buf bytes.Buffer
	root := New("", nil)
	root.SetOutput(&buf)

	child := root.WithComponent("client")
	child.Error("request failed")
	root.Warn("root line")

	out := buf.String()
	if !strings.Contains(out, "[client] request failed") {
		t.Errorf("Expected child line, got %q", out)
	}
	if !strings.Contains(out, "[main] root line") {
		t.Errorf("Expected default component name, got %q", out)
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("discarded")
	if log.IsVerbose() {
		t.Error("Expected nop logger not to be verbose")
	}
}
