package trace

import (
	"bytes"
	"strings"
	"testing"
)

func TestNopTracerDiscardsSpans(t *testing.T) {
	span := Begin(Nop, ScopePass, "sema", 0)
	if span.ID() != 0 {
		t.Fatalf("expected a no-op span from Nop, got id %d", span.ID())
	}
	span.End("")
}

func TestStreamTracerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase)

	module := Begin(tr, ScopeModule, "module:main", 0)
	module.End("")
	if buf.Len() != 0 {
		t.Fatalf("expected a ScopeModule span to be suppressed at LevelPhase, got %q", buf.String())
	}

	pass := Begin(tr, ScopePass, "sema", 0)
	pass.End("2 errors")
	out := buf.String()
	if !strings.Contains(out, "begin") || !strings.Contains(out, "end") {
		t.Fatalf("expected both begin and end lines, got %q", out)
	}
	if !strings.Contains(out, "2 errors") {
		t.Fatalf("expected the end event's detail to be written, got %q", out)
	}
}

func TestLevelOffStreamTracerIsNop(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelOff)
	if tr != Nop {
		t.Fatalf("expected a LevelOff StreamTracer to collapse to Nop")
	}
}

func TestParseLevelRoundTrips(t *testing.T) {
	for _, s := range []string{"off", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != s {
			t.Fatalf("ParseLevel(%q).String() = %q", s, lvl.String())
		}
	}
	if _, err := ParseLevel("bogus"); err == nil {
		t.Fatalf("expected an error for an invalid level string")
	}
}
