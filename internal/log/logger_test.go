package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewRoundEvent(1))
	l.Log(NewDrawEvent(1, "Phase 2", "red sun"))
	l.Log(NewDrawEvent(1, "Phase 2", "blue key"))

	evs := l.Events()
	if len(evs) != 3 {
		t.Fatalf("got %d events, want 3", len(evs))
	}
	for i, e := range evs {
		if e.Seq != i+1 {
			t.Errorf("event %d has seq %d", i, e.Seq)
		}
	}
	if n := len(l.EventsOfType(EventDraw)); n != 2 {
		t.Errorf("draw events = %d, want 2", n)
	}
	if l.LastEvent().Card != "blue key" {
		t.Errorf("last event = %+v", l.LastEvent())
	}
}

func TestMemoryLoggerEmpty(t *testing.T) {
	l := NewMemoryLogger()
	if e := l.LastEvent(); e != (GameEvent{}) {
		t.Errorf("LastEvent() on empty logger = %+v", e)
	}
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewRoundEvent(3))
	l.Log(NewWinEvent(3, "Phase 2"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "R3") {
		t.Errorf("line = %q, want round prefix", lines[0])
	}
	if len(l.Events()) != 2 {
		t.Errorf("TextLogger kept %d events", len(l.Events()))
	}
}

func TestNopLogger(t *testing.T) {
	var l EventLogger = NopLogger{}
	l.Log(NewRoundEvent(1))
	if l.Events() != nil {
		t.Error("NopLogger kept events")
	}
}

func TestFormatAll(t *testing.T) {
	out := FormatAll([]GameEvent{NewRoundEvent(1), NewRoundEvent(2)})
	if strings.Count(out, "\n") != 2 {
		t.Errorf("FormatAll() = %q", out)
	}
}
