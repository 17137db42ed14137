package logger

import (
	"strings"
	"testing"

	"splitkb/firmware/kernel"
)

type captureLog struct {
	lines []string
}

func (c *captureLog) WriteLineString(s string) { c.lines = append(c.lines, s) }
func (c *captureLog) WriteLineBytes(b []byte)  { c.lines = append(c.lines, string(b)) }

func TestLogWritesThroughBeforeRegister(t *testing.T) {
	out := &captureLog{}
	l := New(out)
	l.Log("boot: hello")
	if len(out.lines) != 1 || out.lines[0] != "boot: hello" {
		t.Fatalf("lines = %q, want [boot: hello]", out.lines)
	}
}

func TestLogQueuesUntilDrainRuns(t *testing.T) {
	out := &captureLog{}
	l := New(out)
	k := kernel.New()
	if _, err := l.Register(k, 0); err != nil {
		t.Fatalf("Register: %v", err)
	}
	l.Logf("scan: %d events", 3)
	l.Log("role: primary")
	if len(out.lines) != 0 {
		t.Fatalf("lines written before drain: %q", out.lines)
	}
	k.RunPending()
	want := []string{"scan: 3 events", "role: primary"}
	if strings.Join(out.lines, "|") != strings.Join(want, "|") {
		t.Fatalf("lines = %q, want %q", out.lines, want)
	}
}

func TestLogDropsWhenFull(t *testing.T) {
	out := &captureLog{}
	l := New(out)
	k := kernel.New()
	if _, err := l.Register(k, 0); err != nil {
		t.Fatalf("Register: %v", err)
	}
	for i := 0; i < kernel.QueueSlots; i++ {
		if !l.Log("x") {
			t.Fatalf("Log(%d) = false", i)
		}
	}
	if l.Log("overflow") {
		t.Fatalf("Log() on full queue = true")
	}
	k.RunPending()
	if len(out.lines) != kernel.QueueSlots+1 {
		t.Fatalf("lines = %d, want %d", len(out.lines), kernel.QueueSlots+1)
	}
	if last := out.lines[len(out.lines)-1]; last != "logger: dropped 1 lines" {
		t.Fatalf("last line = %q", last)
	}
}

func TestLogTruncatesLongLines(t *testing.T) {
	out := &captureLog{}
	l := New(out)
	k := kernel.New()
	l.Register(k, 0)
	l.Log(strings.Repeat("a", 2*MaxLineBytes))
	l.Flush()
	if len(out.lines) != 1 || len(out.lines[0]) != MaxLineBytes {
		t.Fatalf("lines = %q, want one line of %d bytes", out.lines, MaxLineBytes)
	}
}
