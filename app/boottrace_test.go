package app

import (
	"testing"
	"time"
)

func TestBootTraceSteps(t *testing.T) {
	now := time.Unix(0, 0)
	bt := newBootTrace(func() time.Time { return now })
	if line, up := bt.status(); line != "boot: start" || up {
		t.Fatalf("status() = %q, %v, want start and not up", line, up)
	}

	now = now.Add(3 * time.Millisecond)
	if got := bt.step("radio"); got != "boot: radio (step 1, +3ms)" {
		t.Fatalf("step(radio) = %q", got)
	}
	now = now.Add(9 * time.Millisecond)
	bt.step("controls")
	if line, up := bt.status(); line != "boot: controls (step 2, +12ms)" || up {
		t.Fatalf("status() = %q, %v", line, up)
	}

	now = now.Add(30 * time.Millisecond)
	if got := bt.done(); got != "boot: up after 2 steps in 42ms" {
		t.Fatalf("done() = %q", got)
	}
	if _, up := bt.status(); !up {
		t.Fatal("status() not up after done()")
	}
}
