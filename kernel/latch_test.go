package kernel

import "testing"

type frame struct {
	seq  int
	line [4]uint8
}

func TestLatchPublishWhileReadyIsRefused(t *testing.T) {
	var l Latch[frame]

	if !l.Publish(func(f *frame) { f.seq = 1 }) {
		t.Fatalf("Publish() = false on empty latch, want true")
	}
	called := false
	if l.Publish(func(f *frame) { called = true; f.seq = 2 }) {
		t.Fatalf("Publish() = true while ready, want false")
	}
	if called {
		t.Fatalf("fill called while ready")
	}
	if got := l.Skipped(); got != 1 {
		t.Fatalf("Skipped() = %d, want 1", got)
	}

	var got int
	if !l.Consume(func(f *frame) { got = f.seq }) {
		t.Fatalf("Consume() = false, want true")
	}
	if got != 1 {
		t.Fatalf("consumed seq = %d, want 1", got)
	}
	if l.Ready() {
		t.Fatalf("Ready() = true after Consume, want false")
	}
}

func TestLatchConsumeEmpty(t *testing.T) {
	var l Latch[frame]
	if l.Consume(func(*frame) { t.Fatalf("read called on empty latch") }) {
		t.Fatalf("Consume() = true on empty latch, want false")
	}
}

func TestLatchPublishAfterConsume(t *testing.T) {
	var l Latch[frame]
	l.Publish(func(f *frame) { f.line[0] = 7 })
	l.Consume(func(*frame) {})
	if !l.Publish(func(f *frame) { f.line[0] = 9 }) {
		t.Fatalf("Publish() after Consume = false, want true")
	}
	var v uint8
	l.Consume(func(f *frame) { v = f.line[0] })
	if v != 9 {
		t.Fatalf("line[0] = %d, want 9", v)
	}
}

func TestClockSyncFollowsLatestSeq(t *testing.T) {
	var c Clock
	ch := make(chan uint64, 8)
	ch <- 1
	ch <- 2
	ch <- 7 // ticks 3..6 were dropped by the producer

	if n := c.Sync(ch); n != 3 {
		t.Fatalf("Sync() = %d, want 3", n)
	}
	if got := c.Ticks(); got != 7 {
		t.Fatalf("Ticks() = %d, want 7", got)
	}
	if n := c.Sync(ch); n != 0 {
		t.Fatalf("Sync() on empty = %d, want 0", n)
	}

	c.Advance(3)
	if got := c.Millis(); got != 10 {
		t.Fatalf("Millis() = %d, want 10", got)
	}
}
