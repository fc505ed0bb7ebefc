package app

import (
	"fmt"
	"sync"
	"time"
)

// bootTrace times the start-up steps of New. The bootdebug beacon reads it
// from its own goroutine.
type bootTrace struct {
	now   func() time.Time
	start time.Time

	mu    sync.Mutex
	line  string
	steps int
	up    bool
}

func newBootTrace(now func() time.Time) *bootTrace {
	return &bootTrace{now: now, start: now(), line: "boot: start"}
}

func (b *bootTrace) elapsed() int64 { return b.now().Sub(b.start).Milliseconds() }

// step records the step now starting and returns its status line.
func (b *bootTrace) step(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.steps++
	b.line = fmt.Sprintf("boot: %s (step %d, +%dms)", name, b.steps, b.elapsed())
	return b.line
}

// done marks start-up complete and returns the summary line.
func (b *bootTrace) done() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.up = true
	b.line = fmt.Sprintf("boot: up after %d steps in %dms", b.steps, b.elapsed())
	return b.line
}

// status returns the latest line and whether start-up has finished.
func (b *bootTrace) status() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.line, b.up
}
