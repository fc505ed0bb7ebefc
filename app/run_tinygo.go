//go:build tinygo

package app

import (
	"time"

	"usdr/hal"
)

// Run starts the interface on the board and never returns. A loop error
// leaves its panic screen up.
func Run(h hal.HAL, cfg Config) {
	a, err := New(h, cfg, Options{})
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString(err.Error())
		}
		select {}
	}
	for {
		if err := a.Step(); err != nil {
			select {}
		}
		time.Sleep(time.Millisecond)
	}
}
