package kernel

import "sync/atomic"

// Clock follows the HAL's 1ms tick stream. Tick values are free-running
// sequence numbers, so a consumer that falls behind catches up by reading
// the latest one rather than counting deliveries.
type Clock struct {
	ticks atomic.Uint64
}

// Sync drains pending ticks without blocking and returns how many were read.
func (c *Clock) Sync(ticks <-chan uint64) int {
	n := 0
	for {
		select {
		case seq := <-ticks:
			if seq > c.ticks.Load() {
				c.ticks.Store(seq)
			}
			n++
		default:
			return n
		}
	}
}

// Advance moves the clock forward by n ticks.
func (c *Clock) Advance(n uint64) { c.ticks.Add(n) }

// Ticks returns the current tick count (1ms per tick).
func (c *Clock) Ticks() uint64 { return c.ticks.Load() }

// Millis returns the tick count truncated to 32 bits. Comparisons must use
// wrap-safe subtraction.
func (c *Clock) Millis() uint32 { return uint32(c.ticks.Load()) }
