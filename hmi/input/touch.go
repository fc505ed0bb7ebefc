package input

import (
	"slices"

	"usdr/hal"
)

// MaxSamples is the number of raw reads taken per touch query.
const MaxSamples = 10

// Panel bounds; filtered coordinates outside them are false positives.
const (
	maxTouchX = 320
	maxTouchY = 240
)

// Point is a filtered touch position in panel coordinates.
type Point struct {
	X, Y int
}

// Median sorts samples in place and returns the element at len/2.
// It returns 0 for an empty slice.
func Median(samples []uint16) uint16 {
	if len(samples) == 0 {
		return 0
	}
	slices.Sort(samples)
	return samples[len(samples)/2]
}

// Sampler oversamples the touch panel and median-filters each axis.
type Sampler struct {
	xs, ys [MaxSamples]uint16
}

// Poll takes up to MaxSamples raw reads. It reports false when the panel
// is not pressed, no read succeeded, or the filtered point is off-panel.
func (s *Sampler) Poll(t hal.Touch) (Point, bool) {
	if t == nil {
		return Point{}, false
	}
	n := 0
	for i := 0; i < MaxSamples; i++ {
		x, y, ok := t.ReadRaw()
		if !ok {
			continue
		}
		s.xs[n], s.ys[n] = x, y
		n++
	}
	if n == 0 {
		return Point{}, false
	}

	x := Median(s.xs[:n])
	y := Median(s.ys[:n])
	if x > maxTouchX || y > maxTouchY {
		return Point{}, false
	}
	return Point{X: int(x), Y: int(y)}, true
}

// Cooldown blocks touch sampling for a number of ticks after a tap that
// must not repeat.
type Cooldown struct {
	n uint8
}

// Set starts a cooldown of n ticks; zero leaves any running one untouched.
func (c *Cooldown) Set(n uint8) {
	if n > 0 {
		c.n = n
	}
}

// Tick is called once per scheduler tick. It reports whether the panel may
// be sampled this tick, consuming one tick of cooldown otherwise.
func (c *Cooldown) Tick() bool {
	if c.n > 0 {
		c.n--
		return false
	}
	return true
}

// Remaining returns the ticks left.
func (c *Cooldown) Remaining() uint8 { return c.n }
