// Package meter turns receive and transmit telemetry into bargraph levels
// and draws the segmented bargraphs.
package meter

import "usdr/hmi/radio"

// Segments is the number of blocks in a bargraph.
const Segments = 11

// sLevels are the envelope thresholds for S1..S9+20, measured at the
// audio path after the filters.
var sLevels = [Segments]int32{1, 2, 4, 9, 18, 35, 75, 150, 300, 400, 600}

// The attenuator setting is undone before the lookup:
// corrected = sample * attenMult >> attenShift.
var (
	attenMult  = [radio.NumAtten]int32{353, 136, 46, 1, 2}
	attenShift = [radio.NumAtten]uint8{4, 4, 4, 0, 0}
)

// SLevel returns the S-meter segment index for an envelope peak.
func SLevel(sample int32, a radio.Atten) int {
	if a >= radio.NumAtten {
		a = radio.Atten0
	}
	v := (sample * attenMult[a]) >> attenShift[a]

	i := Segments - 1
	for ; i > 0; i-- {
		if v > sLevels[i] {
			break
		}
	}
	return i
}

// powerADC are the forward power detector readings for 1..10 W.
var powerADC = [...]int{20, 40, 60, 80, 100, 120, 140, 160, 180, 200}

// MaxPower is the highest power step TXPower reports.
const MaxPower = len(powerADC)

// TXPower converts a forward power ADC reading into watts, 0..MaxPower.
func TXPower(adc int) int {
	for i, v := range powerADC {
		if adc < v {
			return i
		}
	}
	return MaxPower
}

// DefaultHold is the peak hold time in display ticks.
const DefaultHold = 6

// PeakHold keeps a peak on screen for Hold ticks unless a bigger value
// arrives. The zero value holds for DefaultHold ticks.
type PeakHold struct {
	Hold int

	peak int
	age  int
}

// Observe feeds the current value and reports whether it should be shown
// now: either it beats the held peak or the hold time ran out.
func (p *PeakHold) Observe(v int) bool {
	hold := p.Hold
	if hold <= 0 {
		hold = DefaultHold
	}

	p.age++
	if p.age > hold {
		p.age = 0
		p.peak = 0
		return true
	}
	if v > p.peak {
		p.peak = v
		p.age = 0
		return true
	}
	return false
}
