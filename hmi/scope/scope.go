// Package scope draws the audio traces as a small triggered oscilloscope,
// or the I/Q pair as a vector scope.
package scope

import "usdr/hmi/render"

// Trace indices in a telemetry frame.
const (
	TraceI = iota
	TraceQ
	TraceMic
	TraceEnvelope
	TracePeak
	TraceGain
	NumTraces
)

const (
	// Cols is the plot width in pixels, one sample per column.
	Cols = 72
	// TraceLen leaves room to move the plot window to the trigger point.
	TraceLen = 2*Cols + 8

	// Max and Min bound the plotted sample values.
	Max = 25
	Min = -25

	// Height is the plot area height.
	Height = Max - Min + 3

	// SelectVector shows I against Q.
	SelectVector = 0
	// SelectAll shows every trace except I and Q.
	SelectAll = 6

	triggerRun = 5
	gridStep   = 5
)

// Traces is one capture of all monitored signals.
type Traces [NumTraces][TraceLen]int16

// Colors per trace, also used by the legend.
var Colors = [NumTraces]render.Color{
	TraceI:        render.Red,
	TraceQ:        render.Green,
	TraceMic:      render.Cyan,
	TraceEnvelope: render.Pink,
	TracePeak:     render.Yellow,
	TraceGain:     render.Magenta,
}

// drawOrder stacks the traces; later ones paint over earlier ones.
var drawOrder = [NumTraces]int{TraceI, TraceQ, TraceEnvelope, TraceMic, TracePeak, TraceGain}

// Visible reports whether trace is drawn under selector sel: 0 and 1 show
// I and Q (as vector and time plots), 2..5 show that single trace and 6
// shows everything but I and Q.
func Visible(trace, sel int) bool {
	if trace > TraceQ && trace != sel && sel < SelectAll {
		return false
	}
	if sel > 1 && trace <= TraceQ {
		return false
	}
	return true
}

// Trigger returns the sample offset where the plot starts: after the first
// run of positive I samples, at the next negative one.
func Trigger(tr *Traces) int {
	i := &tr[TraceI]
	x := 0
	for ; x < Cols; x++ {
		run := true
		for k := 0; k < triggerRun; k++ {
			if i[x+k] <= 0 {
				run = false
				break
			}
		}
		if run {
			break
		}
	}
	for ; x < Cols; x++ {
		if i[x] < 0 {
			break
		}
	}
	return x
}

// Scope is the plot area at (X, Y).
type Scope struct {
	X, Y int
}

// Draw clears the area, draws the grid and plots the traces selected by
// sel.
func (sc Scope) Draw(s render.Surface, tr *Traces, sel int) {
	s.FillRect(sc.X, sc.Y, Cols, Height, render.Navy)
	for y := sc.Y; y < sc.Y+Height; y += gridStep {
		for x := sc.X; x < sc.X+Cols; x += gridStep {
			s.Pixel(x, y, render.DarkGrey)
		}
	}

	pos := Trigger(tr)
	for _, v := range drawOrder {
		if Visible(v, sel) {
			sc.plot(s, tr, v, pos, sel)
		}
	}
}

func (sc Scope) plot(s render.Surface, tr *Traces, v, pos, sel int) {
	c := Colors[v]
	for x := 0; x < Cols; x++ {
		aud := int(tr[v][x+pos])
		switch {
		case aud < Min:
			s.Pixel(sc.X+x, sc.Y+Max-Min, c)
		case aud > Max:
			s.Pixel(sc.X+x, sc.Y, c)
		case sel != SelectVector:
			s.Pixel(sc.X+x, sc.Y+Max-aud, c)
		default:
			i, q := int(tr[TraceI][x]), int(tr[TraceQ][x])
			if abs(i) <= Max && abs(q) <= Max {
				s.Pixel(sc.X+Cols/2+i*3/2, sc.Y+Max+q, render.White)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
