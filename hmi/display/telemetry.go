package display

import (
	"usdr/hmi/scope"
	"usdr/hmi/waterfall"
)

// Telemetry is one frame from the signal-processing side. The producer
// fills it in place through a kernel.Latch.
type Telemetry struct {
	// Envelope is the receive envelope peak since the previous frame.
	Envelope int32
	// ForwardADC is the transmit forward power detector reading.
	ForwardADC int

	FFT    [waterfall.Columns]uint8
	Traces scope.Traces
}
