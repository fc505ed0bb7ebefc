//go:build tinygo && (rp2040 || rp2350)

package hal

import (
	"tinygo.org/x/drivers/xpt2046"
)

type xpt2046Touch struct {
	dev xpt2046.Device
}

// newXPT2046Touch takes a single conversion per read; the input sampler
// already median-filters a burst of reads.
func newXPT2046Touch() (*xpt2046Touch, error) {
	t := &xpt2046Touch{dev: xpt2046.New(touchCLK, touchCS, touchDIN, touchDOUT, touchIRQ)}
	if err := t.dev.Configure(&xpt2046.Config{Precision: 1}); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadRaw converts one conversion into landscape panel coordinates. A zero
// pressure reading means the pen lifted mid-conversion.
func (t *xpt2046Touch) ReadRaw() (uint16, uint16, bool) {
	if !t.dev.Touched() {
		return 0, 0, false
	}
	p := t.dev.ReadTouchPoint()
	if p.Z == 0 {
		return 0, 0, false
	}
	x, y := PanelCalibration.Map(p.X, p.Y)
	return x, y, true
}
