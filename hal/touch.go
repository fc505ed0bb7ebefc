package hal

// TouchCalibration holds the raw ADC extents of a resistive panel, measured
// at its corners.
type TouchCalibration struct {
	MinX, MaxX uint32
	MinY, MaxY uint32
}

// PanelCalibration is the fitted XPT2046 panel.
var PanelCalibration = TouchCalibration{MinX: 379, MaxX: 3519, MinY: 197, MaxY: 3591}

// Map converts a raw conversion into landscape panel coordinates, clamping
// readings outside the calibrated extents to the panel edge.
func (c TouchCalibration) Map(rawX, rawY int) (x, y uint16) {
	return scaleTouch(rawX, c.MinX, c.MaxX, PanelWidth), scaleTouch(rawY, c.MinY, c.MaxY, PanelHeight)
}

func scaleTouch(raw int, lo, hi uint32, span int) uint16 {
	if hi <= lo {
		return 0
	}
	v := min(max(uint32(max(raw, 0)), lo), hi)
	return uint16((v - lo) * uint32(span-1) / (hi - lo))
}
