package waterfall

import (
	"usdr/hal"
	"usdr/hmi/render"
)

// Palette maps a scaled magnitude to a pixel colour.
type Palette [256]render.Color

// The two colormaps, built once.
var (
	// Jet runs blue, cyan, green, yellow, red.
	Jet = buildPalette(jet)
	// Fire runs black, purple, red, orange, yellow, white.
	Fire = buildPalette(fire)
)

func buildPalette(ramp func(t float32) (r, g, b uint8)) *Palette {
	var p Palette
	for i := range p {
		r, g, b := ramp(float32(i) / 255)
		p[i] = render.Color(hal.RGB565(r, g, b))
	}
	return &p
}

// lin maps t in [lo, lo+span) onto [from, from+scale), truncating.
func lin(t, lo, span, from, scale float32) uint8 {
	v := from + (t-lo)/span*scale
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func jet(t float32) (r, g, b uint8) {
	switch {
	case t < 0.25:
		return 0, lin(t, 0, 0.25, 0, 255), 255
	case t < 0.5:
		return 0, 255, lin(0.5-t, 0, 0.25, 0, 255)
	case t < 0.75:
		return lin(t, 0.5, 0.25, 0, 255), 255, 0
	default:
		return 255, lin(1-t, 0, 0.25, 0, 255), 0
	}
}

func fire(t float32) (r, g, b uint8) {
	switch {
	case t < 0.20:
		v := lin(t, 0, 0.20, 0, 128)
		return v, 0, v
	case t < 0.40:
		return lin(t, 0.20, 0.20, 128, 127), 0, lin(t, 0.20, 0.20, 128, -128)
	case t < 0.65:
		return 255, lin(t, 0.40, 0.25, 0, 128), 0
	case t < 0.85:
		return 255, lin(t, 0.65, 0.20, 128, 127), 0
	default:
		return 255, 255, lin(t, 0.85, 0.15, 0, 255)
	}
}
