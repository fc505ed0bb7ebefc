package waterfall

import (
	"strconv"

	"usdr/hmi/radio"
	"usdr/hmi/render"
)

const (
	// SpanHz is the distance from the centre column to either edge.
	SpanHz = Columns / 2 * 500

	aboveScale = 12
	triangTop  = aboveScale + 6
)

var labelStyle = render.TextStyle{Font: render.FontSmall, FG: render.Green, BG: render.Background, Fill: true}

// DrawScale paints the frequency scale above the waterfall: a tick every
// 10 kHz, a wider one every 50 kHz, a green one with a kHz label every
// 100 kHz, 2 px per kHz, and the marker triangle for mode.
func (r *Renderer) DrawScale(s render.Surface, freq uint32, mode radio.Mode) {
	r.SetMode(mode)
	y := r.Top
	w := s.Width()
	m := r.marker
	lh := render.FontSmall.Metrics().Height

	s.FillRect(0, y-triangTop-lh, w, lh, render.Background)
	s.FillRect(0, y-triangTop, w, triangTop-aboveScale+1, render.Background)
	drawTriangle(s, y, mode)

	s.HLine(0, y-11, w, render.White)
	s.FillRect(0, y-10, w, 10, render.Background)
	s.FillRect(m.Lo, y-10, m.Hi-m.Lo+1, 10, render.Shadow)

	adv := render.FontSmall.Metrics().Advance
	lo := (int64(freq) - SpanHz) / 1000
	hi := (int64(freq) + SpanHz) / 1000
	for k, x := lo, 0; k < hi; k, x = k+1, x+2 {
		if k%10 == 0 {
			s.VLine(x, y-11, 5, render.White)
		}
		if k%50 == 0 {
			for dx := -1; dx <= 1; dx++ {
				s.VLine(x+dx, y-11, 7, render.White)
			}
		}
		if k%100 != 0 {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			s.VLine(x+dx, y-11, 10, render.Green)
		}

		label := strconv.FormatInt(k, 10)
		n := len(label)
		lx := x - 2*adv
		switch {
		case x < 2*adv:
			lx = 0
		case x+(n-2)*adv > w:
			lx = w - n*adv
		}
		s.Text(lx, y-triangTop-lh, label, labelStyle)
	}
}

func drawTriangle(s render.Surface, y int, mode radio.Mode) {
	const c = Columns / 2
	base, top := y-aboveScale, y-triangTop
	switch mode {
	case radio.ModeUSB:
		s.FillTriangle(c, base, c, top, c+markerWidth, base, render.Yellow)
	case radio.ModeLSB, radio.ModeCW:
		s.FillTriangle(c, base, c, top, c-markerWidth, base, render.Yellow)
	default:
		s.FillTriangle(c-markerWidth, base, c, top, c+markerWidth, base, render.Yellow)
	}
}
