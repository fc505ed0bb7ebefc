package meter

import "usdr/hmi/render"

// Colour ramps indexed by segment position.
var (
	SMeterColors = [Segments]render.Color{
		render.Maroon, render.Red, render.Red, render.Orange,
		render.Yellow, render.Yellow, render.Yellow, render.GreenYellow,
		render.Green, render.Green, render.Emerald,
	}
	TXPowerColors = [Segments]render.Color{
		render.Maroon, render.Maroon, render.Maroon, render.Maroon,
		render.Red, render.Red, render.Red, render.Red,
		render.Magenta, render.Magenta, render.Magenta,
	}
)

// Bargraph draws a segmented level bar incrementally: only the segments
// between the previous and the new level are painted or erased.
type Bargraph struct {
	X, Y   int
	DX, DY int
	Space  int

	// Rising makes segment i i+2 pixels tall, bottom aligned, instead of
	// DY tall.
	Rising bool
	Colors [Segments]render.Color

	old int
}

// NewSMeter returns the receive signal bargraph at (x, y).
func NewSMeter(x, y int) *Bargraph {
	return &Bargraph{X: x, Y: y, DX: 10, DY: 8, Space: 2, Rising: true, Colors: SMeterColors}
}

// NewTXPower returns the transmit power bargraph at (x, y).
func NewTXPower(x, y int) *Bargraph {
	return &Bargraph{X: x, Y: y, DX: 10, DY: 8, Space: 2, Colors: TXPowerColors}
}

// Level returns the last drawn level.
func (b *Bargraph) Level() int { return b.old }

// Bounds returns the screen area the bargraph can occupy.
func (b *Bargraph) Bounds() (x, y, w, h int) {
	w = (b.DX+b.Space)*Segments - b.Space
	if b.Rising {
		return b.X, b.Y - (Segments - 1) + b.DY, w, Segments + 1
	}
	return b.X, b.Y, w, b.DY
}

func (b *Bargraph) segment(i int) (x, y, w, h int) {
	x = b.X + (b.DX+b.Space)*i
	if !b.Rising {
		return x, b.Y, b.DX, b.DY
	}
	if i == 0 {
		return x, b.Y - 1 + b.DY, b.DX, 3
	}
	return x, b.Y - i + b.DY, b.DX, i + 2
}

// Draw moves the bar to level, clamped to [0, Segments-1]. reset forgets
// the previous level, as after a receive/transmit switch, so the whole bar
// up to level is repainted.
func (b *Bargraph) Draw(s render.Surface, level int, reset bool) {
	level = min(max(level, 0), Segments-1)
	if reset {
		b.old = 0
	}

	if b.old == 0 {
		x, y, w, h := b.segment(0)
		s.FillRect(x, y, w, h, b.Colors[0])
	}

	switch {
	case level > b.old:
		for i := b.old + 1; i <= level; i++ {
			x, y, w, h := b.segment(i)
			s.FillRect(x, y, w, h, b.Colors[i])
		}
	case level < b.old:
		for i := level + 1; i <= b.old; i++ {
			x, y, w, h := b.segment(i)
			s.FillRect(x, y, w, h, render.Background)
		}
	}
	b.old = level
}
