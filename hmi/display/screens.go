package display

import (
	"strconv"

	"usdr/hmi/render"
	"usdr/hmi/scope"
)

var introLines = [...]struct {
	text string
	y    int
	fg   render.Color
}{
	{"16 Band SSB/AM/CW", 40, render.Yellow},
	{"HF Transceiver", 56, render.Yellow},
	{"Arjan te Marvelde", 110, render.SkyBlue},
	{"Klaus Fensterseifer", 126, render.SkyBlue},
}

// Intro paints the power-up screen with the build version.
func (c *Composer) Intro() {
	w := c.s.Width()
	c.s.FillRect(0, 0, w, c.s.Height(), render.Background)
	c.s.Text(20, 2, "uSDR Pico FFT", render.TextStyle{Font: render.FontLarge, FG: render.Yellow})
	c.s.RoundRect(35, 25, 250, 70, 15, render.Yellow)
	for _, l := range introLines {
		c.s.Text(centre(w, render.FontSmall, l.text), l.y, l.text, render.TextStyle{Font: render.FontSmall, FG: l.fg})
	}
	if c.opts.Version != "" {
		c.s.Text(centre(w, render.FontSmall, c.opts.Version), 74, c.opts.Version, render.TextStyle{Font: render.FontSmall, FG: render.Yellow})
	}
	c.Invalidate()
}

// Countdown shows n seconds left in the corner box, or erases the box.
func (c *Composer) Countdown(show bool, n int) {
	if !show {
		c.s.FillRoundRect(countX, countY, countW, countH, 10, render.Background)
		return
	}
	c.s.RoundRect(countX, countY, countW, countH, 10, render.Orange)
	s := strconv.Itoa(n)
	st := render.TextStyle{Font: render.FontMedium, FG: render.Orange, BG: render.Background, Fill: true}
	m := render.FontMedium.Metrics()
	// Clear two cells so a shorter number leaves no stale digit.
	c.s.FillRect(countX+countW/2-m.Advance, countY+(countH-m.Height)/2, 2*m.Advance, m.Height, render.Background)
	c.s.Text(countX+(countW-render.TextWidth(render.FontMedium, s))/2, countY+(countH-m.Height)/2, s, st)
}

var legend = [...]struct {
	text  string
	trace int
}{
	{"I+Q", scope.TraceI},
	{"MC", scope.TraceMic},
	{"A", scope.TraceEnvelope},
	{"PK", scope.TracePeak},
	{"GN", scope.TraceGain},
}

// Static clears the panel and paints the parts that never change: the
// trace legend, the frequency unit and, with a touch panel, the button
// help box. The next Compose redraws every field.
func (c *Composer) Static() {
	c.s.FillRect(0, 0, c.s.Width(), c.s.Height(), render.Background)

	x := scopeX
	adv := render.FontSmall.Metrics().Advance
	for _, l := range legend {
		c.s.Text(x, c.lay.legendY, l.text, render.TextStyle{Font: render.FontSmall, FG: scope.Colors[l.trace]})
		x += (len(l.text) + 1) * adv
	}

	unitY := freqY + c.lay.cellH - render.FontSmall.Metrics().Height
	c.s.Text(c.lay.unitX, unitY, "KHz", render.TextStyle{Font: render.FontSmall, FG: render.Green})

	if c.opts.Touch {
		c.drawHelp()
	}
	c.Invalidate()
}

// drawHelp outlines the touch buttons that stand in for the controls.
func (c *Composer) drawHelp() {
	st := render.TextStyle{Font: render.FontSmall, FG: render.LightGrey}
	c.s.RoundRect(helpX, helpY, helpW, helpH, 6, render.DarkGrey)
	c.s.HLine(helpX, 115, helpW, render.DarkGrey)
	c.s.HLine(helpX, 135, helpW, render.DarkGrey)
	c.s.VLine(helpX+helpW/2, 115, 160-115, render.DarkGrey)

	row := func(y int, s string) {
		c.s.Text(helpX+(helpW-render.TextWidth(render.FontSmall, s))/2, y, s, st)
	}
	row(92, "SUBMENU")
	row(120, "<    >")
	row(142, "-    +")
}

func centre(w int, f render.Font, s string) int {
	return max((w-render.TextWidth(f, s))/2, 0)
}
