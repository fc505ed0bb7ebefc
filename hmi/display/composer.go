// Package display composes the operator screen. Every tick it compares the
// state against what is on the panel and redraws only the fields that
// changed; telemetry frames drive the bargraphs, waterfall and scope.
package display

import (
	"fmt"

	"usdr/hmi/menu"
	"usdr/hmi/meter"
	"usdr/hmi/radio"
	"usdr/hmi/render"
	"usdr/hmi/scope"
	"usdr/hmi/waterfall"
)

// Options configure the static parts of the screen.
type Options struct {
	// Touch shows the touch help box.
	Touch bool
	// Version is printed on the intro screen.
	Version string
}

// Snapshot is what the panel currently shows. The zero value means
// nothing has been drawn yet.
type Snapshot struct {
	Valid bool

	FreqHz  uint32
	Freq    string
	Step    int
	Top     string
	Power   int
	Band    int
	Label   string
	Mode    radio.Mode
	Info    [4]string
	Gain    int
	TX      bool
	Trace   int
	Palette menu.Palette
}

// Stats count drawing work since construction.
type Stats struct {
	Frames       uint64
	Fields       uint64
	Digits       uint64
	Telemetry    uint64
	WaterfallRow uint64
}

// Composer owns the screen layout and the previous-state snapshot.
type Composer struct {
	s    render.Surface
	opts Options
	lay  layout
	snap Snapshot

	wf      *waterfall.Renderer
	smeter  *meter.Bargraph
	txpower *meter.Bargraph
	peak    meter.PeakHold
	scope   scope.Scope

	stats Stats
}

// New returns a composer drawing on s.
func New(s render.Surface, opts Options) *Composer {
	lay := newLayout()
	return &Composer{
		s:       s,
		opts:    opts,
		lay:     lay,
		wf:      waterfall.NewRenderer(WaterfallTop),
		smeter:  meter.NewSMeter(meterX, meterY),
		txpower: meter.NewTXPower(meterX, meterY),
		scope:   scope.Scope{X: scopeX, Y: lay.scopeY},
	}
}

// Snapshot returns what was last drawn.
func (c *Composer) Snapshot() Snapshot { return c.snap }

// Stats returns the drawing counters.
func (c *Composer) Stats() Stats { return c.stats }

// Waterfall exposes the waterfall renderer.
func (c *Composer) Waterfall() *waterfall.Renderer { return c.wf }

// Invalidate forces a full redraw on the next Compose.
func (c *Composer) Invalidate() { c.snap = Snapshot{} }

var (
	topStyle   = render.TextStyle{Font: render.FontSmall, FG: render.Magenta, BG: render.Background, Fill: true}
	powerStyle = render.TextStyle{Font: render.FontSmall, FG: render.White, BG: render.Background, Fill: true}
	infoStyle  = render.TextStyle{Font: render.FontSmall, FG: render.Magenta, BG: render.DarkPurple, Fill: true}
	gainStyle  = render.TextStyle{Font: render.FontSmall, FG: render.Orange}
	badgeStyle = render.TextStyle{Font: render.FontMedium, FG: render.Black}
)

// Compose brings the screen in line with the menu state and the radio
// model and, when tel is not nil, renders a telemetry frame. It clears the
// state's TXChanged and TopDirty flags once drawn.
func (c *Composer) Compose(st *menu.State, m *radio.Model, tel *Telemetry) {
	c.stats.Frames++
	first := !c.snap.Valid
	p := m.Profile()
	freq := m.Frequency()
	tx := st.Transmitting()
	txChanged := first || st.TXChanged || tx != c.snap.TX

	c.wf.SetPalette(paletteOf(st.Palette))
	c.drawFreq(FreqText(freq), first)

	if first || freq != c.snap.FreqHz || p.Mode != c.snap.Mode {
		c.wf.DrawScale(c.s, freq, p.Mode)
		c.stats.Fields++
	}
	if step := m.StepCursor(); first || step != c.snap.Step {
		c.drawCursor(step, first)
	}
	if top := topText(st, m); first || st.TopDirty || top != c.snap.Top {
		c.s.FillRect(0, 0, powerX, topH, render.Background)
		c.s.Text(0, 2, top, topStyle)
		c.snap.Top = top
		c.stats.Fields++
	}
	if label := p.Label(); first || label != c.snap.Label {
		c.drawBand(p)
	}
	if first || p.Mode != c.snap.Mode {
		c.drawBadge(p.Mode)
	}
	if info := infoLines(p); first || info != c.snap.Info {
		c.drawInfo(info, first)
	}
	if gain := m.FFTGain(); first || gain != c.snap.Gain {
		c.drawGain(gain)
	}
	if txChanged {
		c.drawTRX(tx)
	}

	c.snap.Valid = true
	c.snap.FreqHz = freq
	c.snap.Band = m.Band()
	c.snap.Mode = p.Mode
	c.snap.TX = tx
	c.snap.Trace = st.Trace
	c.snap.Palette = st.Palette
	st.TXChanged = false
	st.TopDirty = false

	if tel != nil {
		c.drawTelemetry(tel, p, freq, tx, st.Trace)
	}
}

func paletteOf(p menu.Palette) *waterfall.Palette {
	if p == menu.PaletteFire {
		return waterfall.Fire
	}
	return waterfall.Jet
}

// drawFreq repaints only the cells whose character changed.
func (c *Composer) drawFreq(text string, first bool) {
	st := render.TextStyle{Font: render.FontLarge, FG: render.Green, BG: render.Background, Fill: true}
	prev := c.snap.Freq
	if first {
		prev = ""
	}
	for _, i := range DiffDigits(prev, text) {
		x := c.lay.freqX + i*c.lay.cellW
		c.s.Text(x, freqY, text[i:i+1], st)
		c.stats.Digits++
	}
	c.snap.Freq = text
}

func (c *Composer) drawCursor(step int, first bool) {
	w := c.lay.cellW * 9 / 10
	if !first {
		x := c.lay.freqX + cursorCell(c.snap.Step)*c.lay.cellW
		c.s.FillRect(x, c.lay.cursorY, w, 3, render.Background)
	}
	x := c.lay.freqX + cursorCell(step)*c.lay.cellW
	c.s.FillRect(x, c.lay.cursorY, w, 3, render.Blue)
	c.snap.Step = step
	c.stats.Fields++
}

func topText(st *menu.State, m *radio.Model) string {
	switch st.Menu {
	case menu.Mode:
		return "Set Mode: " + radio.Mode(st.Option).String()
	case menu.AGC:
		return "Set AGC: " + radio.AGC(st.Option).String()
	case menu.Atten:
		return "Set Pre: " + radio.Atten(st.Option).String()
	case menu.VOX:
		return "Set VOX: " + radio.VOX(st.Option).String()
	case menu.Band:
		return "Set Band"
	case menu.FFTGain:
		return fmt.Sprintf("Set FFT gain: %d", m.FFTGain())
	case menu.Trace:
		return "Select trace"
	}
	return ""
}

func (c *Composer) drawBand(p radio.Profile) {
	fg := render.Yellow
	if p.Amateur() {
		fg = render.Green
	}
	label := p.Label()
	c.s.FillRect(0, bandY, 240, c.lay.smallH, render.Background)
	c.s.Text(0, bandY, label, render.TextStyle{Font: render.FontSmall, FG: fg, BG: render.Background, Fill: true})
	c.snap.Label = label
	c.stats.Fields++
}

func (c *Composer) drawBadge(mode radio.Mode) {
	c.s.FillRect(badgeX, badgeY, badgeW, badgeH, render.Background)
	c.s.FillRoundRect(badgeX, badgeY, badgeW, badgeH, 6, render.Silver)
	name := mode.String()
	x := badgeX + (badgeW-render.TextWidth(render.FontMedium, name))/2
	y := badgeY + (badgeH-render.FontMedium.Metrics().Height)/2
	c.s.Text(x, y, name, badgeStyle)
	c.stats.Fields++
}

func infoLines(p radio.Profile) [4]string {
	return [4]string{
		fmt.Sprintf("%-20s", "BPF: "+p.Filter+"MHz"),
		fmt.Sprintf("%-20s", "AGC:    "+p.AGC.String()),
		fmt.Sprintf("%-20s", "ATTEN.: "+p.Atten.String()),
		fmt.Sprintf("%-20s", "VOX:    "+p.VOX.String()),
	}
}

func (c *Composer) drawInfo(info [4]string, first bool) {
	if first {
		c.s.FillRect(infoX, infoY, infoW, infoH, render.DarkPurple)
	}
	for i, line := range info {
		if !first && line == c.snap.Info[i] {
			continue
		}
		c.s.Text(infoX+15, infoY+5+i*infoLine, line, infoStyle)
	}
	c.snap.Info = info
	c.stats.Fields++
}

func (c *Composer) drawGain(gain int) {
	c.s.FillRect(0, gainY, infoW, gainH, render.DarkPurple)
	c.s.Text(15, gainY+3, fmt.Sprintf("FFTGAIN:%d", gain), gainStyle)
	c.snap.Gain = gain
	c.stats.Fields++
}

// drawTRX switches the indicator and starts the active bargraph afresh.
func (c *Composer) drawTRX(tx bool) {
	c.s.FillRect(trxX, trxY, trxW, trxH, render.Background)
	label, fg := "RX", render.Green
	if tx {
		label, fg = "TX", render.Red
	}
	c.s.Text(trxX+2, trxY+3, label, render.TextStyle{Font: render.FontSmall, FG: fg})

	x, y, w, h := c.smeter.Bounds()
	c.s.FillRect(x, y, w, h, render.Background)
	c.s.FillRect(powerX, 0, c.s.Width()-powerX, topH, render.Background)
	c.snap.Power = -1
	c.peak = meter.PeakHold{}
	if tx {
		c.txpower.Draw(c.s, 0, true)
	} else {
		c.smeter.Draw(c.s, 0, true)
	}
	c.stats.Fields++
}

func (c *Composer) drawTelemetry(tel *Telemetry, p radio.Profile, freq uint32, tx bool, trace int) {
	c.stats.Telemetry++
	if tx {
		pow := meter.TXPower(tel.ForwardADC)
		if c.peak.Observe(pow) {
			c.txpower.Draw(c.s, pow, false)
			if pow != c.snap.Power {
				c.s.Text(powerX, 2, fmt.Sprintf("PWR: %-2d", pow), powerStyle)
				c.snap.Power = pow
			}
		}
	} else {
		c.smeter.Draw(c.s, meter.SLevel(tel.Envelope, p.Atten), false)
		c.wf.Push(tel.FFT[:])
		c.wf.Draw(c.s, freq)
		c.stats.WaterfallRow += waterfall.Lines
	}
	c.scope.Draw(c.s, &tel.Traces, trace)
}
