// Package waterfall keeps the scrolling spectral history and renders it
// with a colormap, a tuning marker and a frequency scale.
package waterfall

import (
	"usdr/hmi/radio"
	"usdr/hmi/render"
)

const (
	// Lines is the number of history rows on screen.
	Lines = 48
	// Columns is the FFT line length, one bin per pixel.
	Columns = 320

	// Gain is the magnitude multiplier applied before the colormap.
	Gain = 25

	markerWidth = 8
)

// Buffer is a fixed ring of Lines magnitude lines. Row 0 is the oldest.
type Buffer struct {
	rows [Lines][Columns]uint8
	head int
}

// Push appends line, discarding the oldest row. Short lines are padded
// with zero, long ones truncated.
func (b *Buffer) Push(line []uint8) {
	row := &b.rows[b.head]
	n := copy(row[:], line)
	clear(row[n:])
	b.head = (b.head + 1) % Lines
}

// Row returns line i, 0 being the oldest and Lines-1 the newest. The slice
// aliases the buffer and is valid until the next Push.
func (b *Buffer) Row(i int) []uint8 {
	i = min(max(i, 0), Lines-1)
	return b.rows[(b.head+i)%Lines][:]
}

// Marker is the inclusive column range shaded around the tuned frequency.
type Marker struct {
	Lo, Hi int
}

// Contains reports whether column x lies in the marker.
func (m Marker) Contains(x int) bool { return x >= m.Lo && x <= m.Hi }

// MarkerSpan returns the passband marker for a mode: USB to the right of
// centre, LSB to the left, AM centred, CW slightly left.
func MarkerSpan(mode radio.Mode) Marker {
	const c = Columns / 2
	switch mode {
	case radio.ModeUSB:
		return Marker{c, c + markerWidth}
	case radio.ModeLSB:
		return Marker{c - markerWidth, c}
	case radio.ModeCW:
		return Marker{c - markerWidth/2, c}
	default:
		return Marker{c - markerWidth, c + markerWidth}
	}
}

// Magnitude scales a raw FFT bin for the colormap.
func Magnitude(v uint8) uint8 {
	return uint8(min(int(v)*Gain, 255))
}

// Renderer draws the buffer as Lines rows starting at Top. Each row is
// assembled in a line buffer and pushed with a single BlitRow.
type Renderer struct {
	Top int

	buf     Buffer
	palette *Palette
	marker  Marker
	line    [Columns]render.Color

	freq        uint32
	freqChanges uint32
}

// NewRenderer returns a renderer with the Jet palette and the USB marker.
func NewRenderer(top int) *Renderer {
	return &Renderer{Top: top, palette: Jet, marker: MarkerSpan(radio.ModeUSB)}
}

// SetPalette selects the colormap; nil restores Jet.
func (r *Renderer) SetPalette(p *Palette) {
	if p == nil {
		p = Jet
	}
	r.palette = p
}

// SetMode moves the marker for mode.
func (r *Renderer) SetMode(mode radio.Mode) { r.marker = MarkerSpan(mode) }

// Marker returns the current marker span.
func (r *Renderer) Marker() Marker { return r.marker }

// Push appends a new FFT line.
func (r *Renderer) Push(line []uint8) { r.buf.Push(line) }

// Buffer exposes the history.
func (r *Renderer) Buffer() *Buffer { return &r.buf }

// FreqChanges counts renders at a different frequency than the previous
// one. History rows keep the span they were captured at.
func (r *Renderer) FreqChanges() uint32 { return r.freqChanges }

// Pixel returns the colour of one bin.
func (r *Renderer) Pixel(v uint8, x int) render.Color {
	c := render.DarkBlue
	if m := Magnitude(v); m != 0 {
		c = r.palette[m]
	}
	if r.marker.Contains(x) {
		c |= render.LightGrey
	}
	return c
}

// Draw renders every row, oldest at Top and newest at the bottom.
func (r *Renderer) Draw(s render.Surface, freq uint32) {
	if r.freq != 0 && freq != r.freq {
		r.freqChanges++
	}
	r.freq = freq

	for i := 0; i < Lines; i++ {
		row := r.buf.Row(i)
		for x, v := range row {
			r.line[x] = r.Pixel(v, x)
		}
		s.BlitRow(0, r.Top+i, r.line[:])
	}
}
