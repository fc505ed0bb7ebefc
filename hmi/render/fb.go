package render

import (
	"image/color"

	"usdr/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// FB draws into an RGB565 hal.Framebuffer. It implements Surface and
// drivers.Displayer so tinyfont can render glyphs straight into the buffer.
//
// Rows touched since the last Present are reported to the framebuffer's
// DirtyTracker, if it has one, before presenting.
type FB struct {
	fb     hal.Framebuffer
	dirty  hal.DirtyTracker
	buf    []byte
	w, h   int
	stride int

	lo, hi int
}

var (
	_ Surface          = (*FB)(nil)
	_ drivers.Displayer = (*FB)(nil)
)

// NewFB wraps fb. A nil or non-RGB565 framebuffer yields a surface of size
// zero that ignores all drawing.
func NewFB(fb hal.Framebuffer) *FB {
	d := &FB{fb: fb, lo: 1, hi: 0}
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return d
	}
	d.buf = fb.Buffer()
	d.w = fb.Width()
	d.h = fb.Height()
	d.stride = fb.StrideBytes()
	if t, ok := fb.(hal.DirtyTracker); ok {
		d.dirty = t
	}
	return d
}

func (d *FB) Width() int  { return d.w }
func (d *FB) Height() int { return d.h }

func (d *FB) touch(y0, y1 int) {
	if d.lo > d.hi {
		d.lo, d.hi = y0, y1
		return
	}
	d.lo = min(d.lo, y0)
	d.hi = max(d.hi, y1)
}

// Present flushes the touched rows and hands the frame to the panel.
func (d *FB) Present() error {
	if d.fb == nil {
		return nil
	}
	if d.lo <= d.hi && d.dirty != nil {
		d.dirty.MarkDirty(d.lo, d.hi)
	}
	d.lo, d.hi = 1, 0
	return d.fb.Present()
}

// Clear paints the whole surface.
func (d *FB) Clear(c Color) { d.FillRect(0, 0, d.w, d.h, c) }

func (d *FB) put(x, y int, c Color) {
	off := y*d.stride + x*2
	if off < 0 || off+1 >= len(d.buf) {
		return
	}
	d.buf[off] = byte(c)
	d.buf[off+1] = byte(c >> 8)
}

func (d *FB) Pixel(x, y int, c Color) {
	if x < 0 || x >= d.w || y < 0 || y >= d.h {
		return
	}
	d.put(x, y, c)
	d.touch(y, y)
}

func (d *FB) FillRect(x, y, w, h int, c Color) {
	x0 := clamp(x, 0, d.w)
	y0 := clamp(y, 0, d.h)
	x1 := clamp(x+w, 0, d.w)
	y1 := clamp(y+h, 0, d.h)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	lo, hi := byte(c), byte(c>>8)
	for py := y0; py < y1; py++ {
		row := d.buf[py*d.stride+x0*2 : py*d.stride+x1*2]
		for i := 0; i < len(row); i += 2 {
			row[i] = lo
			row[i+1] = hi
		}
	}
	d.touch(y0, y1-1)
}

func (d *FB) HLine(x, y, w int, c Color) { d.FillRect(x, y, w, 1, c) }
func (d *FB) VLine(x, y, h int, c Color) { d.FillRect(x, y, 1, h, c) }

func (d *FB) BlitRow(x, y int, row []Color) {
	if y < 0 || y >= d.h {
		return
	}
	for i, c := range row {
		px := x + i
		if px < 0 {
			continue
		}
		if px >= d.w {
			break
		}
		d.put(px, y, c)
	}
	d.touch(y, y)
}

func (d *FB) FillTriangle(x0, y0, x1, y1, x2, y2 int, c Color) {
	fillTriangle(d, x0, y0, x1, y1, x2, y2, c)
}

func (d *FB) RoundRect(x, y, w, h, r int, c Color)     { roundRect(d, x, y, w, h, r, c) }
func (d *FB) FillRoundRect(x, y, w, h, r int, c Color) { fillRoundRect(d, x, y, w, h, r, c) }

func (d *FB) Text(x, y int, s string, st TextStyle) {
	m := st.Font.Metrics()
	if st.Fill {
		d.FillRect(x, y, TextWidth(st.Font, s), m.Height, st.BG)
	}
	tinyfont.WriteLine(d, st.Font.Fonter(), int16(x), int16(y+m.Ascent), s, rgba(st.FG))
}

// drivers.Displayer

func (d *FB) Size() (x, y int16) { return int16(d.w), int16(d.h) }

func (d *FB) SetPixel(x, y int16, c color.RGBA) {
	d.Pixel(int(x), int(y), Color(hal.RGB565(c.R, c.G, c.B)))
}

func (d *FB) Display() error { return d.Present() }

func (d *FB) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.FillRect(int(x), int(y), int(width), int(height), Color(hal.RGB565(c.R, c.G, c.B)))
	return nil
}

func (d *FB) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

func rgba(c Color) color.RGBA {
	r, g, b := hal.RGB888(uint16(c))
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
