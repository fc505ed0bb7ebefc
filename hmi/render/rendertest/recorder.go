// Package rendertest provides a render.Surface that records primitives
// instead of drawing them.
package rendertest

import (
	"strings"

	"usdr/hmi/render"
)

// Kind names a recorded primitive.
type Kind string

const (
	FillRect      Kind = "fill-rect"
	HLine         Kind = "hline"
	VLine         Kind = "vline"
	Pixel         Kind = "pixel"
	FillTriangle  Kind = "fill-triangle"
	RoundRect     Kind = "round-rect"
	FillRoundRect Kind = "fill-round-rect"
	Text          Kind = "text"
	BlitRow       Kind = "blit-row"
)

// Op is one recorded primitive. Fields not used by a kind are zero.
type Op struct {
	Kind       Kind
	X, Y, W, H int
	R          int
	Pts        [6]int
	Color      render.Color
	Text       string
	Style      render.TextStyle
	Row        []render.Color
}

// Recorder is a render.Surface of a fixed size that appends every call to
// Ops.
type Recorder struct {
	W, H int
	Ops  []Op
}

var _ render.Surface = (*Recorder)(nil)

// New returns a recorder the size of the panel.
func New() *Recorder { return &Recorder{W: 320, H: 240} }

func (r *Recorder) Width() int  { return r.W }
func (r *Recorder) Height() int { return r.H }

func (r *Recorder) add(op Op) { r.Ops = append(r.Ops, op) }

func (r *Recorder) FillRect(x, y, w, h int, c render.Color) {
	r.add(Op{Kind: FillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) HLine(x, y, w int, c render.Color) {
	r.add(Op{Kind: HLine, X: x, Y: y, W: w, Color: c})
}

func (r *Recorder) VLine(x, y, h int, c render.Color) {
	r.add(Op{Kind: VLine, X: x, Y: y, H: h, Color: c})
}

func (r *Recorder) Pixel(x, y int, c render.Color) {
	r.add(Op{Kind: Pixel, X: x, Y: y, Color: c})
}

func (r *Recorder) FillTriangle(x0, y0, x1, y1, x2, y2 int, c render.Color) {
	r.add(Op{Kind: FillTriangle, Pts: [6]int{x0, y0, x1, y1, x2, y2}, Color: c})
}

func (r *Recorder) RoundRect(x, y, w, h, rad int, c render.Color) {
	r.add(Op{Kind: RoundRect, X: x, Y: y, W: w, H: h, R: rad, Color: c})
}

func (r *Recorder) FillRoundRect(x, y, w, h, rad int, c render.Color) {
	r.add(Op{Kind: FillRoundRect, X: x, Y: y, W: w, H: h, R: rad, Color: c})
}

func (r *Recorder) Text(x, y int, s string, st render.TextStyle) {
	r.add(Op{Kind: Text, X: x, Y: y, Text: s, Style: st, Color: st.FG})
}

func (r *Recorder) BlitRow(x, y int, row []render.Color) {
	r.add(Op{Kind: BlitRow, X: x, Y: y, W: len(row), Row: append([]render.Color(nil), row...)})
}

// Reset forgets all recorded operations.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns how many operations of kind k were recorded.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns the operations of kind k in order.
func (r *Recorder) Filter(k Kind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the drawn strings in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == Text {
			out = append(out, op.Text)
		}
	}
	return out
}

// HasText reports whether any drawn string contains sub.
func (r *Recorder) HasText(sub string) bool {
	for _, s := range r.Texts() {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
