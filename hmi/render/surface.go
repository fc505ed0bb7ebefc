// Package render is the raster vocabulary of the operator display: a small
// set of primitives issued against a Surface, plus a framebuffer-backed
// implementation that draws text with tinyfont.
package render

// Color is a native RGB565 pixel.
type Color uint16

// Font selects one of the built-in typefaces.
type Font uint8

const (
	// FontSmall is the labels font (menu line, info panel, scale).
	FontSmall Font = iota
	// FontMedium is used for unit labels and the intro banner.
	FontMedium
	// FontLarge is the frequency readout.
	FontLarge
	numFonts
)

// TextStyle describes how a string is drawn. When Fill is set the text box
// (advance width × line height) is painted with BG first.
type TextStyle struct {
	Font Font
	FG   Color
	BG   Color
	Fill bool
}

// Surface is everything the display composer draws with. Coordinates are
// panel pixels; anything outside the surface is clipped.
//
// Text positions address the top-left corner of the text box.
type Surface interface {
	Width() int
	Height() int

	FillRect(x, y, w, h int, c Color)
	HLine(x, y, w int, c Color)
	VLine(x, y, h int, c Color)
	Pixel(x, y int, c Color)
	FillTriangle(x0, y0, x1, y1, x2, y2 int, c Color)
	RoundRect(x, y, w, h, r int, c Color)
	FillRoundRect(x, y, w, h, r int, c Color)
	Text(x, y int, s string, st TextStyle)

	// BlitRow copies a prepared row of pixels starting at (x, y).
	BlitRow(x, y int, row []Color)
}
