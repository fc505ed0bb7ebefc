package render

import (
	"errors"
	"fmt"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

// Metrics are the cell dimensions of a font.
type Metrics struct {
	// Advance is the width of one character cell ("0").
	Advance int
	// Height is the line height.
	Height int
	// Ascent is the baseline offset from the top of the line.
	Ascent int
}

var fontTable = [numFonts]tinyfont.Fonter{
	FontSmall:  &proggy.TinySZ8pt7b,
	FontMedium: &freemono.Regular9pt7b,
	FontLarge:  &freemono.Bold18pt7b,
}

var fontMetrics [numFonts]Metrics

func init() {
	for i, f := range fontTable {
		m, err := lineMetrics(f)
		if err != nil {
			panic(fmt.Sprintf("render: font %d: %v", i, err))
		}
		fontMetrics[i] = m
	}
}

// Fonter returns the tinyfont face behind f.
func (f Font) Fonter() tinyfont.Fonter {
	if f >= numFonts {
		f = FontSmall
	}
	return fontTable[f]
}

// Metrics returns the cell metrics of f.
func (f Font) Metrics() Metrics {
	if f >= numFonts {
		f = FontSmall
	}
	return fontMetrics[f]
}

// TextWidth returns the advance width of s in f.
func TextWidth(f Font, s string) int {
	_, w := tinyfont.LineWidth(f.Fonter(), s)
	return int(w)
}

// lineMetrics scans the printable ASCII glyphs for the vertical extent of
// the face.
func lineMetrics(f tinyfont.Fonter) (Metrics, error) {
	if f == nil {
		return Metrics{}, errors.New("nil font")
	}

	minY, maxY := 0, 0
	first := true
	for r := rune(0x20); r <= 0x7e; r++ {
		info := f.GetGlyph(r).Info()
		if info.Height == 0 {
			continue
		}
		top := int(info.YOffset)
		bottom := top + int(info.Height)
		if first {
			minY, maxY = top, bottom
			first = false
			continue
		}
		minY = min(minY, top)
		maxY = max(maxY, bottom)
	}
	if first {
		return Metrics{}, errors.New("no glyphs")
	}

	height := maxY - minY
	ascent := -minY
	if height <= 0 || ascent < 0 {
		return Metrics{}, fmt.Errorf("invalid metrics: height=%d ascent=%d", height, ascent)
	}

	_, adv := tinyfont.LineWidth(f, "0")
	if adv == 0 {
		return Metrics{}, errors.New("zero advance")
	}
	return Metrics{Advance: int(adv), Height: height, Ascent: ascent}, nil
}
