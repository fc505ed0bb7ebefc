package display

import (
	"usdr/hmi/render"
	"usdr/hmi/scope"
)

// Fixed screen regions. The touch classifier in hmi/input uses the same
// areas for the help box, the trace scope, the mode badge and the
// waterfall.
const (
	topH     = 15
	powerX   = 200
	freqY    = 16
	freqEnd  = 220
	bandY    = 72
	infoX    = 0
	infoY    = 85
	infoW    = 160
	infoH    = 57
	infoLine = 15
	gainY    = 142
	gainH    = 15
	helpX    = 160
	helpY    = 82
	helpW    = 80
	helpH    = 77
	trxX     = 210
	trxY     = 55
	trxW     = 25
	trxH     = 16
	badgeX   = 250
	badgeY   = 48
	badgeW   = 62
	badgeH   = 24
	meterX   = 10
	meterY   = 56
	scopeX   = 244

	// WaterfallTop is the first waterfall row; the scale sits above it.
	WaterfallTop = 192

	countX = 260
	countY = 100
	countW = 50
	countH = 40
)

// layout holds the positions that depend on font metrics.
type layout struct {
	cellW, cellH int
	freqX        int
	cursorY      int
	unitX        int

	smallH  int
	labelY  int
	legendY int
	scopeY  int
}

func newLayout() layout {
	large := render.FontLarge.Metrics()
	small := render.FontSmall.Metrics()

	l := layout{
		cellW:  large.Advance,
		cellH:  large.Height,
		smallH: small.Height,
	}
	l.freqX = freqEnd - FreqCells*l.cellW
	l.cursorY = freqY + l.cellH + 1
	l.unitX = freqEnd + 4

	// Scale labels sit on the triangle band; the legend goes above them
	// and the scope above the legend.
	l.labelY = WaterfallTop - 18 - l.smallH
	l.legendY = l.labelY - l.smallH - 1
	l.scopeY = l.legendY - scope.Height - 1
	return l
}
