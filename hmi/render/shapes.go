package render

type raster interface {
	FillRect(x, y, w, h int, c Color)
	HLine(x, y, w int, c Color)
	VLine(x, y, h int, c Color)
	Pixel(x, y int, c Color)
}

// fillTriangle scan-converts the triangle into horizontal spans, top to
// bottom, splitting at the middle vertex.
func fillTriangle(d raster, x0, y0, x1, y1, x2, y2 int, c Color) {
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	if y1 > y2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}

	if y0 == y2 {
		a := min(x0, x1, x2)
		b := max(x0, x1, x2)
		d.HLine(a, y0, b-a+1, c)
		return
	}

	dx01, dy01 := x1-x0, y1-y0
	dx02, dy02 := x2-x0, y2-y0
	dx12, dy12 := x2-x1, y2-y1

	last := y1 - 1
	if y1 == y2 {
		last = y1
	}

	sa, sb := 0, 0
	y := y0
	for ; y <= last; y++ {
		a := x0 + sa/dy01
		b := x0 + sb/dy02
		sa += dx01
		sb += dx02
		if a > b {
			a, b = b, a
		}
		d.HLine(a, y, b-a+1, c)
	}

	sa = dx12 * (y - y1)
	sb = dx02 * (y - y0)
	for ; y <= y2; y++ {
		a := x1 + sa/dy12
		b := x0 + sb/dy02
		sa += dx12
		sb += dx02
		if a > b {
			a, b = b, a
		}
		d.HLine(a, y, b-a+1, c)
	}
}

func cornerRadius(w, h, r int) int {
	return max(min(r, w/2, h/2), 0)
}

func roundRect(d raster, x, y, w, h, r int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r = cornerRadius(w, h, r)
	d.HLine(x+r, y, w-2*r, c)
	d.HLine(x+r, y+h-1, w-2*r, c)
	d.VLine(x, y+r, h-2*r, c)
	d.VLine(x+w-1, y+r, h-2*r, c)
	arc(d, x+r, y+r, r, 1, c)
	arc(d, x+w-r-1, y+r, r, 2, c)
	arc(d, x+w-r-1, y+h-r-1, r, 4, c)
	arc(d, x+r, y+h-r-1, r, 8, c)
}

func fillRoundRect(d raster, x, y, w, h, r int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	r = cornerRadius(w, h, r)
	d.FillRect(x+r, y, w-2*r, h, c)
	fillArc(d, x+w-r-1, y+r, r, 1, h-2*r-1, c)
	fillArc(d, x+r, y+r, r, 2, h-2*r-1, c)
}

// arc draws the quarter circles selected by corners (1 top-left, 2
// top-right, 4 bottom-right, 8 bottom-left) with the midpoint algorithm.
func arc(d raster, cx, cy, r int, corners uint8, c Color) {
	f := 1 - r
	ddx, ddy := 1, -2*r
	x, y := 0, r
	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx
		if corners&4 != 0 {
			d.Pixel(cx+x, cy+y, c)
			d.Pixel(cx+y, cy+x, c)
		}
		if corners&2 != 0 {
			d.Pixel(cx+x, cy-y, c)
			d.Pixel(cx+y, cy-x, c)
		}
		if corners&8 != 0 {
			d.Pixel(cx-y, cy+x, c)
			d.Pixel(cx-x, cy+y, c)
		}
		if corners&1 != 0 {
			d.Pixel(cx-y, cy-x, c)
			d.Pixel(cx-x, cy-y, c)
		}
	}
}

// fillArc fills the right (sides&1) or left (sides&2) half-discs of a
// rounded rectangle whose straight part is delta+1 pixels tall.
func fillArc(d raster, cx, cy, r int, sides uint8, delta int, c Color) {
	f := 1 - r
	ddx, ddy := 1, -2*r
	x, y := 0, r
	px, py := x, y
	delta++
	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx
		if x < y+1 {
			if sides&1 != 0 {
				d.VLine(cx+x, cy-y, 2*y+delta, c)
			}
			if sides&2 != 0 {
				d.VLine(cx-x, cy-y, 2*y+delta, c)
			}
		}
		if y != py {
			if sides&1 != 0 {
				d.VLine(cx+py, cy-px, 2*px+delta, c)
			}
			if sides&2 != 0 {
				d.VLine(cx-py, cy-px, 2*px+delta, c)
			}
			py = y
		}
		px = x
	}
}
