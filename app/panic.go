package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"usdr/hal"
	"usdr/hmi/render"
)

// showPanic logs a recovered loop panic and paints it over the display. The
// returned error stops the loop.
func showPanic(h hal.HAL, v any) error {
	lines := []string{
		"usdr panic:",
		fmt.Sprintf("panic: %v", v),
	}
	if stack := debug.Stack(); len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line != "" {
				lines = append(lines, strings.TrimSpace(line))
			}
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if l := h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	if d := h.Display(); d != nil {
		drawPanic(render.NewFB(d.Framebuffer()), lines)
	}
	return fmt.Errorf("app: panic: %v", v)
}

func drawPanic(d *render.FB, lines []string) {
	if d.Width() == 0 {
		return
	}
	d.Clear(render.White)

	st := render.TextStyle{Font: render.FontSmall, FG: render.Black}
	m := st.Font.Metrics()
	cols := max(d.Width()/max(m.Advance, 1), 1)

	y := 0
out:
	for _, line := range lines {
		for len(line) > 0 {
			if y+m.Height > d.Height() {
				break out
			}
			chunk, rest := takeRunes(line, cols)
			d.Text(0, y, chunk, st)
			y += m.Height
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = d.Present()
}

// takeRunes splits s after n runes.
func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
