//go:build tinygo && bootdebug

package app

import (
	"usdr/hal"
	"usdr/hmi/render"
)

// bootScreen records the step and shows it on the panel, which stays up
// until the composer first draws.
func bootScreen(h hal.HAL, bt *bootTrace, step string) {
	line := bt.step(step)
	if h == nil || h.Display() == nil {
		return
	}
	d := render.NewFB(h.Display().Framebuffer())
	d.Clear(render.Black)
	st := render.TextStyle{Font: render.FontSmall, FG: render.White}
	d.Text(0, 4, "usdr boot", st)
	d.Text(0, 20, line, st)
	_ = d.Present()
}
