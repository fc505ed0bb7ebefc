//go:build tinygo && bootdebug

package app

import (
	"machine"
	"time"

	"usdr/hal"
)

// bootDiagStart repeats the running start-up step on the UART and USB CDC
// so a hang in New can be located. It goes quiet once the trace is done.
func bootDiagStart(h hal.HAL, bt *bootTrace) {
	if h == nil {
		return
	}
	l := h.Logger()
	emit := func(line string) {
		if l != nil {
			l.WriteLineString(line)
		}
		if usb := machine.USBCDC; usb != nil {
			_, _ = usb.Write([]byte(line + "\r\n"))
		}
	}

	go func() {
		for {
			line, up := bt.status()
			emit("bootdiag: " + line)
			if up {
				return
			}
			time.Sleep(250 * time.Millisecond)
		}
	}()
}
