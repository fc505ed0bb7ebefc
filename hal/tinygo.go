//go:build tinygo && (rp2040 || rp2350)

package hal

import (
	"machine"
)

// Board wiring. The control lines match the HMI's pin names; the panel
// sits on SPI0 and the touch controller is bit-banged on its own lines.
const (
	lcdSCK = machine.GP18
	lcdSDO = machine.GP19
	lcdSDI = machine.GP16
	lcdCS  = machine.GP17
	lcdDC  = machine.GP20
	lcdRST = machine.GP21

	touchCLK  = machine.GP10
	touchDIN  = machine.GP11
	touchDOUT = machine.GP12
	touchCS   = machine.GP13
	touchIRQ  = machine.GP14
)

var controlPins = []struct {
	name string
	pin  machine.Pin
}{
	{"GP2", machine.GP2},
	{"GP3", machine.GP3},
	{"GP6", machine.GP6},
	{"GP7", machine.GP7},
	{"GP8", machine.GP8},
	{"GP9", machine.GP9},
	{"GP15", machine.GP15},
}

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	gpio   GPIO
	fb     Framebuffer
	touch  Touch
	t      *tinyGoTime
	flash  Flash
}

// New returns the Pico HAL: ILI9341 panel, XPT2046 touch, encoder and
// button lines, and on-chip flash.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led := &pinLED{pin: ledPin}

	pins := []GPIOPin{newLEDPin("LED", led)}
	for _, cp := range controlPins {
		pins = append(pins, &machinePin{name: cp.name, pin: cp.pin})
	}

	var fb Framebuffer
	if lcd, err := newILI9341Framebuffer(); err == nil {
		fb = lcd
	} else {
		logger.WriteLineString("hal: display: " + err.Error())
	}

	// A nil *xpt2046Touch must not become a non-nil Touch.
	var touch Touch
	if t, err := newXPT2046Touch(); err == nil {
		touch = t
	} else {
		logger.WriteLineString("hal: touch: " + err.Error())
	}

	return &tinyGoHAL{
		logger: logger,
		led:    led,
		gpio:   newPinSet(pins),
		fb:     fb,
		touch:  touch,
		t:      newTinyGoTime(),
		flash:  newRP2Flash(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Touch() Touch     { return h.touch }
func (h *tinyGoHAL) Flash() Flash     { return h.flash }
func (h *tinyGoHAL) Time() Time       { return h.t }
