//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

// HostControlPins are the simulated input lines exposed by the host HAL.
// Names follow the RP2040 GPIO numbering used on the board.
var HostControlPins = []string{"GP2", "GP3", "GP6", "GP7", "GP8", "GP9", "GP15"}

// HostConfig tunes the host HAL.
type HostConfig struct {
	// FlashPath overrides the backing file of the simulated flash.
	FlashPath string
	// GPIO replaces the simulated control pins, e.g. with OpenPeriphGPIO.
	GPIO GPIO
	// NoTouch hides the touch panel.
	NoTouch bool
	// OnExit runs when the runner stops, while the flash is still open.
	OnExit func()
}

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	gpio   GPIO
	pins   map[string]*VirtualPin
	fb     *hostFramebuffer
	touch  *hostTouch
	t      *hostTime
	flash  *hostFlash
}

// New returns a host HAL implementation with default settings.
func New() HAL {
	return newHost(HostConfig{})
}

func newHost(cfg HostConfig) *hostHAL {
	logger := &hostLogger{w: os.Stdout}
	led := &hostLED{logger: logger}

	h := &hostHAL{
		logger: logger,
		led:    led,
		fb:     newHostFramebuffer(PanelWidth, PanelHeight),
		t:      newHostTime(),
		flash:  newHostFlash(cfg.FlashPath),
		pins:   make(map[string]*VirtualPin),
	}
	if !cfg.NoTouch {
		h.touch = &hostTouch{}
	}

	if cfg.GPIO != nil {
		h.gpio = cfg.GPIO
		return h
	}

	pins := []GPIOPin{newLEDPin("LED", led)}
	for _, name := range HostControlPins {
		p := NewVirtualPin(name, GPIOCapInput|GPIOCapPullUp|GPIOCapEdge)
		h.pins[name] = p
		pins = append(pins, p)
	}
	h.gpio = newPinSet(pins)
	return h
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) GPIO() GPIO       { return h.gpio }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Flash() Flash     { return h.flash }
func (h *hostHAL) Time() Time       { return h.t }

func (h *hostHAL) Touch() Touch {
	if h.touch == nil {
		return nil
	}
	return h.touch
}

// drive applies an external level to a simulated pin. It is a no-op when
// the pins come from real hardware.
func (h *hostHAL) drive(name string, level bool) {
	if p := h.pins[name]; p != nil {
		p.Drive(level)
	}
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.on {
		return
	}
	l.on = true
	l.logger.WriteLineString("led: tx on")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.on {
		return
	}
	l.on = false
	l.logger.WriteLineString("led: tx off")
}

// hostTouch mirrors the mouse as a touch panel.
type hostTouch struct {
	mu      sync.Mutex
	x, y    uint16
	pressed bool
}

func (t *hostTouch) ReadRaw() (uint16, uint16, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.x, t.y, t.pressed
}

func (t *hostTouch) set(x, y int, pressed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if x < 0 || y < 0 {
		pressed = false
		x, y = 0, 0
	}
	t.x = uint16(x)
	t.y = uint16(y)
	t.pressed = pressed
}
