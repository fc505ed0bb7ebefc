//go:build tinygo && (rp2040 || rp2350)

package hal

import (
	"errors"
	"machine"
	"time"
)

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// machinePin exposes an RP2 GPIO with edge interrupts. Handlers run in
// interrupt context.
type machinePin struct {
	name string
	pin  machine.Pin
	mode GPIOMode
}

func (p *machinePin) Name() string { return p.name }

func (p *machinePin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown | GPIOCapEdge
}

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	cfg := machine.PinConfig{}
	switch mode {
	case GPIOModeInput:
		switch pull {
		case GPIOPullUp:
			cfg.Mode = machine.PinInputPullup
		case GPIOPullDown:
			cfg.Mode = machine.PinInputPulldown
		default:
			cfg.Mode = machine.PinInput
		}
	case GPIOModeOutput:
		cfg.Mode = machine.PinOutput
	default:
		return errors.New("gpio: pin " + p.name + ": invalid mode")
	}
	p.pin.Configure(cfg)
	p.mode = mode
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	if p.mode != GPIOModeOutput {
		return errors.New("gpio: pin " + p.name + ": not in output mode")
	}
	p.pin.Set(level)
	return nil
}

func (p *machinePin) SetInterrupt(edge GPIOEdge, fn GPIOEdgeHandler) error {
	var change machine.PinChange
	switch edge {
	case GPIOEdgeFalling:
		change = machine.PinFalling
	case GPIOEdgeRising:
		change = machine.PinRising
	case GPIOEdgeBoth:
		change = machine.PinToggle
	}
	if fn == nil || edge == GPIOEdgeNone {
		return p.pin.SetInterrupt(0, nil)
	}
	return p.pin.SetInterrupt(change, func(pin machine.Pin) {
		fn(pin.Get())
	})
}
