package hal

import (
	"fmt"
	"sync"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
	GPIOCapEdge
)

// GPIOEdge selects which transitions raise an interrupt.
type GPIOEdge uint8

const (
	GPIOEdgeNone    GPIOEdge = 0
	GPIOEdgeFalling GPIOEdge = 1 << 0
	GPIOEdgeRising  GPIOEdge = 1 << 1
	GPIOEdgeBoth             = GPIOEdgeFalling | GPIOEdgeRising
)

// GPIOEdgeHandler runs in interrupt context with the level after the edge.
// It must not block.
type GPIOEdgeHandler func(level bool)

// GPIO provides access to general-purpose IO pins.
//
// Implementations may return nil if GPIO is unsupported.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
	ByName(name string) GPIOPin
}

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
	SetInterrupt(edge GPIOEdge, fn GPIOEdgeHandler) error
}

type nullGPIO struct{}

func (nullGPIO) PinCount() int              { return 0 }
func (nullGPIO) Pin(id int) GPIOPin         { return nil }
func (nullGPIO) ByName(name string) GPIOPin { return nil }

type pinSet struct {
	pins []GPIOPin
}

// NewPinSet groups pins into a GPIO that resolves them by position or name.
func NewPinSet(pins ...GPIOPin) GPIO { return newPinSet(pins) }

func newPinSet(pins []GPIOPin) GPIO {
	if len(pins) == 0 {
		return nullGPIO{}
	}
	return &pinSet{pins: pins}
}

func (g *pinSet) PinCount() int {
	if g == nil {
		return 0
	}
	return len(g.pins)
}

func (g *pinSet) Pin(id int) GPIOPin {
	if g == nil || id < 0 || id >= len(g.pins) {
		return nil
	}
	return g.pins[id]
}

func (g *pinSet) ByName(name string) GPIOPin {
	if g == nil {
		return nil
	}
	for _, p := range g.pins {
		if p != nil && p.Name() == name {
			return p
		}
	}
	return nil
}

// VirtualPin is a simulated pin. Inputs are driven from outside through
// Drive (window keys, tests); edges fire the installed handler.
type VirtualPin struct {
	mu      sync.Mutex
	name    string
	caps    GPIOCaps
	mode    GPIOMode
	pull    GPIOPull
	level   bool
	edge    GPIOEdge
	handler GPIOEdgeHandler
}

func NewVirtualPin(name string, caps GPIOCaps) *VirtualPin {
	return &VirtualPin{
		name: name,
		caps: caps,
		mode: GPIOModeInput,
		pull: GPIOPullNone,
	}
}

func (p *VirtualPin) Name() string   { return p.name }
func (p *VirtualPin) Caps() GPIOCaps { return p.caps }

func (p *VirtualPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch mode {
	case GPIOModeInput:
		if p.caps&GPIOCapInput == 0 {
			return fmt.Errorf("gpio: pin %s: input unsupported", p.name)
		}
	case GPIOModeOutput:
		if p.caps&GPIOCapOutput == 0 {
			return fmt.Errorf("gpio: pin %s: output unsupported", p.name)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}

	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		if p.caps&GPIOCapPullUp == 0 {
			return fmt.Errorf("gpio: pin %s: pull-up unsupported", p.name)
		}
		p.level = true
	case GPIOPullDown:
		if p.caps&GPIOCapPullDown == 0 {
			return fmt.Errorf("gpio: pin %s: pull-down unsupported", p.name)
		}
		p.level = false
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
	}

	p.mode = mode
	p.pull = pull
	return nil
}

func (p *VirtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *VirtualPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: not in output mode", p.name)
	}
	p.level = level
	return nil
}

func (p *VirtualPin) SetInterrupt(edge GPIOEdge, fn GPIOEdgeHandler) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.caps&GPIOCapEdge == 0 && edge != GPIOEdgeNone {
		return fmt.Errorf("gpio: pin %s: edge interrupts unsupported", p.name)
	}
	if fn == nil {
		edge = GPIOEdgeNone
	}
	p.edge = edge
	p.handler = fn
	return nil
}

// Drive sets the externally applied level of an input pin and fires the
// handler when the transition matches the configured edge.
func (p *VirtualPin) Drive(level bool) {
	p.mu.Lock()
	if p.mode != GPIOModeInput || p.level == level {
		p.mu.Unlock()
		return
	}
	p.level = level
	fn := p.handler
	fire := (level && p.edge&GPIOEdgeRising != 0) || (!level && p.edge&GPIOEdgeFalling != 0)
	p.mu.Unlock()

	if fire && fn != nil {
		fn(level)
	}
}

type ledPin struct {
	mu    sync.Mutex
	led   LED
	name  string
	level bool
}

func newLEDPin(name string, led LED) GPIOPin {
	if led == nil {
		return nil
	}
	return &ledPin{led: led, name: name}
}

func (p *ledPin) Name() string   { return p.name }
func (p *ledPin) Caps() GPIOCaps { return GPIOCapOutput }

func (p *ledPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: only output supported", p.name)
	}
	if pull != GPIOPullNone {
		return fmt.Errorf("gpio: pin %s: pull unsupported", p.name)
	}
	return nil
}

func (p *ledPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *ledPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	if level {
		p.led.High()
	} else {
		p.led.Low()
	}
	return nil
}

func (p *ledPin) SetInterrupt(edge GPIOEdge, fn GPIOEdgeHandler) error {
	if edge != GPIOEdgeNone {
		return fmt.Errorf("gpio: pin %s: edge interrupts unsupported", p.name)
	}
	return nil
}
