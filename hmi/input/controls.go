package input

import (
	"errors"
	"fmt"

	"usdr/hal"
)

// Pins names the GPIO lines of the physical controls.
type Pins struct {
	EncA   string `yaml:"enc_a"`
	EncB   string `yaml:"enc_b"`
	Enter  string `yaml:"enter"`
	Escape string `yaml:"escape"`
	Left   string `yaml:"left"`
	Right  string `yaml:"right"`
	PTT    string `yaml:"ptt"`
}

// DefaultPins is the board wiring.
func DefaultPins() Pins {
	return Pins{
		EncA:   "GP2",
		EncB:   "GP3",
		Enter:  "GP6",
		Escape: "GP7",
		Left:   "GP8",
		Right:  "GP9",
		PTT:    "GP15",
	}
}

// withDefaults fills unset names from DefaultPins.
func (p Pins) withDefaults() Pins {
	d := DefaultPins()
	for _, f := range []struct{ v, def *string }{
		{&p.EncA, &d.EncA}, {&p.EncB, &d.EncB}, {&p.Enter, &d.Enter},
		{&p.Escape, &d.Escape}, {&p.Left, &d.Left}, {&p.Right, &d.Right},
		{&p.PTT, &d.PTT},
	} {
		if *f.v == "" {
			*f.v = *f.def
		}
	}
	return p
}

// Sink receives events from interrupt context. TrySend must not block.
type Sink interface {
	TrySend(Event) bool
}

// Controls is the set of control lines bound to a sink.
type Controls struct {
	encA, encB hal.GPIOPin
	buttons    [4]hal.GPIOPin
	ptt        hal.GPIOPin
	sink       Sink
}

// Attach configures every control line as a pulled-up input and installs
// edge handlers that decode the edge and enqueue the event. Nothing else
// runs in the handler.
func Attach(g hal.GPIO, pins Pins, sink Sink) (*Controls, error) {
	if g == nil {
		return nil, errors.New("input: no gpio")
	}
	if sink == nil {
		return nil, errors.New("input: nil sink")
	}
	pins = pins.withDefaults()

	c := &Controls{sink: sink}
	var err error
	lookup := func(role, name string) hal.GPIOPin {
		p := g.ByName(name)
		if p == nil {
			err = errors.Join(err, fmt.Errorf("input: %s pin %q not found", role, name))
			return nil
		}
		if cerr := p.Configure(hal.GPIOModeInput, hal.GPIOPullUp); cerr != nil {
			err = errors.Join(err, fmt.Errorf("input: %s: %w", role, cerr))
		}
		return p
	}

	c.encA = lookup("encoder A", pins.EncA)
	c.encB = lookup("encoder B", pins.EncB)
	c.buttons[ButtonEnter] = lookup("enter", pins.Enter)
	c.buttons[ButtonEscape] = lookup("escape", pins.Escape)
	c.buttons[ButtonLeft] = lookup("left", pins.Left)
	c.buttons[ButtonRight] = lookup("right", pins.Right)
	c.ptt = lookup("ptt", pins.PTT)
	if err != nil {
		return nil, err
	}

	if err := c.encA.SetInterrupt(hal.GPIOEdgeFalling, c.onEncoder); err != nil {
		return nil, fmt.Errorf("input: encoder A: %w", err)
	}
	for i, p := range c.buttons {
		btn := Button(i)
		err := p.SetInterrupt(hal.GPIOEdgeFalling, func(level bool) {
			c.emit(ButtonEdge(btn, !level))
		})
		if err != nil {
			c.Detach()
			return nil, fmt.Errorf("input: button %s: %w", p.Name(), err)
		}
	}
	if err := c.ptt.SetInterrupt(hal.GPIOEdgeBoth, func(level bool) {
		c.emit(PTTEdge(!level))
	}); err != nil {
		c.Detach()
		return nil, fmt.Errorf("input: ptt: %w", err)
	}
	return c, nil
}

func (c *Controls) onEncoder(level bool) {
	b, err := c.encB.Read()
	if err != nil {
		return
	}
	c.emit(EncoderEdge(!level, b))
}

func (c *Controls) emit(ev Event) {
	if ev != NoEvent {
		c.sink.TrySend(ev)
	}
}

// Detach removes every installed edge handler.
func (c *Controls) Detach() {
	for _, p := range append([]hal.GPIOPin{c.encA, c.ptt}, c.buttons[:]...) {
		if p != nil {
			_ = p.SetInterrupt(hal.GPIOEdgeNone, nil)
		}
	}
}
