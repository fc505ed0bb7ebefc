//go:build !tinygo

package hal

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// periphPollTimeout bounds how long an edge watcher waits before checking
// for shutdown.
const periphPollTimeout = 100 * time.Millisecond

// OpenPeriphGPIO binds real GPIO lines through periph.io. lines maps the
// HMI pin name (GP2, GP6, ...) to the periph line name (GPIO17, ...).
// It lets the HMI run on a Linux board with the encoder and buttons wired
// to its header.
func OpenPeriphGPIO(lines map[string]string) (GPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio: periph init: %w", err)
	}

	names := make([]string, 0, len(lines))
	for name := range lines {
		names = append(names, name)
	}
	sort.Strings(names)

	pins := make([]GPIOPin, 0, len(names))
	for _, name := range names {
		p := gpioreg.ByName(lines[name])
		if p == nil {
			return nil, fmt.Errorf("gpio: pin %s: line %q not found", name, lines[name])
		}
		pins = append(pins, newPeriphPin(name, p))
	}
	return newPinSet(pins), nil
}

type periphPin struct {
	name string
	p    gpio.PinIO

	mu   sync.Mutex
	pull gpio.Pull
	stop chan struct{}
	done chan struct{}
}

func newPeriphPin(name string, p gpio.PinIO) *periphPin {
	return &periphPin{name: name, p: p, pull: gpio.PullNoChange}
}

func (p *periphPin) Name() string { return p.name }

func (p *periphPin) Caps() GPIOCaps {
	return GPIOCapInput | GPIOCapOutput | GPIOCapPullUp | GPIOCapPullDown | GPIOCapEdge
}

func (p *periphPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch mode {
	case GPIOModeInput:
		p.pull = periphPull(pull)
		if err := p.p.In(p.pull, gpio.NoEdge); err != nil {
			return fmt.Errorf("gpio: pin %s: %w", p.name, err)
		}
	case GPIOModeOutput:
		if err := p.p.Out(gpio.Low); err != nil {
			return fmt.Errorf("gpio: pin %s: %w", p.name, err)
		}
	default:
		return fmt.Errorf("gpio: pin %s: invalid mode", p.name)
	}
	return nil
}

func (p *periphPin) Read() (bool, error) {
	return p.p.Read() == gpio.High, nil
}

func (p *periphPin) Write(level bool) error {
	if err := p.p.Out(gpio.Level(level)); err != nil {
		return fmt.Errorf("gpio: pin %s: %w", p.name, err)
	}
	return nil
}

// SetInterrupt arms edge detection and starts a watcher goroutine that
// calls fn for every edge periph reports. A nil fn or GPIOEdgeNone stops
// the watcher.
func (p *periphPin) SetInterrupt(edge GPIOEdge, fn GPIOEdgeHandler) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopWatcherLocked()
	if fn == nil || edge == GPIOEdgeNone {
		return p.p.In(p.pull, gpio.NoEdge)
	}

	if err := p.p.In(p.pull, periphEdge(edge)); err != nil {
		return fmt.Errorf("gpio: pin %s: %w", p.name, err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	p.stop, p.done = stop, done
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
			}
			if p.p.WaitForEdge(periphPollTimeout) {
				fn(p.p.Read() == gpio.High)
			}
		}
	}()
	return nil
}

// Close stops the edge watcher, if any.
func (p *periphPin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopWatcherLocked()
	return nil
}

func (p *periphPin) stopWatcherLocked() {
	if p.stop == nil {
		return
	}
	close(p.stop)
	<-p.done
	p.stop, p.done = nil, nil
}

func periphPull(pull GPIOPull) gpio.Pull {
	switch pull {
	case GPIOPullUp:
		return gpio.PullUp
	case GPIOPullDown:
		return gpio.PullDown
	default:
		return gpio.Float
	}
}

func periphEdge(edge GPIOEdge) gpio.Edge {
	switch edge {
	case GPIOEdgeFalling:
		return gpio.FallingEdge
	case GPIOEdgeRising:
		return gpio.RisingEdge
	case GPIOEdgeBoth:
		return gpio.BothEdges
	default:
		return gpio.NoEdge
	}
}
