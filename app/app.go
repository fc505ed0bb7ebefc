// Package app wires the HAL to the operator interface and runs its fixed
// cadence loop.
package app

import (
	"errors"
	"fmt"
	"time"

	"usdr/hal"
	"usdr/hmi/display"
	"usdr/hmi/input"
	"usdr/hmi/menu"
	"usdr/hmi/radio"
	"usdr/hmi/render"
	"usdr/hmi/sched"
	"usdr/hmi/store"
	"usdr/internal/buildinfo"
	"usdr/internal/metrics"
	"usdr/kernel"
)

// Producer is a telemetry source stepped on the scheduler goroutine, such
// as the host DSP simulator.
type Producer interface {
	Step() bool
	SetTransmit(tx bool)
	SetFFTGain(g int)
}

// Options carry the collaborators that are not part of the HAL.
type Options struct {
	Rig       radio.Rig
	Telemetry *kernel.Latch[display.Telemetry]
	Producer  Producer
	Metrics   *metrics.Metrics
}

// App is the running operator interface. Step must be called from a single
// goroutine.
type App struct {
	h   hal.HAL
	cfg Config
	log hal.Logger

	events   *kernel.Mailbox[input.Event]
	controls *input.Controls
	touch    hal.Touch
	sampler  input.Sampler
	cooldown input.Cooldown

	radio   *radio.Model
	machine *menu.Machine
	store   *store.Flash

	fb   *render.FB
	comp *display.Composer
	tel  *kernel.Latch[display.Telemetry]
	prod Producer

	clock    kernel.Clock
	sched    sched.Scheduler
	metrics  *metrics.Metrics
	intro    int
	drawn    display.Stats
	overruns uint64
	menus    []string
}

// New builds the interface on h. Missing hardware is tolerated: without
// GPIO the controls are skipped, without a framebuffer nothing is drawn.
func New(h hal.HAL, cfg Config, opts Options) (*App, error) {
	if h == nil {
		return nil, errors.New("app: nil hal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	bt := newBootTrace(time.Now)
	bootDiagStart(h, bt)
	bootScreen(h, bt, "radio")

	a := &App{
		h:       h,
		cfg:     cfg,
		log:     h.Logger(),
		events:  kernel.NewMailbox[input.Event](max(cfg.Mailbox, 8)),
		tel:     opts.Telemetry,
		prod:    opts.Producer,
		metrics: opts.Metrics,
		sched:   sched.Scheduler{Interval: cfg.interval()},
	}
	if a.tel == nil {
		a.tel = new(kernel.Latch[display.Telemetry])
	}
	for id := menu.ID(0); id < menu.NumMenus; id++ {
		a.menus = append(a.menus, id.String())
	}
	a.metrics.WatchMailbox(a.events.Dropped)
	a.metrics.WatchLatch(a.tel.Skipped)

	a.radio = radio.NewModel(cfg.Bands, cfg.startBand(), opts.Rig)
	a.radio.SetErrorHandler(func(err error) {
		a.logf("%v", err)
		a.metrics.RecordError("radio")
	})
	if f := h.Flash(); f != nil {
		a.store = store.New(f)
		switch err := a.radio.Load(a.store); {
		case err == nil:
			a.logf("store: loaded %d bands", a.radio.NumBands())
		case errors.Is(err, store.ErrNoProfiles):
		default:
			a.logf("%v", err)
			a.metrics.RecordError("store")
		}
	}
	if cfg.Waterfall.Scale > 0 {
		a.radio.SetFFTGain(cfg.Waterfall.Scale)
	}

	a.machine = menu.New(a.radio)
	a.machine.State.Palette, _ = cfg.palette()

	bootScreen(h, bt, "controls")
	if g := h.GPIO(); g != nil {
		c, err := input.Attach(g, cfg.Pins, a.events)
		if err != nil {
			a.logf("%v", err)
			a.metrics.RecordError("input")
		}
		a.controls = c
	}
	if cfg.Touch == nil || *cfg.Touch {
		a.touch = h.Touch()
	}

	bootScreen(h, bt, "display")
	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	a.fb = render.NewFB(fb)
	a.comp = display.New(a.fb, display.Options{
		Touch:   a.touch != nil,
		Version: buildinfo.Short(),
	})

	if cfg.IntroSeconds > 0 {
		a.comp.Intro()
		a.intro = cfg.IntroSeconds * 1000 / int(a.sched.Interval)
	} else {
		a.comp.Static()
	}
	a.present()
	a.logf("%s", bt.done())
	a.logf("usdr %s: band %d, %d Hz", buildinfo.String(), a.radio.Band(), a.radio.Frequency())
	return a, nil
}

// Radio returns the band/frequency model.
func (a *App) Radio() *radio.Model { return a.radio }

// State returns the menu state.
func (a *App) State() *menu.State { return &a.machine.State }

// Events returns the control event mailbox.
func (a *App) Events() *kernel.Mailbox[input.Event] { return a.events }

// Composer returns the display composer.
func (a *App) Composer() *display.Composer { return a.comp }

// Step follows the HAL tick stream and runs the loop when it is due.
func (a *App) Step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = showPanic(a.h, r)
		}
	}()
	if t := a.h.Time(); t != nil {
		a.clock.Sync(t.Ticks())
	}
	a.sched.Poll(a.clock.Millis(), a.tick)
	return nil
}

// Save writes the band table to flash.
func (a *App) Save() error {
	if a.store == nil {
		return fmt.Errorf("app: save: %w", hal.ErrNotImplemented)
	}
	if err := a.radio.Save(a.store); err != nil {
		a.metrics.RecordError("store")
		return err
	}
	a.logf("store: saved %d bands", a.radio.NumBands())
	return nil
}

// Close detaches the control interrupts.
func (a *App) Close() {
	if a.controls != nil {
		a.controls.Detach()
		a.controls = nil
	}
}

// tick is one main loop iteration: drain events into the state machine,
// poll the touch panel, apply a pending band switch, push changes to the
// collaborators, then redraw.
func (a *App) tick() {
	start := time.Now()

	if a.intro > 0 {
		a.stepIntro()
		a.present()
		return
	}

	a.events.Drain(func(ev input.Event) {
		a.machine.Handle(ev)
		a.metrics.RecordEvent(ev.String())
	})
	a.pollTouch()
	a.machine.Apply()

	st := &a.machine.State
	tx := st.Transmitting()
	if led := a.h.LED(); led != nil {
		if tx {
			led.High()
		} else {
			led.Low()
		}
	}
	if a.prod != nil {
		a.prod.SetTransmit(tx)
		a.prod.SetFFTGain(a.radio.FFTGain())
		a.prod.Step()
	}

	if !a.tel.Consume(func(t *display.Telemetry) { a.comp.Compose(st, a.radio, t) }) {
		a.comp.Compose(st, a.radio, nil)
	}
	a.present()
	a.record(tx, time.Since(start))
}

func (a *App) stepIntro() {
	a.intro--
	perSecond := 1000 / int(a.sched.Interval)
	if a.intro == 0 {
		a.comp.Countdown(false, 0)
		a.comp.Static()
		return
	}
	if a.intro%max(perSecond, 1) == 0 || a.intro == a.cfg.IntroSeconds*perSecond-1 {
		a.comp.Countdown(true, (a.intro+perSecond-1)/max(perSecond, 1))
	}
}

func (a *App) pollTouch() {
	if a.touch == nil || !a.cooldown.Tick() {
		return
	}
	p, ok := a.sampler.Poll(a.touch)
	if !ok {
		return
	}
	act := input.Classify(p, a.machine.State.Menu == menu.Tune)
	a.cooldown.Set(act.Cooldown)
	a.machine.ApplyTouch(act)
	a.metrics.RecordTap(act.Kind.String())
}

func (a *App) present() {
	if err := a.fb.Present(); err != nil {
		a.logf("display: present: %v", err)
		a.metrics.RecordError("display")
	}
}

func (a *App) record(tx bool, d time.Duration) {
	if a.metrics == nil {
		return
	}
	s := a.comp.Stats()
	a.metrics.RecordDraw(s.Digits-a.drawn.Digits, s.WaterfallRow-a.drawn.WaterfallRow)
	a.drawn = s

	over := a.sched.Overruns()
	a.metrics.RecordTick(d.Seconds(), over != a.overruns)
	a.overruns = over

	a.metrics.SetRadio(a.radio.Frequency(), a.radio.Band(), tx)
	a.metrics.SetMenu(a.machine.State.Menu.String(), a.menus)
}

func (a *App) logf(format string, args ...any) {
	if a.log != nil {
		a.log.WriteLineString(fmt.Sprintf(format, args...))
	}
}
