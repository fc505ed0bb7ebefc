package menu

import (
	"usdr/hmi/input"
	"usdr/hmi/radio"
)

// variant describes one submenu. hook runs before the shared bounds
// routine and returns true when it has already updated the option.
// restore reads the stored option, commit writes it back.
type variant struct {
	count   func(m *Machine) int
	wrap    bool
	hook    func(m *Machine, ev input.Event) bool
	restore func(m *Machine) int
	commit  func(m *Machine, opt int)
}

var variants = [NumMenus]variant{
	Mode: {
		count: func(*Machine) int { return int(radio.NumModes) },
		hook: func(m *Machine, _ input.Event) bool {
			m.State.TopDirty = true
			return false
		},
		restore: func(m *Machine) int { return int(m.Radio.Profile().Mode) },
		commit:  func(m *Machine, opt int) { m.Radio.SetMode(radio.Mode(opt)) },
	},
	AGC: {
		count:   func(*Machine) int { return int(radio.NumAGC) },
		restore: func(m *Machine) int { return int(m.Radio.Profile().AGC) },
		commit:  func(m *Machine, opt int) { m.Radio.SetAGC(radio.AGC(opt)) },
	},
	Atten: {
		count:   func(*Machine) int { return int(radio.NumAtten) },
		restore: func(m *Machine) int { return int(m.Radio.Profile().Atten) },
		commit:  func(m *Machine, opt int) { m.Radio.SetAtten(radio.Atten(opt)) },
	},
	VOX: {
		count:   func(*Machine) int { return int(radio.NumVOX) },
		restore: func(m *Machine) int { return int(m.Radio.Profile().VOX) },
		commit:  func(m *Machine, opt int) { m.Radio.SetVOX(radio.VOX(opt)) },
	},
	Band: {
		count: func(m *Machine) int { return m.Radio.NumBands() },
		restore: func(m *Machine) int {
			if m.pending {
				return m.band
			}
			return m.Radio.Band()
		},
		commit: func(m *Machine, opt int) {
			m.band, m.pending = opt, opt != m.Radio.Band()
		},
	},
	FFTGain: {
		hook: func(m *Machine, ev input.Event) bool {
			switch ev {
			case input.Increment:
				m.Radio.SetFFTGain(m.Radio.FFTGain() + 2)
			case input.Decrement:
				m.Radio.SetFFTGain(m.Radio.FFTGain() - 2)
			}
			m.State.Option = m.Radio.FFTGain()
			return true
		},
		restore: func(m *Machine) int { return m.Radio.FFTGain() },
	},
	Trace: {
		count:   func(*Machine) int { return NumTraces },
		wrap:    true,
		restore: func(m *Machine) int { return m.State.Trace },
		commit:  func(m *Machine, opt int) { m.State.Trace = opt },
	},
}

// Machine dispatches events to the active menu.
type Machine struct {
	State State
	Radio *radio.Model

	// band is the Band submenu selection waiting for Apply.
	band    int
	pending bool
}

// New returns a machine in Tune with the band's step cursor selected.
func New(r *radio.Model) *Machine {
	return &Machine{
		Radio: r,
		State: State{
			Menu:      Tune,
			Option:    r.StepCursor(),
			Last:      Band,
			TXChanged: true,
		},
	}
}

// Handle applies one event.
func (m *Machine) Handle(ev input.Event) {
	switch ev {
	case input.NoEvent:
		return
	case input.PTTOn:
		if !m.State.PTTInternal {
			m.State.PTTExternal = true
		}
		return
	case input.PTTOff:
		m.State.PTTExternal = false
		return
	}

	if m.State.Menu == Tune {
		m.handleTune(ev)
		return
	}
	m.handleSubmenu(ev)
}

func (m *Machine) handleTune(ev input.Event) {
	s := &m.State
	switch ev {
	case input.Enter:
		m.cycleMode()
	case input.Submenu:
		m.enter(s.Last)
	case input.Increment:
		m.Radio.Tune(1)
	case input.Decrement:
		m.Radio.Tune(-1)
	case input.Right:
		// Cursor positions run 1..6; position 0 (10 MHz) is only reachable
		// through a stored profile.
		s.Option = s.Option%6 + 1
		m.Radio.SetStepCursor(s.Option)
	case input.Left:
		s.Option--
		if s.Option < 1 {
			s.Option = 6
		}
		m.Radio.SetStepCursor(s.Option)
	}
}

// cycleMode advances the band's mode. The Tune option follows the mode, so
// the cursor shows it until the next cursor move.
func (m *Machine) cycleMode() {
	next := (m.Radio.Profile().Mode + 1) % radio.NumModes
	m.Radio.SetMode(next)
	m.State.Option = int(next)
}

func (m *Machine) handleSubmenu(ev input.Event) {
	s := &m.State
	v := &variants[s.Menu]

	handled := false
	if v.hook != nil {
		handled = v.hook(m, ev)
	}
	if !handled && v.count != nil {
		s.Option = step(s.Option, ev, v.count(m), v.wrap)
	}

	if ev == input.Enter {
		s.TX = !s.TX
		s.PTTExternal = !s.PTTExternal
		s.TXChanged = true
		return
	}

	if v.commit != nil {
		v.commit(m, s.Option)
	}

	switch ev {
	case input.Submenu, input.Right, input.Left:
		m.Apply()
	}
	switch ev {
	case input.Submenu:
		s.Last = s.Menu
		s.Menu = Tune
		s.Option = m.Radio.StepCursor()
	case input.Right:
		next := s.Menu + 1
		if next >= NumMenus {
			next = Mode
		}
		m.enter(next)
	case input.Left:
		prev := s.Menu - 1
		if prev < Mode {
			prev = Trace
		}
		m.enter(prev)
	}
}

// Apply switches to the band picked in the Band submenu. Scrolling through
// several bands within one tick reprograms the rig once; the loop calls
// Apply after draining the tick's events, and leaving the submenu applies
// it straight away.
func (m *Machine) Apply() {
	if !m.pending {
		return
	}
	m.pending = false
	m.Radio.SwitchBand(m.band)
	m.State.PTTExternal = false
}

// enter switches to a submenu and restores its stored option.
func (m *Machine) enter(id ID) {
	if id == Tune || id >= NumMenus {
		id = Band
	}
	m.State.Menu = id
	m.State.Option = variants[id].restore(m)
}

// step is the shared bounds routine: one position up or down, clamped to
// [0, count) or wrapped when wrap is set.
func step(opt int, ev input.Event, count int, wrap bool) int {
	switch ev {
	case input.Increment:
		opt++
		if opt > count-1 {
			if wrap {
				return 0
			}
			return count - 1
		}
	case input.Decrement:
		opt--
		if opt < 0 {
			if wrap {
				return count - 1
			}
			return 0
		}
	}
	return opt
}
