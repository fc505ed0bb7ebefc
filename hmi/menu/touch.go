package menu

import (
	"usdr/hmi/input"
	"usdr/hmi/radio"
)

// ApplyTouch carries out a classified tap.
func (m *Machine) ApplyTouch(a input.Action) {
	s := &m.State
	switch a.Kind {
	case input.ActEvent:
		m.Handle(a.Event)
	case input.ActTraceCycle:
		s.Trace = (s.Trace + 1) % NumTraces
		if s.Menu == Trace {
			s.Option = s.Trace
		}
	case input.ActTuneOffset:
		m.Radio.Offset(a.Offset)
		if m.Radio.StepCursor() != radio.DefaultStep {
			m.Radio.SetStepCursor(radio.DefaultStep)
			if s.Menu == Tune {
				s.Option = radio.DefaultStep
			}
		}
	case input.ActPaletteToggle:
		s.Palette ^= 1
	case input.ActFFTGain:
		m.Radio.SetFFTGain(a.Value)
		if s.Menu == FFTGain {
			s.Option = m.Radio.FFTGain()
		}
	case input.ActStepCursor:
		m.Radio.SetStepCursor(a.Value)
		if s.Menu == Tune {
			s.Option = a.Value
		}
	case input.ActRoundKHz:
		m.Radio.SetFrequency(m.Radio.Frequency() / 1000 * 1000)
	case input.ActModeCycle:
		if s.Menu == Tune {
			m.cycleMode()
		}
	}
}
