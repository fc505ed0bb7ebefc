// Package radio holds the band table and the tuning state, and pushes
// every change to the synthesizer, relays and DSP.
package radio

import (
	"errors"
	"fmt"
)

// Model is the band/frequency state. It is not safe for concurrent use;
// the scheduler goroutine owns it.
//
// Collaborator failures never change the model. They are reported to the
// error handler.
type Model struct {
	profiles []Profile
	band     int
	freq     uint32
	fftGain  int

	rig     Rig
	onError func(error)
}

// NewModel copies profiles (the factory table if empty), selects start
// (clamped) and applies its settings to the rig.
func NewModel(profiles []Profile, start int, rig Rig) *Model {
	if len(profiles) == 0 {
		profiles = DefaultProfiles()
	}
	m := &Model{
		profiles: make([]Profile, len(profiles)),
		rig:      rig,
	}
	copy(m.profiles, profiles)
	for i := range m.profiles {
		m.profiles[i].normalize()
	}
	m.band = m.clampBand(start)
	m.setupBand()
	return m
}

// SetErrorHandler installs fn as the sink for collaborator errors.
func (m *Model) SetErrorHandler(fn func(error)) { m.onError = fn }

func (m *Model) report(errs ...error) {
	if err := errors.Join(errs...); err != nil && m.onError != nil {
		m.onError(err)
	}
}

func (m *Model) clampBand(i int) int { return min(max(i, 0), len(m.profiles)-1) }

// NumBands returns the number of bands.
func (m *Model) NumBands() int { return len(m.profiles) }

// Band returns the active band index.
func (m *Model) Band() int { return m.band }

// Profile returns a copy of the active band's profile.
func (m *Model) Profile() Profile { return m.profiles[m.band] }

// ProfileAt returns a copy of band i's profile (clamped index).
func (m *Model) ProfileAt(i int) Profile { return m.profiles[m.clampBand(i)] }

// Profiles returns a copy of the table with the active band's frequency
// stored in it.
func (m *Model) Profiles() []Profile {
	out := make([]Profile, len(m.profiles))
	copy(out, m.profiles)
	out[m.band].Freq = m.freq
	return out
}

// Frequency returns the tuned frequency in Hz.
func (m *Model) Frequency() uint32 { return m.freq }

// FFTGain returns the spectrum display gain.
func (m *Model) FFTGain() int { return m.fftGain }

// SetFFTGain sets the spectrum display gain, limited to 0..255.
func (m *Model) SetFFTGain(g int) { m.fftGain = min(max(g, 0), 255) }

func bandFFTGain(freq uint32) int { return 32 + int(freq/1000/250) }

// SwitchBand stores the outgoing band's frequency, loads band i's stored
// frequency and settings and applies them. The step cursor of the new band
// is reset to 1 kHz. Out of range indices are clamped.
func (m *Model) SwitchBand(i int) {
	i = m.clampBand(i)
	if i == m.band {
		return
	}
	m.profiles[m.band].Freq = m.freq
	m.band = i
	m.setupBand()
}

func (m *Model) setupBand() {
	p := &m.profiles[m.band]
	p.Step = DefaultStep
	m.freq = p.Clamp(p.Freq)
	m.fftGain = bandFFTGain(m.freq)

	var errs []error
	if s := m.rig.Synth; s != nil {
		if err := s.SetFreq(SynthMultiplier * m.freq); err != nil {
			errs = append(errs, fmt.Errorf("radio: set synth: %w", err))
		}
		if err := s.SetPhase(SynthPhase); err != nil {
			errs = append(errs, fmt.Errorf("radio: set phase: %w", err))
		}
	}
	if d := m.rig.DSP; d != nil {
		if err := d.SetMode(p.Mode); err != nil {
			errs = append(errs, fmt.Errorf("radio: set mode: %w", err))
		}
		if err := d.SetVOX(p.VOX); err != nil {
			errs = append(errs, fmt.Errorf("radio: set vox: %w", err))
		}
		if err := d.SetAGC(p.AGC); err != nil {
			errs = append(errs, fmt.Errorf("radio: set agc: %w", err))
		}
	}
	if r := m.rig.Relay; r != nil {
		if err := r.SetAttenuator(attenCodes[p.Atten]); err != nil {
			errs = append(errs, fmt.Errorf("radio: set attenuator: %w", err))
		}
		if err := r.SetFilter(filterCodes[p.BPF]); err != nil {
			errs = append(errs, fmt.Errorf("radio: set filter: %w", err))
		}
	}
	m.report(errs...)
}

// SetFrequency tunes to f. Anything above the band wraps to its lower
// edge and anything below wraps to its upper edge.
func (m *Model) SetFrequency(f uint32) {
	m.setFrequency(int64(f))
}

func (m *Model) setFrequency(f int64) {
	p := m.profiles[m.band]
	switch {
	case f > int64(p.Upper):
		f = int64(p.Lower)
	case f < int64(p.Lower):
		f = int64(p.Upper)
	}
	if uint32(f) == m.freq {
		return
	}
	m.freq = uint32(f)
	if s := m.rig.Synth; s != nil {
		if err := s.SetFreq(SynthMultiplier * m.freq); err != nil {
			m.report(fmt.Errorf("radio: set synth: %w", err))
		}
	}
}

// Tune moves the frequency by n steps of the active step size, wrapping at
// the band edges.
func (m *Model) Tune(n int) {
	step := int64(StepIncrement(m.StepCursor()))
	m.setFrequency(int64(m.freq) + int64(n)*step)
}

// Offset moves the frequency by hz, wrapping at the band edges.
func (m *Model) Offset(hz int32) {
	m.setFrequency(int64(m.freq) + int64(hz))
}

// StepCursor returns the active band's step index.
func (m *Model) StepCursor() int { return int(m.profiles[m.band].Step) }

// SetStepCursor stores the step index for the active band (clamped).
func (m *Model) SetStepCursor(i int) {
	m.profiles[m.band].Step = uint8(min(max(i, 0), NumSteps-1))
}

// SetMode stores and applies the demodulation mode (clamped).
func (m *Model) SetMode(v Mode) {
	v = min(v, NumModes-1)
	p := &m.profiles[m.band]
	if p.Mode == v {
		return
	}
	p.Mode = v
	if d := m.rig.DSP; d != nil {
		if err := d.SetMode(v); err != nil {
			m.report(fmt.Errorf("radio: set mode: %w", err))
		}
	}
}

// SetAGC stores and applies the AGC speed (clamped).
func (m *Model) SetAGC(v AGC) {
	v = min(v, NumAGC-1)
	p := &m.profiles[m.band]
	if p.AGC == v {
		return
	}
	p.AGC = v
	if d := m.rig.DSP; d != nil {
		if err := d.SetAGC(v); err != nil {
			m.report(fmt.Errorf("radio: set agc: %w", err))
		}
	}
}

// SetAtten stores and applies the attenuator setting (clamped).
func (m *Model) SetAtten(v Atten) {
	v = min(v, NumAtten-1)
	p := &m.profiles[m.band]
	if p.Atten == v {
		return
	}
	p.Atten = v
	if r := m.rig.Relay; r != nil {
		if err := r.SetAttenuator(attenCodes[v]); err != nil {
			m.report(fmt.Errorf("radio: set attenuator: %w", err))
		}
	}
}

// SetVOX stores and applies the VOX sensitivity (clamped).
func (m *Model) SetVOX(v VOX) {
	v = min(v, NumVOX-1)
	p := &m.profiles[m.band]
	if p.VOX == v {
		return
	}
	p.VOX = v
	if d := m.rig.DSP; d != nil {
		if err := d.SetVOX(v); err != nil {
			m.report(fmt.Errorf("radio: set vox: %w", err))
		}
	}
}

// Save persists the profile table, including the active band's current
// frequency.
func (m *Model) Save(s Store) error {
	m.profiles[m.band].Freq = m.freq
	if err := s.SaveProfiles(m.profiles); err != nil {
		return fmt.Errorf("radio: save profiles: %w", err)
	}
	return nil
}

// Load replaces the profile table from s and sets up the active band
// again. On error the model is unchanged.
func (m *Model) Load(s Store) error {
	profiles, err := s.LoadProfiles()
	if err != nil {
		return fmt.Errorf("radio: load profiles: %w", err)
	}
	if len(profiles) == 0 {
		return errors.New("radio: load profiles: empty table")
	}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("radio: load profiles: %w", err)
		}
	}
	m.profiles = make([]Profile, len(profiles))
	copy(m.profiles, profiles)
	for i := range m.profiles {
		m.profiles[i].normalize()
	}
	m.band = m.clampBand(m.band)
	m.setupBand()
	return nil
}
