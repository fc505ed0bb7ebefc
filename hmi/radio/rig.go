package radio

// Synth drives the quadrature local oscillator.
type Synth interface {
	SetFreq(hz uint32) error
	SetPhase(deg uint16) error
}

// Relay switches the band-pass filters and the attenuator.
type Relay interface {
	SetAttenuator(code uint8) error
	SetFilter(code uint8) error
}

// DSP is the signal-processing pipeline's control surface.
type DSP interface {
	SetMode(Mode) error
	SetAGC(AGC) error
	SetVOX(VOX) error
}

// Store persists the band profile table.
type Store interface {
	LoadProfiles() ([]Profile, error)
	SaveProfiles([]Profile) error
}

// Rig bundles the collaborators the model drives. Nil members are skipped.
type Rig struct {
	Synth Synth
	Relay Relay
	DSP   DSP
}
