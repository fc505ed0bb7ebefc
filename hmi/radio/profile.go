package radio

import (
	"fmt"
	"strings"
)

// StartBand is the band selected at power-up.
const StartBand = 11

// DefaultStep is the step cursor every band starts with (1 kHz).
const DefaultStep = 4

// MaxFrequency is the synthesizer's ceiling in Hz.
const MaxFrequency = 40_000_000

// Synthesizer drive: the mixer runs at four times the tuned frequency with
// the two outputs in quadrature.
const (
	SynthMultiplier = 4
	SynthPhase      = 90
)

var steps = [...]uint32{10_000_000, 1_000_000, 100_000, 10_000, 1_000, 100, 10}

// NumSteps is the number of step sizes.
const NumSteps = len(steps)

// StepIncrement returns the tuning increment in Hz for a step index. Out of
// range indices are clamped.
func StepIncrement(i int) uint32 {
	return steps[min(max(i, 0), NumSteps-1)]
}

// Profile is the stored configuration of one band. Lower and Upper never
// change after construction; Freq is kept within them.
type Profile struct {
	Name   string `yaml:"name"`
	Filter string `yaml:"filter"`
	Lower  uint32 `yaml:"lower"`
	Upper  uint32 `yaml:"upper"`
	Freq   uint32 `yaml:"freq"`
	Step   uint8  `yaml:"step"`
	Mode   Mode   `yaml:"mode"`
	AGC    AGC    `yaml:"agc"`
	Atten  Atten  `yaml:"atten"`
	VOX    VOX    `yaml:"vox"`
	BPF    uint8  `yaml:"bpf"`
}

// Clamp returns f limited to the band.
func (p Profile) Clamp(f uint32) uint32 {
	return min(max(f, p.Lower), p.Upper)
}

// Amateur reports whether the band is an amateur allocation.
func (p Profile) Amateur() bool {
	return strings.HasPrefix(p.Name, "Amateur-")
}

// Label is the band line shown under the frequency readout.
func (p Profile) Label() string {
	if strings.HasSuffix(p.Name, "MHz") {
		return " Shortwave " + p.Name + " "
	}
	return fmt.Sprintf("%s: %d-%d KHz", p.Name, p.Lower/1000, p.Upper/1000)
}

// Validate checks the invariants a loaded profile must satisfy.
func (p Profile) Validate() error {
	switch {
	case p.Lower >= p.Upper:
		return fmt.Errorf("radio: band %q: lower %d not below upper %d", p.Name, p.Lower, p.Upper)
	case p.Upper > MaxFrequency:
		return fmt.Errorf("radio: band %q: upper %d above %d", p.Name, p.Upper, MaxFrequency)
	case p.Mode >= NumModes, p.AGC >= NumAGC, p.Atten >= NumAtten, p.VOX >= NumVOX:
		return fmt.Errorf("radio: band %q: option out of range", p.Name)
	case int(p.BPF) >= len(filterCodes):
		return fmt.Errorf("radio: band %q: bpf %d out of range", p.Name, p.BPF)
	}
	return nil
}

// normalize pulls every mutable field into range.
func (p *Profile) normalize() {
	p.Freq = p.Clamp(p.Freq)
	p.Step = uint8(min(int(p.Step), NumSteps-1))
	p.Mode = min(p.Mode, NumModes-1)
	p.AGC = min(p.AGC, NumAGC-1)
	p.Atten = min(p.Atten, NumAtten-1)
	p.VOX = min(p.VOX, NumVOX-1)
	p.BPF = uint8(min(int(p.BPF), len(filterCodes)-1))
}

// Relay codes. Attenuator codes are indexed by Atten, filter codes by
// Profile.BPF.
var (
	attenCodes  = [NumAtten]uint8{0, 1, 2, 3, 4}
	filterCodes = [...]uint8{0, 1, 2, 2, 3, 3, 3, 4, 4, 4, 4, 0, 1, 2, 3, 4}
)

// DefaultProfiles returns the factory band table.
func DefaultProfiles() []Profile {
	bands := []struct {
		name, filter        string
		lower, upper, start uint32
		mode                Mode
	}{
		{"Amateur-160m", "<2.5", 1_800_000, 2_000_000, 1_910_000, ModeLSB},
		{"Amateur-80m", "2-6", 3_500_000, 4_000_000, 3_800_000, ModeLSB},
		{"Amateur-40m", "5-12", 7_000_000, 7_300_000, 7_200_000, ModeLSB},
		{"Amateur-30m", "5-12", 10_100_000, 10_150_000, 10_100_000, ModeUSB},
		{"Amateur-20m", "10-24", 14_000_000, 14_350_000, 14_200_000, ModeUSB},
		{"Amateur-17m", "10-24", 18_068_000, 18_168_000, 18_100_000, ModeUSB},
		{"Amateur-15m", "10-24", 21_000_000, 21_450_000, 21_300_000, ModeUSB},
		{"Amateur-12m", "20-40", 24_890_000, 24_990_000, 24_900_000, ModeUSB},
		{"Citizen Band", "20-40", 26_965_000, 27_700_000, 27_455_000, ModeUSB},
		{"Amateur-10m/1", "20-40", 28_000_000, 28_500_000, 28_074_000, ModeUSB},
		{"Amateur-10m/2", "20-40", 28_500_000, 29_700_000, 28_500_000, ModeUSB},
		{"AM Radio", "<2.5", 520_000, 2_000_000, 870_000, ModeAM},
		{"2-6MHz", "2-6", 2_000_000, 6_000_000, 5_000_000, ModeAM},
		{"6-12MHz", "5-12", 6_000_000, 12_000_000, 9_000_000, ModeAM},
		{"12-24MHz", "10-24", 12_000_000, 24_000_000, 13_820_000, ModeAM},
		{"24-40MHz", "20-40", 24_000_000, 40_000_000, 24_000_000, ModeAM},
	}
	out := make([]Profile, len(bands))
	for i, b := range bands {
		out[i] = Profile{
			Name:   b.name,
			Filter: b.filter,
			Lower:  b.lower,
			Upper:  b.upper,
			Freq:   b.start,
			Step:   DefaultStep,
			Mode:   b.mode,
			AGC:    AGCFast,
			Atten:  Atten0,
			VOX:    VOXOff,
			BPF:    uint8(i),
		}
	}
	return out
}
