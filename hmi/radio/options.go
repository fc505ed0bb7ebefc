package radio

import "fmt"

// Mode is the demodulation mode.
type Mode uint8

const (
	ModeUSB Mode = iota
	ModeLSB
	ModeAM
	ModeAM2
	ModeCW
	NumModes
)

// AGC is the automatic gain control speed.
type AGC uint8

const (
	AGCOff AGC = iota
	AGCSlow
	AGCFast
	NumAGC
)

// Atten is the front-end attenuator or preamplifier setting.
type Atten uint8

const (
	Atten30 Atten = iota
	Atten20
	Atten10
	Atten0
	Preamp10
	NumAtten
)

// VOX is the voice-operated transmit sensitivity.
type VOX uint8

const (
	VOXOff VOX = iota
	VOXLow
	VOXMid
	VOXHigh
	NumVOX
)

var (
	modeNames  = []string{"USB", "LSB", "AM", "AM2", "CW"}
	agcNames   = []string{"OFF", "Slow", "Fast"}
	attenNames = []string{"-30dB", "-20dB", "-10dB", "0dB", "+10dB"}
	voxNames   = []string{"OFF", "LOW", "Mid", "HIGH"}
)

func (m Mode) String() string  { return optionName(modeNames, uint8(m)) }
func (a AGC) String() string   { return optionName(agcNames, uint8(a)) }
func (a Atten) String() string { return optionName(attenNames, uint8(a)) }
func (v VOX) String() string   { return optionName(voxNames, uint8(v)) }

func (m Mode) MarshalText() ([]byte, error)  { return []byte(m.String()), nil }
func (a AGC) MarshalText() ([]byte, error)   { return []byte(a.String()), nil }
func (a Atten) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
func (v VOX) MarshalText() ([]byte, error)   { return []byte(v.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error  { return parseOption("mode", modeNames, b, (*uint8)(m)) }
func (a *AGC) UnmarshalText(b []byte) error   { return parseOption("agc", agcNames, b, (*uint8)(a)) }
func (a *Atten) UnmarshalText(b []byte) error { return parseOption("atten", attenNames, b, (*uint8)(a)) }
func (v *VOX) UnmarshalText(b []byte) error   { return parseOption("vox", voxNames, b, (*uint8)(v)) }

func optionName(names []string, i uint8) string {
	if int(i) < len(names) {
		return names[i]
	}
	return fmt.Sprintf("?%d", i)
}

func parseOption(kind string, names []string, b []byte, dst *uint8) error {
	s := string(b)
	for i, n := range names {
		if n == s {
			*dst = uint8(i)
			return nil
		}
	}
	return fmt.Errorf("radio: unknown %s %q", kind, s)
}
