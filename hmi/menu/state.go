// Package menu is the operator menu: it interprets input events against
// the application state and writes confirmed choices into the radio model.
package menu

// ID identifies a menu.
type ID uint8

const (
	Tune ID = iota
	Mode
	AGC
	Atten
	VOX
	Band
	FFTGain
	Trace
	NumMenus
)

var idNames = [...]string{
	Tune:    "tune",
	Mode:    "mode",
	AGC:     "agc",
	Atten:   "atten",
	VOX:     "vox",
	Band:    "band",
	FFTGain: "fft-gain",
	Trace:   "trace",
}

func (id ID) String() string {
	if int(id) < len(idNames) {
		return idNames[id]
	}
	return "unknown"
}

// NumTraces is the number of audio trace selections; the last one shows
// every trace at once.
const NumTraces = 7

// Palette selects the waterfall colormap.
type Palette uint8

const (
	PaletteJet Palette = iota
	PaletteFire
)

// State is the application state shared by the menu and the display.
type State struct {
	Menu   ID
	Option int
	// Last is the submenu Submenu returns to from Tune.
	Last ID

	// TX is the operator transmit flag; TXChanged is set whenever it
	// flips and cleared by the display once the change is drawn.
	TX        bool
	TXChanged bool

	PTTExternal bool
	PTTInternal bool

	Trace   int
	Palette Palette

	// TopDirty asks the display to clear the top status line.
	TopDirty bool
}

// Transmitting reports whether any transmit request is active.
func (s *State) Transmitting() bool {
	return s.TX || s.PTTExternal || s.PTTInternal
}
