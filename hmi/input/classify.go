package input

// ActionKind says what a touch tap asks for.
type ActionKind uint8

const (
	// ActNone: the tap hit no region, or hit one that does nothing for
	// this position. Cooldown may still be set.
	ActNone ActionKind = iota
	// ActEvent: the tap stands in for a physical control; see Event.
	ActEvent
	// ActTraceCycle selects the next audio trace.
	ActTraceCycle
	// ActTuneOffset retunes by Offset Hz and selects the 1 kHz step.
	ActTuneOffset
	// ActPaletteToggle switches the waterfall colormap.
	ActPaletteToggle
	// ActFFTGain sets the FFT gain to Value.
	ActFFTGain
	// ActStepCursor moves the step cursor to Value (1..6).
	ActStepCursor
	// ActRoundKHz truncates the tuned frequency to a whole kHz.
	ActRoundKHz
	// ActModeCycle cycles the mode, as Enter does in Tune.
	ActModeCycle
)

// Action is the result of classifying one tap.
type Action struct {
	Kind     ActionKind
	Event    Event
	Offset   int32
	Value    int
	Cooldown uint8
}

// stepColumns maps x ranges on the frequency readout to step cursor
// positions.
var stepColumns = [...]struct {
	lo, hi, pos int
}{
	{30, 50, 1},
	{60, 80, 2},
	{90, 110, 3},
	{115, 135, 4},
	{170, 190, 5},
	{200, 220, 6},
}

func in(v, lo, hi int) bool { return v > lo && v < hi }

// Classify maps a filtered tap to an action. Regions are checked in a
// fixed order and the first match wins; tune reports whether the menu is
// in Tune, which enables the mode badge region.
func Classify(p Point, tune bool) Action {
	x, y := p.X, p.Y
	switch {
	case in(y, 135, 160) && in(x, 160, 200):
		return Action{Kind: ActEvent, Event: Decrement}
	case in(y, 135, 160) && in(x, 200, 240):
		return Action{Kind: ActEvent, Event: Increment}
	case in(y, 80, 115) && in(x, 160, 240):
		return Action{Kind: ActEvent, Event: Submenu, Cooldown: 1}
	case in(y, 115, 135) && in(x, 200, 240):
		return Action{Kind: ActEvent, Event: Right, Cooldown: 2}
	case in(y, 115, 135) && in(x, 160, 200):
		return Action{Kind: ActEvent, Event: Left, Cooldown: 2}
	case x > 250 && in(y, 100, 170):
		return Action{Kind: ActTraceCycle, Cooldown: 3}
	case y > 190:
		return Action{Kind: ActTuneOffset, Offset: int32(x/2-80) * 1000, Cooldown: 2}
	case in(x, 150, 170) && in(y, 175, 185):
		return Action{Kind: ActPaletteToggle, Cooldown: 5}
	case in(y, 150, 170) && x < 160:
		return Action{Kind: ActFFTGain, Value: x}
	case in(y, 15, 50):
		if x > 250 {
			return Action{Kind: ActRoundKHz, Cooldown: 2}
		}
		for _, c := range stepColumns {
			if in(x, c.lo, c.hi) {
				return Action{Kind: ActStepCursor, Value: c.pos, Cooldown: 2}
			}
		}
		return Action{Kind: ActNone, Cooldown: 2}
	case tune && x > 250 && in(y, 45, 80):
		return Action{Kind: ActModeCycle, Cooldown: 5}
	case in(y, 115, 135):
		// Left/right row outside both buttons.
		return Action{Kind: ActNone, Cooldown: 2}
	}
	return Action{}
}

var actionNames = [...]string{
	ActNone:          "none",
	ActEvent:         "event",
	ActTraceCycle:    "trace",
	ActTuneOffset:    "tune-offset",
	ActPaletteToggle: "palette",
	ActFFTGain:       "fft-gain",
	ActStepCursor:    "step-cursor",
	ActRoundKHz:      "round-khz",
	ActModeCycle:     "mode",
}

func (k ActionKind) String() string {
	if int(k) < len(actionNames) {
		return actionNames[k]
	}
	return "unknown"
}
