// Package input turns encoder, button, PTT and touch-panel activity into
// the HMI's event vocabulary.
package input

// Event is an abstract operator action, independent of its source.
type Event uint8

const (
	NoEvent Event = iota
	Increment
	Decrement
	Enter
	Submenu
	Left
	Right
	PTTOn
	PTTOff
)

var eventNames = [...]string{
	NoEvent:   "none",
	Increment: "increment",
	Decrement: "decrement",
	Enter:     "enter",
	Submenu:   "submenu",
	Left:      "left",
	Right:     "right",
	PTTOn:     "ptt-on",
	PTTOff:    "ptt-off",
}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Button identifies one of the four auxiliary push-buttons.
type Button uint8

const (
	ButtonEnter Button = iota
	ButtonEscape
	ButtonLeft
	ButtonRight
)

// EncoderEdge decodes an edge on encoder channel A. b is the level of
// channel B sampled at the same moment. Only falling edges count.
func EncoderEdge(falling, b bool) Event {
	if !falling {
		return NoEvent
	}
	if b {
		return Increment
	}
	return Decrement
}

// ButtonEdge maps a button press (falling edge on an active-low line) to
// its event. Releases produce nothing.
func ButtonEdge(btn Button, falling bool) Event {
	if !falling {
		return NoEvent
	}
	switch btn {
	case ButtonEnter:
		return Enter
	case ButtonEscape:
		return Submenu
	case ButtonLeft:
		return Left
	case ButtonRight:
		return Right
	}
	return NoEvent
}

// PTTEdge maps the active-low push-to-talk line.
func PTTEdge(falling bool) Event {
	if falling {
		return PTTOn
	}
	return PTTOff
}
