package input

import (
	"testing"

	"usdr/hal"
	"usdr/kernel"
)

func TestEncoderEdge(t *testing.T) {
	cases := []struct {
		falling, b bool
		want       Event
	}{
		{true, true, Increment},
		{true, false, Decrement},
		{false, true, NoEvent},
		{false, false, NoEvent},
	}
	for _, tc := range cases {
		if got := EncoderEdge(tc.falling, tc.b); got != tc.want {
			t.Fatalf("EncoderEdge(%v, %v) = %v, want %v", tc.falling, tc.b, got, tc.want)
		}
	}
}

func TestButtonEdge(t *testing.T) {
	cases := []struct {
		btn  Button
		want Event
	}{
		{ButtonEnter, Enter},
		{ButtonEscape, Submenu},
		{ButtonLeft, Left},
		{ButtonRight, Right},
	}
	for _, tc := range cases {
		if got := ButtonEdge(tc.btn, true); got != tc.want {
			t.Fatalf("ButtonEdge(%d, true) = %v, want %v", tc.btn, got, tc.want)
		}
		if got := ButtonEdge(tc.btn, false); got != NoEvent {
			t.Fatalf("ButtonEdge(%d, false) = %v, want none", tc.btn, got)
		}
	}
}

func TestPTTEdge(t *testing.T) {
	if got := PTTEdge(true); got != PTTOn {
		t.Fatalf("PTTEdge(true) = %v, want ptt-on", got)
	}
	if got := PTTEdge(false); got != PTTOff {
		t.Fatalf("PTTEdge(false) = %v, want ptt-off", got)
	}
}

func newControlPins(t *testing.T) (hal.GPIO, map[string]*hal.VirtualPin) {
	t.Helper()
	caps := hal.GPIOCapInput | hal.GPIOCapPullUp | hal.GPIOCapEdge
	byName := make(map[string]*hal.VirtualPin)
	var pins []hal.GPIOPin
	for _, name := range []string{"GP2", "GP3", "GP6", "GP7", "GP8", "GP9", "GP15"} {
		p := hal.NewVirtualPin(name, caps)
		byName[name] = p
		pins = append(pins, p)
	}
	return hal.NewPinSet(pins...), byName
}

func TestControlsAttach(t *testing.T) {
	g, pins := newControlPins(t)
	mb := kernel.NewMailbox[Event](16)

	c, err := Attach(g, Pins{}, mb)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	defer c.Detach()

	// Encoder clockwise: B high while A falls.
	pins["GP2"].Drive(false)
	pins["GP2"].Drive(true)
	// Counter-clockwise: B low while A falls.
	pins["GP3"].Drive(false)
	pins["GP2"].Drive(false)
	pins["GP2"].Drive(true)
	pins["GP3"].Drive(true)
	// Escape press and release.
	pins["GP7"].Drive(false)
	pins["GP7"].Drive(true)
	// PTT press and release.
	pins["GP15"].Drive(false)
	pins["GP15"].Drive(true)

	want := []Event{Increment, Decrement, Submenu, PTTOn, PTTOff}
	var got []Event
	mb.Drain(func(ev Event) { got = append(got, ev) })
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestControlsAttachMissingPin(t *testing.T) {
	g, _ := newControlPins(t)
	mb := kernel.NewMailbox[Event](4)
	pins := DefaultPins()
	pins.PTT = "GP28"
	if _, err := Attach(g, pins, mb); err == nil {
		t.Fatalf("Attach with missing pin: err = nil, want error")
	}
}

func TestControlsDropWhenFull(t *testing.T) {
	g, pins := newControlPins(t)
	mb := kernel.NewMailbox[Event](2)
	if _, err := Attach(g, Pins{}, mb); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	for i := 0; i < 5; i++ {
		pins["GP6"].Drive(false)
		pins["GP6"].Drive(true)
	}
	if got := mb.Dropped(); got != 3 {
		t.Fatalf("Dropped() = %d, want 3", got)
	}
}

func TestMedian(t *testing.T) {
	cases := []struct {
		in   []uint16
		want uint16
	}{
		{nil, 0},
		{[]uint16{7}, 7},
		{[]uint16{9, 1, 5}, 5},
		{[]uint16{4, 1, 3, 2}, 3},
		{[]uint16{100, 102, 101, 300, 99}, 101},
	}
	for _, tc := range cases {
		if got := Median(append([]uint16(nil), tc.in...)); got != tc.want {
			t.Fatalf("Median(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

type fakeTouch struct {
	reads []struct {
		x, y uint16
		ok   bool
	}
	i int
}

func (f *fakeTouch) ReadRaw() (uint16, uint16, bool) {
	if f.i >= len(f.reads) {
		return 0, 0, false
	}
	r := f.reads[f.i]
	f.i++
	return r.x, r.y, r.ok
}

func (f *fakeTouch) add(x, y uint16, ok bool) {
	f.reads = append(f.reads, struct {
		x, y uint16
		ok   bool
	}{x, y, ok})
}

func TestSamplerPoll(t *testing.T) {
	var s Sampler

	if _, ok := s.Poll(&fakeTouch{}); ok {
		t.Fatalf("Poll() with no samples ok = true, want false")
	}

	ft := &fakeTouch{}
	ft.add(200, 140, true)
	ft.add(0, 0, false)
	ft.add(202, 150, true)
	ft.add(500, 145, true)
	p, ok := s.Poll(ft)
	if !ok {
		t.Fatalf("Poll() ok = false, want true")
	}
	if p != (Point{X: 202, Y: 145}) {
		t.Fatalf("Poll() = %+v, want {202 145}", p)
	}

	off := &fakeTouch{}
	off.add(330, 10, true)
	if _, ok := s.Poll(off); ok {
		t.Fatalf("Poll() off-panel ok = true, want false")
	}
}

func TestCooldown(t *testing.T) {
	var c Cooldown
	if !c.Tick() {
		t.Fatalf("Tick() with no cooldown = false, want true")
	}
	c.Set(3)
	for i := 0; i < 3; i++ {
		if c.Tick() {
			t.Fatalf("Tick() %d during cooldown = true, want false", i)
		}
	}
	if !c.Tick() {
		t.Fatalf("Tick() after cooldown = false, want true")
	}
	c.Set(0)
	if c.Remaining() != 0 {
		t.Fatalf("Set(0) started a cooldown")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		p    Point
		tune bool
		want Action
	}{
		{"decrement", Point{180, 150}, true, Action{Kind: ActEvent, Event: Decrement}},
		{"increment", Point{220, 150}, true, Action{Kind: ActEvent, Event: Increment}},
		{"submenu", Point{200, 100}, true, Action{Kind: ActEvent, Event: Submenu, Cooldown: 1}},
		{"right", Point{220, 125}, true, Action{Kind: ActEvent, Event: Right, Cooldown: 2}},
		{"left", Point{180, 125}, true, Action{Kind: ActEvent, Event: Left, Cooldown: 2}},
		{"lr row miss", Point{100, 125}, true, Action{Kind: ActNone, Cooldown: 2}},
		{"trace", Point{280, 120}, false, Action{Kind: ActTraceCycle, Cooldown: 3}},
		{"trace below lr row", Point{280, 150}, false, Action{Kind: ActTraceCycle, Cooldown: 3}},
		{"waterfall right", Point{200, 200}, false, Action{Kind: ActTuneOffset, Offset: 20000, Cooldown: 2}},
		{"waterfall left", Point{100, 200}, false, Action{Kind: ActTuneOffset, Offset: -30000, Cooldown: 2}},
		{"palette", Point{160, 180}, false, Action{Kind: ActPaletteToggle, Cooldown: 5}},
		{"fft gain", Point{64, 155}, false, Action{Kind: ActFFTGain, Value: 64}},
		{"step 1", Point{40, 30}, true, Action{Kind: ActStepCursor, Value: 1, Cooldown: 2}},
		{"step 6", Point{210, 30}, true, Action{Kind: ActStepCursor, Value: 6, Cooldown: 2}},
		{"round khz", Point{270, 30}, true, Action{Kind: ActRoundKHz, Cooldown: 2}},
		{"step gap", Point{150, 30}, true, Action{Kind: ActNone, Cooldown: 2}},
		{"mode in tune", Point{270, 60}, true, Action{Kind: ActModeCycle, Cooldown: 5}},
		{"mode outside tune", Point{270, 60}, false, Action{}},
		{"nothing", Point{5, 5}, true, Action{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.p, tc.tune); got != tc.want {
				t.Fatalf("Classify(%+v, %v) = %+v, want %+v", tc.p, tc.tune, got, tc.want)
			}
		})
	}
}
