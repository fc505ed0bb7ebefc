package display

import (
	"reflect"
	"strings"
	"testing"

	"usdr/hmi/menu"
	"usdr/hmi/radio"
	"usdr/hmi/render"
	"usdr/hmi/render/rendertest"
	"usdr/hmi/waterfall"
)

func newTestComposer(t *testing.T, opts Options) (*Composer, *rendertest.Recorder, *menu.Machine) {
	t.Helper()
	rec := rendertest.New()
	m := menu.New(radio.NewModel(nil, radio.StartBand, radio.Rig{}))
	return New(rec, opts), rec, m
}

func largeTexts(rec *rendertest.Recorder) []string {
	var out []string
	for _, op := range rec.Filter(rendertest.Text) {
		if op.Style.Font == render.FontLarge {
			out = append(out, op.Text)
		}
	}
	return out
}

func TestFreqText(t *testing.T) {
	cases := []struct {
		hz   uint32
		want string
	}{
		{870_000, "  870.00"},
		{7_074_005, " 7074.01"},
		{14_200_000, "14200.00"},
		{0, "    0.00"},
	}
	for _, c := range cases {
		if got := FreqText(c.hz); got != c.want {
			t.Fatalf("FreqText(%d) = %q, want %q", c.hz, got, c.want)
		}
	}
}

func TestDiffDigits(t *testing.T) {
	if got := DiffDigits("  870.00", "  871.00"); !reflect.DeepEqual(got, []int{4}) {
		t.Fatalf("DiffDigits() = %v, want [4]", got)
	}
	if got := DiffDigits("", "ab"); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("DiffDigits(empty) = %v, want [0 1]", got)
	}
	if got := DiffDigits("abc", "abc"); got != nil {
		t.Fatalf("DiffDigits(same) = %v, want nil", got)
	}
}

func TestCursorCellSkipsPoint(t *testing.T) {
	for step, want := range map[int]int{1: 1, 4: 4, 5: 6, 6: 7} {
		if got := cursorCell(step); got != want {
			t.Fatalf("cursorCell(%d) = %d, want %d", step, got, want)
		}
	}
}

func TestFirstComposeDrawsEverything(t *testing.T) {
	c, rec, m := newTestComposer(t, Options{})
	c.Compose(&m.State, m.Radio, nil)

	if got := strings.Join(largeTexts(rec), ""); got != FreqText(m.Radio.Frequency()) {
		t.Fatalf("frequency cells = %q, want %q", got, FreqText(m.Radio.Frequency()))
	}
	for _, want := range []string{"AM Radio: 520-2000 KHz", "BPF: <2.5MHz", "AGC:", "ATTEN.:", "VOX:", "FFTGAIN:", "RX", "AM"} {
		if !rec.HasText(want) {
			t.Fatalf("first frame is missing %q; drew %q", want, rec.Texts())
		}
	}
	if rec.Count(rendertest.BlitRow) != 0 {
		t.Fatal("waterfall drawn without telemetry")
	}
	if m.State.TXChanged {
		t.Fatal("TXChanged not cleared")
	}
	if s := c.Snapshot(); !s.Valid || s.FreqHz != m.Radio.Frequency() || s.Band != radio.StartBand {
		t.Fatalf("Snapshot() = %+v", s)
	}
}

func TestUnchangedStateDrawsNothing(t *testing.T) {
	c, rec, m := newTestComposer(t, Options{})
	c.Compose(&m.State, m.Radio, nil)
	rec.Reset()

	c.Compose(&m.State, m.Radio, nil)
	if len(rec.Ops) != 0 {
		t.Fatalf("second frame drew %d ops: %+v", len(rec.Ops), rec.Ops)
	}
}

func TestTuneRepaintsChangedDigits(t *testing.T) {
	c, rec, m := newTestComposer(t, Options{})
	c.Compose(&m.State, m.Radio, nil)
	rec.Reset()

	m.Radio.Tune(1)
	c.Compose(&m.State, m.Radio, nil)

	if got := largeTexts(rec); !reflect.DeepEqual(got, []string{"1"}) {
		t.Fatalf("repainted cells = %q, want [1]", got)
	}
	if rec.Count(rendertest.FillTriangle) != 1 || !rec.HasText("800") {
		t.Fatalf("scale not redrawn: %q", rec.Texts())
	}
}

func TestStepCursorMoves(t *testing.T) {
	c, rec, m := newTestComposer(t, Options{})
	c.Compose(&m.State, m.Radio, nil)
	rec.Reset()

	m.Radio.SetStepCursor(5)
	c.Compose(&m.State, m.Radio, nil)

	fills := rec.Filter(rendertest.FillRect)
	if len(fills) != 2 {
		t.Fatalf("cursor fills = %+v, want erase and draw", fills)
	}
	if fills[0].Color != render.Background || fills[1].Color != render.Blue {
		t.Fatalf("cursor colours = %v, %v", fills[0].Color, fills[1].Color)
	}
	if got, want := fills[1].X-fills[0].X, 2*c.lay.cellW; got != want {
		t.Fatalf("cursor moved %d px, want %d", got, want)
	}
}

func TestTopLineShowsSubmenu(t *testing.T) {
	c, rec, m := newTestComposer(t, Options{})
	c.Compose(&m.State, m.Radio, nil)
	rec.Reset()

	m.State.Menu = menu.Mode
	m.State.Option = int(radio.ModeLSB)
	c.Compose(&m.State, m.Radio, nil)
	if !rec.HasText("Set Mode: LSB") {
		t.Fatalf("top line = %q", rec.Texts())
	}

	rec.Reset()
	m.State.Menu = menu.Tune
	m.State.TopDirty = true
	c.Compose(&m.State, m.Radio, nil)
	if m.State.TopDirty {
		t.Fatal("TopDirty not cleared")
	}
	if fills := rec.Filter(rendertest.FillRect); len(fills) == 0 || fills[0].Y != 0 || fills[0].W != powerX {
		t.Fatalf("top line not cleared: %+v", fills)
	}
}

func TestTelemetryReceive(t *testing.T) {
	c, rec, m := newTestComposer(t, Options{})
	tel := &Telemetry{Envelope: 100}
	for i := range tel.FFT {
		tel.FFT[i] = 10
	}
	c.Compose(&m.State, m.Radio, tel)

	if got := rec.Count(rendertest.BlitRow); got != waterfall.Lines {
		t.Fatalf("waterfall rows = %d, want %d", got, waterfall.Lines)
	}
	if got := c.smeter.Level(); got == 0 {
		t.Fatal("S-meter not driven")
	}
	if st := c.Stats(); st.Telemetry != 1 || st.WaterfallRow != waterfall.Lines {
		t.Fatalf("Stats() = %+v", st)
	}
}

func TestTelemetryTransmit(t *testing.T) {
	c, rec, m := newTestComposer(t, Options{})
	c.Compose(&m.State, m.Radio, nil)
	rec.Reset()

	m.State.TX = true
	m.State.TXChanged = true
	c.Compose(&m.State, m.Radio, &Telemetry{ForwardADC: 200})

	if rec.Count(rendertest.BlitRow) != 0 {
		t.Fatal("waterfall drawn while transmitting")
	}
	if !rec.HasText("TX") || !rec.HasText("PWR: 10") {
		t.Fatalf("transmit frame = %q", rec.Texts())
	}
	if got := c.txpower.Level(); got != 10 {
		t.Fatalf("power bargraph = %d, want 10", got)
	}

	// A lower reading inside the hold time leaves the peak on screen.
	rec.Reset()
	c.Compose(&m.State, m.Radio, &Telemetry{ForwardADC: 45})
	if rec.HasText("PWR:") {
		t.Fatalf("peak replaced inside hold time: %q", rec.Texts())
	}

	rec.Reset()
	m.State.TX = false
	m.State.TXChanged = true
	c.Compose(&m.State, m.Radio, &Telemetry{})
	if !rec.HasText("RX") || rec.Count(rendertest.BlitRow) != waterfall.Lines {
		t.Fatalf("receive frame = %q", rec.Texts())
	}
}

func TestPaletteFollowsState(t *testing.T) {
	c, rec, m := newTestComposer(t, Options{})
	m.State.Palette = menu.PaletteFire
	tel := &Telemetry{}
	tel.FFT[0] = 10
	c.Compose(&m.State, m.Radio, tel)

	rows := rec.Filter(rendertest.BlitRow)
	last := rows[len(rows)-1].Row
	if want := waterfall.Fire[waterfall.Magnitude(10)]; last[0] != want {
		t.Fatalf("newest row pixel = %#04x, want %#04x", last[0], want)
	}
}

func TestStaticInvalidates(t *testing.T) {
	c, rec, m := newTestComposer(t, Options{Touch: true})
	c.Compose(&m.State, m.Radio, nil)
	rec.Reset()

	c.Static()
	for _, want := range []string{"I+Q", "MC", "PK", "GN", "KHz", "SUBMENU"} {
		if !rec.HasText(want) {
			t.Fatalf("static screen is missing %q", want)
		}
	}
	if c.Snapshot().Valid {
		t.Fatal("Static() kept the snapshot")
	}

	rec.Reset()
	c.Compose(&m.State, m.Radio, nil)
	if len(largeTexts(rec)) != FreqCells {
		t.Fatalf("frequency not fully redrawn: %q", largeTexts(rec))
	}
}

func TestStaticWithoutTouch(t *testing.T) {
	c, rec, _ := newTestComposer(t, Options{})
	c.Static()
	if rec.HasText("SUBMENU") {
		t.Fatal("help box drawn without a touch panel")
	}
}

func TestIntroAndCountdown(t *testing.T) {
	c, rec, _ := newTestComposer(t, Options{Version: "v1.2.3"})
	c.Intro()
	if !rec.HasText("v1.2.3") || !rec.HasText("HF Transceiver") {
		t.Fatalf("intro = %q", rec.Texts())
	}

	rec.Reset()
	c.Countdown(true, 5)
	if !rec.HasText("5") || rec.Count(rendertest.RoundRect) != 1 {
		t.Fatalf("countdown = %+v", rec.Ops)
	}

	rec.Reset()
	c.Countdown(false, 0)
	if rec.Count(rendertest.FillRoundRect) != 1 || len(rec.Texts()) != 0 {
		t.Fatalf("countdown erase = %+v", rec.Ops)
	}
}
