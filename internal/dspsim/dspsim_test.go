package dspsim

import (
	"testing"

	"usdr/hmi/display"
	"usdr/hmi/radio"
	"usdr/hmi/waterfall"
	"usdr/kernel"
)

func newSim(stations []Station) (*Sim, *kernel.Latch[display.Telemetry]) {
	var l kernel.Latch[display.Telemetry]
	return New(&l, stations, 1), &l
}

func consume(t *testing.T, l *kernel.Latch[display.Telemetry]) display.Telemetry {
	t.Helper()
	var tel display.Telemetry
	if !l.Consume(func(p *display.Telemetry) { tel = *p }) {
		t.Fatal("no frame published")
	}
	return tel
}

func TestModelDrivesSim(t *testing.T) {
	s, _ := newSim(nil)
	radio.NewModel(nil, radio.StartBand, radio.Rig{Synth: s, Relay: s, DSP: s})

	got := s.Settings()
	if got.Freq != 870_000 || got.Phase != radio.SynthPhase || got.Mode != radio.ModeAM {
		t.Fatalf("Settings() = %+v", got)
	}
	if got.Atten != 3 || got.AGC != radio.AGCFast {
		t.Fatalf("Settings() = %+v, want 0dB and fast AGC", got)
	}
}

func TestCarrierLandsInColumn(t *testing.T) {
	s, l := newSim([]Station{{Hz: 880_000, Amp: 1}})
	s.SetFreq(radio.SynthMultiplier * 870_000)

	if !s.Step() {
		t.Fatal("Step() = false, want true")
	}
	tel := consume(t, l)

	peak := 0
	for x, v := range tel.FFT {
		if v > tel.FFT[peak] {
			peak = x
		}
	}
	// 10 kHz above the tuned frequency at 500 Hz per column.
	if want := waterfall.Columns/2 + 20; peak != want {
		t.Fatalf("peak column = %d, want %d", peak, want)
	}
	// Unit carrier at gain 32 is 10 counts, give or take the noise floor.
	if v := tel.FFT[peak]; v < 9 || v > 11 {
		t.Fatalf("peak value = %d, want 10±1", v)
	}
}

func TestStepSkipsUnconsumedFrame(t *testing.T) {
	s, l := newSim(nil)
	if !s.Step() {
		t.Fatal("first Step() = false")
	}
	if s.Step() {
		t.Fatal("second Step() overwrote an unconsumed frame")
	}
	if l.Skipped() != 1 || s.Frames() != 1 {
		t.Fatalf("Skipped() = %d, Frames() = %d, want 1 and 1", l.Skipped(), s.Frames())
	}
	consume(t, l)
	if !s.Step() {
		t.Fatal("Step() after Consume = false")
	}
}

func TestEnvelopeFollowsAttenuator(t *testing.T) {
	s, l := newSim([]Station{{Hz: 870_000, Amp: 1}})
	s.SetFreq(radio.SynthMultiplier * 870_000)

	s.Step()
	if got := consume(t, l).Envelope; got != envelopeScale {
		t.Fatalf("Envelope at 0dB = %d, want %d", got, envelopeScale)
	}

	s.SetAttenuator(0)
	s.Step()
	if got := consume(t, l).Envelope; got != 9 {
		t.Fatalf("Envelope at -30dB = %d, want 9", got)
	}
}

func TestTransmitFrames(t *testing.T) {
	s, l := newSim(nil)
	s.SetTransmit(true)
	for i := 0; i < 20; i++ {
		s.Step()
		tel := consume(t, l)
		if tel.Envelope != 0 || tel.ForwardADC < 0 || tel.ForwardADC > 210 {
			t.Fatalf("frame %d: Envelope = %d, ForwardADC = %d", i, tel.Envelope, tel.ForwardADC)
		}
	}
}
