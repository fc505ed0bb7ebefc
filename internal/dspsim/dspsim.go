// Package dspsim stands in for the signal-processing pipeline on a host. It
// is the rig the radio model drives (synthesizer, relays and DSP controls)
// and produces telemetry frames from a synthetic band: a few carriers plus
// noise, transformed with an FFT into waterfall lines.
package dspsim

import (
	"context"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"sync"
	"time"

	"usdr/hmi/display"
	"usdr/hmi/radio"
	"usdr/hmi/scope"
	"usdr/hmi/waterfall"
	"usdr/kernel"

	"gonum.org/v1/gonum/dsp/fourier"
)

// SampleRate makes one FFT bin 500 Hz wide across the waterfall.
const SampleRate = waterfall.Columns * 500

// Station is a carrier on the simulated band.
type Station struct {
	Hz  uint32
	Amp float64
}

// DefaultStations puts a few carriers where the factory band table starts.
func DefaultStations() []Station {
	return []Station{
		{Hz: 810_000, Amp: 0.3},
		{Hz: 870_000, Amp: 1.0},
		{Hz: 900_000, Amp: 0.5},
		{Hz: 1_910_000, Amp: 0.2},
		{Hz: 3_790_000, Amp: 0.4},
		{Hz: 7_074_000, Amp: 0.6},
		{Hz: 7_210_000, Amp: 0.3},
		{Hz: 14_074_000, Amp: 0.8},
		{Hz: 14_230_000, Amp: 0.2},
		{Hz: 27_455_000, Amp: 0.5},
	}
}

// Relay code to linear gain: -30, -20, -10, 0 dB and +10 dB preamp.
var attenGain = [...]float64{0.0316, 0.1, 0.316, 1, 3.16}

// envelopeScale maps a full-scale carrier at 0 dB to an S8 envelope sample.
const envelopeScale = 300

// Sim is safe for concurrent use: the radio model configures it from the
// scheduler goroutine while Run produces frames.
type Sim struct {
	mu       sync.Mutex
	stations []Station
	freq     uint32
	phase    uint16
	atten    uint8
	filter   uint8
	mode     radio.Mode
	agc      radio.AGC
	vox      radio.VOX
	tx       bool
	gain     int
	noise    float64

	fft    *fourier.CmplxFFT
	in     []complex128
	out    []complex128
	rng    *rand.Rand
	t      float64
	peak   float64
	frames uint64

	latch *kernel.Latch[display.Telemetry]
}

// New returns a simulator publishing into out.
func New(out *kernel.Latch[display.Telemetry], stations []Station, seed uint64) *Sim {
	if stations == nil {
		stations = DefaultStations()
	}
	return &Sim{
		stations: stations,
		atten:    3,
		gain:     32,
		noise:    0.02,
		fft:      fourier.NewCmplxFFT(waterfall.Columns),
		in:       make([]complex128, waterfall.Columns),
		out:      make([]complex128, waterfall.Columns),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		latch:    out,
	}
}

// SetFreq takes the synthesizer output, SynthMultiplier times the tuned
// frequency.
func (s *Sim) SetFreq(hz uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.freq = hz / radio.SynthMultiplier
	return nil
}

// SetPhase records the quadrature phase.
func (s *Sim) SetPhase(deg uint16) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = deg
	return nil
}

// SetAttenuator selects the front-end gain by relay code.
func (s *Sim) SetAttenuator(code uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.atten = min(code, uint8(len(attenGain)-1))
	return nil
}

// SetFilter records the band-pass filter code.
func (s *Sim) SetFilter(code uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = code
	return nil
}

func (s *Sim) SetMode(m radio.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	return nil
}

func (s *Sim) SetAGC(a radio.AGC) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agc = a
	return nil
}

func (s *Sim) SetVOX(v radio.VOX) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vox = v
	return nil
}

// SetTransmit switches between receive frames and forward-power frames.
func (s *Sim) SetTransmit(tx bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tx = tx
}

// SetFFTGain scales the waterfall lines.
func (s *Sim) SetFFTGain(g int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gain = g
}

// Settings is what the radio model last pushed.
type Settings struct {
	Freq   uint32
	Phase  uint16
	Atten  uint8
	Filter uint8
	Mode   radio.Mode
	AGC    radio.AGC
	VOX    radio.VOX
	TX     bool
}

// Settings returns the current configuration. Freq is the tuned frequency
// derived from the synthesizer output.
func (s *Sim) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Settings{
		Freq:   s.freq,
		Phase:  s.phase,
		Atten:  s.atten,
		Filter: s.filter,
		Mode:   s.mode,
		AGC:    s.agc,
		VOX:    s.vox,
		TX:     s.tx,
	}
}

// Step computes one frame and publishes it. It reports false when the
// previous frame has not been consumed yet.
func (s *Sim) Step() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.latch.Publish(s.fill) {
		return false
	}
	s.frames++
	return true
}

// Frames returns the number of published frames.
func (s *Sim) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Run steps every interval until ctx is done.
func (s *Sim) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			s.Step()
		}
	}
}

func (s *Sim) fill(tel *display.Telemetry) {
	if s.tx {
		s.fillTX(tel)
		return
	}
	s.sample()

	s.fft.Coefficients(s.out, s.in)
	n := float64(len(s.in))
	scale := float64(s.gain) / 32 / 0.1
	for x := range tel.FFT {
		k := (x - waterfall.Columns/2 + len(s.out)) % len(s.out)
		v := cmplx.Abs(s.out[k]) / n * scale
		tel.FFT[x] = uint8(min(math.Round(v), 255))
	}
	tel.ForwardADC = 0
	tel.Envelope = s.envelope()
	s.fillTraces(tel)
}

// sample synthesizes one block of baseband I/Q around the tuned frequency.
func (s *Sim) sample() {
	g := attenGain[s.atten]
	for i := range s.in {
		s.in[i] = complex(s.rng.NormFloat64()*s.noise, s.rng.NormFloat64()*s.noise)
	}
	for _, st := range s.stations {
		off := float64(int64(st.Hz) - int64(s.freq))
		if math.Abs(off) >= SampleRate/2 {
			continue
		}
		for i := range s.in {
			ph := 2 * math.Pi * off * (s.t + float64(i)/SampleRate)
			s.in[i] += complex(st.Amp*g, 0) * cmplx.Exp(complex(0, ph))
		}
	}
	s.t += float64(len(s.in)) / SampleRate
}

// envelope is the strongest carrier inside the 3 kHz passband as seen
// behind the attenuator; the S-meter corrects for the attenuator.
func (s *Sim) envelope() int32 {
	var amp float64
	for _, st := range s.stations {
		if d := int64(st.Hz) - int64(s.freq); d > -3000 && d < 3000 {
			amp = max(amp, st.Amp)
		}
	}
	return int32(amp * attenGain[s.atten] * envelopeScale)
}

var agcGain = [radio.NumAGC]int16{20, 12, 6}

func (s *Sim) fillTraces(tel *display.Telemetry) {
	tr := &tel.Traces
	s.peak *= 0.9
	for i := 0; i < scope.TraceLen; i++ {
		c := s.in[i%len(s.in)] * 20
		tr[scope.TraceI][i] = clamp16(real(c))
		tr[scope.TraceQ][i] = clamp16(imag(c))
		env := cmplx.Abs(c)
		tr[scope.TraceEnvelope][i] = clamp16(env)
		s.peak = max(s.peak, env)
		tr[scope.TracePeak][i] = clamp16(s.peak)
		tr[scope.TraceMic][i] = 0
		tr[scope.TraceGain][i] = agcGain[min(s.agc, radio.NumAGC-1)]
	}
}

func (s *Sim) fillTX(tel *display.Telemetry) {
	// Speech-like power swing over a couple of seconds.
	s.t += 0.1
	swing := 0.5 + 0.5*math.Sin(2*math.Pi*s.t/2)
	tel.ForwardADC = int(swing * 210)
	tel.Envelope = 0
	for i := 0; i < scope.TraceLen; i++ {
		mic := 20 * swing * math.Sin(2*math.Pi*float64(i)/24)
		tel.Traces[scope.TraceMic][i] = clamp16(mic)
		tel.Traces[scope.TraceI][i] = 0
		tel.Traces[scope.TraceQ][i] = 0
	}
}

func clamp16(v float64) int16 {
	return int16(min(max(math.Round(v), -scope.Max-5), scope.Max+5))
}
