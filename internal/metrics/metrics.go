// Package metrics exports the operator interface's runtime counters to
// Prometheus. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "usdr"

// Metrics holds the collectors.
type Metrics struct {
	ticks     prometheus.Counter
	overruns  prometheus.Counter
	tickTime  prometheus.Histogram
	events    *prometheus.CounterVec
	taps      *prometheus.CounterVec
	errors    *prometheus.CounterVec
	digits    prometheus.Counter
	rows      prometheus.Counter
	frequency prometheus.Gauge
	band      prometheus.Gauge
	transmit  prometheus.Gauge
	menu      *prometheus.GaugeVec

	reg prometheus.Registerer
}

// New registers the collectors on reg (the default registerer when nil).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		ticks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Main loop iterations",
		}),
		overruns: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tick_overruns_total",
			Help:      "Main loop iterations started two or more intervals late",
		}),
		tickTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent in one main loop iteration",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_events_total",
			Help:      "Control events handled, by event",
		}, []string{"event"}),
		taps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "touch_taps_total",
			Help:      "Touch taps classified, by action",
		}, []string{"action"}),
		errors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Errors reported, by component",
		}, []string{"component"}),
		digits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "display_digits_total",
			Help:      "Frequency readout cells repainted",
		}),
		rows: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "waterfall_rows_total",
			Help:      "Waterfall rows blitted",
		}),
		frequency: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frequency_hz",
			Help:      "Tuned frequency",
		}),
		band: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "band",
			Help:      "Active band index",
		}),
		transmit: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transmitting",
			Help:      "1 while any transmit request is active",
		}),
		menu: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "menu_active",
			Help:      "1 for the active menu",
		}, []string{"menu"}),
	}
}

// WatchMailbox exports a cumulative drop count read at scrape time.
func (m *Metrics) WatchMailbox(dropped func() uint32) {
	if m == nil || dropped == nil {
		return
	}
	promauto.With(m.reg).NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "input_events_dropped_total",
		Help:      "Control events dropped because the mailbox was full",
	}, func() float64 { return float64(dropped()) })
}

// WatchLatch exports how often the telemetry producer found the latch busy.
func (m *Metrics) WatchLatch(skipped func() uint32) {
	if m == nil || skipped == nil {
		return
	}
	promauto.With(m.reg).NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "telemetry_skipped_total",
		Help:      "Telemetry frames skipped because the previous one was not consumed",
	}, func() float64 { return float64(skipped()) })
}

// RecordTick counts one main loop iteration.
func (m *Metrics) RecordTick(seconds float64, overrun bool) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.tickTime.Observe(seconds)
	if overrun {
		m.overruns.Inc()
	}
}

// RecordEvent counts a handled control event.
func (m *Metrics) RecordEvent(event string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(event).Inc()
}

// RecordTap counts a classified touch tap.
func (m *Metrics) RecordTap(action string) {
	if m == nil {
		return
	}
	m.taps.WithLabelValues(action).Inc()
}

// RecordError counts an error from component.
func (m *Metrics) RecordError(component string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(component).Inc()
}

// RecordDraw adds composer work since the previous call.
func (m *Metrics) RecordDraw(digits, rows uint64) {
	if m == nil {
		return
	}
	m.digits.Add(float64(digits))
	m.rows.Add(float64(rows))
}

// SetRadio publishes the tuning state.
func (m *Metrics) SetRadio(freq uint32, band int, tx bool) {
	if m == nil {
		return
	}
	m.frequency.Set(float64(freq))
	m.band.Set(float64(band))
	if tx {
		m.transmit.Set(1)
	} else {
		m.transmit.Set(0)
	}
}

// SetMenu marks active as the only active menu among all.
func (m *Metrics) SetMenu(active string, all []string) {
	if m == nil {
		return
	}
	for _, name := range all {
		v := 0.0
		if name == active {
			v = 1
		}
		m.menu.WithLabelValues(name).Set(v)
	}
}
