package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordTick(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordTick(0.002, false)
	m.RecordTick(0.3, true)

	if got := testutil.ToFloat64(m.ticks); got != 2 {
		t.Fatalf("ticks = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.overruns); got != 1 {
		t.Fatalf("overruns = %v, want 1", got)
	}
}

func TestLabelledCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordEvent("increment")
	m.RecordEvent("increment")
	m.RecordEvent("enter")
	m.RecordTap("trace")
	m.RecordError("radio")

	if got := testutil.ToFloat64(m.events.WithLabelValues("increment")); got != 2 {
		t.Fatalf("events{increment} = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(m.events); got != 2 {
		t.Fatalf("event series = %d, want 2", got)
	}
	if got := testutil.ToFloat64(m.taps.WithLabelValues("trace")); got != 1 {
		t.Fatalf("taps{trace} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.errors.WithLabelValues("radio")); got != 1 {
		t.Fatalf("errors{radio} = %v, want 1", got)
	}
}

func TestRadioAndMenu(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.SetRadio(7_074_000, 2, true)
	m.SetMenu("band", []string{"tune", "band"})

	want := `
# HELP usdr_frequency_hz Tuned frequency
# TYPE usdr_frequency_hz gauge
usdr_frequency_hz 7.074e+06
# HELP usdr_menu_active 1 for the active menu
# TYPE usdr_menu_active gauge
usdr_menu_active{menu="band"} 1
usdr_menu_active{menu="tune"} 0
# HELP usdr_transmitting 1 while any transmit request is active
# TYPE usdr_transmitting gauge
usdr_transmitting 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(want),
		"usdr_frequency_hz", "usdr_menu_active", "usdr_transmitting")
	if err != nil {
		t.Fatalf("GatherAndCompare: %v", err)
	}
}

func TestWatchFuncs(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	dropped := uint32(3)
	m.WatchMailbox(func() uint32 { return dropped })
	m.WatchLatch(func() uint32 { return 5 })

	dropped = 4
	want := `
# HELP usdr_input_events_dropped_total Control events dropped because the mailbox was full
# TYPE usdr_input_events_dropped_total counter
usdr_input_events_dropped_total 4
# HELP usdr_telemetry_skipped_total Telemetry frames skipped because the previous one was not consumed
# TYPE usdr_telemetry_skipped_total counter
usdr_telemetry_skipped_total 5
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(want),
		"usdr_input_events_dropped_total", "usdr_telemetry_skipped_total")
	if err != nil {
		t.Fatalf("GatherAndCompare: %v", err)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.RecordTick(1, true)
	m.RecordEvent("x")
	m.RecordTap("x")
	m.RecordError("x")
	m.RecordDraw(1, 1)
	m.SetRadio(1, 1, true)
	m.SetMenu("x", []string{"x"})
	m.WatchMailbox(func() uint32 { return 0 })
}
