// Package sched runs the operator interface at a fixed cadence on top of a
// free-running millisecond counter.
package sched

// DefaultInterval is the main loop period in milliseconds.
const DefaultInterval = 100

// Scheduler fires once per Interval. It keeps an absolute target, so a late
// tick does not shift the cadence; the target advances by exactly one
// interval per run.
type Scheduler struct {
	Interval uint32

	target  uint32
	started bool

	runs     uint64
	overruns uint64
}

// Poll runs fn when now has reached the target. now is a 32-bit millisecond
// counter that may wrap. It reports whether fn ran.
func (s *Scheduler) Poll(now uint32, fn func()) bool {
	iv := s.interval()
	if !s.started {
		s.target = now
		s.started = true
	}
	late := now - s.target
	if int32(late) < 0 {
		return false
	}
	if late >= 2*iv {
		s.overruns++
	}
	s.target += iv
	s.runs++
	if fn != nil {
		fn()
	}
	return true
}

// Next returns the millisecond count of the next run.
func (s *Scheduler) Next() uint32 { return s.target }

// Runs returns how many times fn ran.
func (s *Scheduler) Runs() uint64 { return s.runs }

// Overruns returns how many runs started two or more intervals late.
func (s *Scheduler) Overruns() uint64 { return s.overruns }

func (s *Scheduler) interval() uint32 {
	if s.Interval == 0 {
		return DefaultInterval
	}
	return s.Interval
}
