//go:build !tinygo

package hal

import "time"

const hostTickDur = time.Millisecond

// hostTime turns wall-clock progress between runner steps into 1ms ticks.
type hostTime struct {
	ch  chan uint64
	seq uint64

	last time.Time
	acc  time.Duration
	now  func() time.Time
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1024), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step emits the ticks elapsed since the previous call; the first call
// emits exactly one.
func (t *hostTime) step() {
	now := t.now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.emit(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	n := uint64(t.acc / hostTickDur)
	if n == 0 {
		return
	}
	t.acc %= hostTickDur
	t.emit(n)
}

// emit publishes n ticks. When the consumer lags the channel keeps only
// what fits; the sequence number still advances so no time is lost.
func (t *hostTime) emit(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
