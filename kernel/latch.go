package kernel

import "sync/atomic"

// Latch hands one buffer at a time from a single producer to a single
// consumer.
//
// The producer fills the buffer only while the ready flag is clear and sets
// it when done; the consumer reads while the flag is set and clears it when
// done. A buffer the consumer has not released is never overwritten: the
// producer's publish is skipped instead.
type Latch[T any] struct {
	ready   atomic.Bool
	buf     T
	skipped atomic.Uint32
}

// Publish lets fill write the buffer in place and marks it ready. It
// returns false without calling fill if the previous value has not been
// consumed yet.
func (l *Latch[T]) Publish(fill func(*T)) bool {
	if l.ready.Load() {
		l.skipped.Add(1)
		return false
	}
	fill(&l.buf)
	l.ready.Store(true)
	return true
}

// Consume passes the ready buffer to read and then releases it. It returns
// false if nothing was published since the last Consume.
func (l *Latch[T]) Consume(read func(*T)) bool {
	if !l.ready.Load() {
		return false
	}
	read(&l.buf)
	l.ready.Store(false)
	return true
}

// Ready reports whether a published value is waiting.
func (l *Latch[T]) Ready() bool { return l.ready.Load() }

// Skipped returns the number of refused publishes.
func (l *Latch[T]) Skipped() uint32 { return l.skipped.Load() }
