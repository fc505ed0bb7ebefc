package kernel

import (
	"sync/atomic"
)

// DefaultMailboxSlots sizes the input event mailbox. A full mailbox drops
// events, so it only needs to cover the bursts one tick can collect.
const DefaultMailboxSlots = 32

type slot[T any] struct {
	seq atomic.Uint32
	v   T
}

// Mailbox is a bounded multi-producer, single-consumer queue.
//
// Producers may run in interrupt context: TrySend never blocks and never
// allocates. Each slot carries a sequence number, so a value becomes visible
// to the consumer only after the producer that reserved the slot has
// finished writing it.
type Mailbox[T any] struct {
	_       [0]func() // prevent accidental copying.
	head    atomic.Uint32
	tail    atomic.Uint32
	mask    uint32
	slots   []slot[T]
	dropped atomic.Uint32
}

// NewMailbox returns a mailbox holding up to n values, rounded up to a
// power of two.
func NewMailbox[T any](n int) *Mailbox[T] {
	size := uint32(1)
	for int(size) < n {
		size <<= 1
	}
	mb := &Mailbox[T]{
		mask:  size - 1,
		slots: make([]slot[T], size),
	}
	for i := range mb.slots {
		mb.slots[i].seq.Store(uint32(i))
	}
	return mb
}

// Cap returns the number of slots.
func (mb *Mailbox[T]) Cap() int { return len(mb.slots) }

// TrySend enqueues v, returning false (and counting a drop) when full.
func (mb *Mailbox[T]) TrySend(v T) bool {
	for {
		pos := mb.head.Load()
		s := &mb.slots[pos&mb.mask]
		seq := s.seq.Load()
		switch diff := int32(seq - pos); {
		case diff == 0:
			if !mb.head.CompareAndSwap(pos, pos+1) {
				continue
			}
			s.v = v
			s.seq.Store(pos + 1)
			return true
		case diff < 0:
			mb.dropped.Add(1)
			return false
		}
		// Another producer took this slot; retry with a fresh head.
	}
}

// TryRecv dequeues one value. Only one goroutine may receive.
func (mb *Mailbox[T]) TryRecv() (T, bool) {
	var zero T
	pos := mb.tail.Load()
	s := &mb.slots[pos&mb.mask]
	if int32(s.seq.Load()-(pos+1)) < 0 {
		return zero, false
	}
	v := s.v
	s.v = zero
	s.seq.Store(pos + mb.mask + 1)
	mb.tail.Store(pos + 1)
	return v, true
}

// Drain passes every queued value to fn in FIFO order and returns how many
// were delivered.
func (mb *Mailbox[T]) Drain(fn func(T)) int {
	n := 0
	for {
		v, ok := mb.TryRecv()
		if !ok {
			return n
		}
		fn(v)
		n++
	}
}

// Dropped returns the number of values refused because the mailbox was full.
func (mb *Mailbox[T]) Dropped() uint32 { return mb.dropped.Load() }
