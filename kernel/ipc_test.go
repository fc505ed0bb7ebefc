package kernel

import (
	"runtime"
	"sync"
	"testing"
)

func TestMailboxTryRecvEmpty(t *testing.T) {
	mb := NewMailbox[int](4)

	_, ok := mb.TryRecv()
	if ok {
		t.Fatalf("TryRecv() ok = true, want false")
	}
}

func TestMailboxRoundsUpToPowerOfTwo(t *testing.T) {
	if got := NewMailbox[int](5).Cap(); got != 8 {
		t.Fatalf("Cap() = %d, want 8", got)
	}
	if got := NewMailbox[int](DefaultMailboxSlots).Cap(); got != DefaultMailboxSlots {
		t.Fatalf("Cap() = %d, want %d", got, DefaultMailboxSlots)
	}
}

func TestMailboxTrySendFull(t *testing.T) {
	mb := NewMailbox[int](8)

	for i := 0; i < mb.Cap(); i++ {
		if ok := mb.TrySend(i); !ok {
			t.Fatalf("TrySend() ok = false at slot %d, want true", i)
		}
	}
	if ok := mb.TrySend(99); ok {
		t.Fatalf("TrySend() ok = true when full, want false")
	}
	if got := mb.Dropped(); got != 1 {
		t.Fatalf("Dropped() = %d, want 1", got)
	}

	for i := 0; i < mb.Cap(); i++ {
		v, ok := mb.TryRecv()
		if !ok {
			t.Fatalf("TryRecv() ok = false at slot %d, want true", i)
		}
		if v != i {
			t.Fatalf("TryRecv() = %d, want %d", v, i)
		}
	}
}

func TestMailboxWrapsAround(t *testing.T) {
	mb := NewMailbox[int](4)
	next := 0
	for round := 0; round < 10; round++ {
		for i := 0; i < 3; i++ {
			if !mb.TrySend(round*3 + i) {
				t.Fatalf("TrySend() failed in round %d", round)
			}
		}
		mb.Drain(func(v int) {
			if v != next {
				t.Fatalf("Drain() got %d, want %d", v, next)
			}
			next++
		})
	}
	if next != 30 {
		t.Fatalf("received %d values, want 30", next)
	}
}

func TestMailboxConcurrentProducers(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(1)
	defer runtime.GOMAXPROCS(oldProcs)

	const (
		producers = 4
		perProd   = 10_000
		total     = producers * perProd
	)

	mb := NewMailbox[uint32](DefaultMailboxSlots)

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(producers)
	for producerID := 0; producerID < producers; producerID++ {
		go func(producerID int) {
			defer wg.Done()
			<-start
			for i := 0; i < perProd; i++ {
				id := uint32(producerID*perProd + i)
				for !mb.TrySend(id) {
					runtime.Gosched()
				}
			}
		}(producerID)
	}
	close(start)

	seen := make([]bool, total)
	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	for received := 0; received < total; {
		id, ok := mb.TryRecv()
		if !ok {
			runtime.Gosched()
			continue
		}
		if int(id) >= total {
			t.Fatalf("TryRecv() id = %d, want < %d", id, total)
		}
		if seen[id] {
			t.Fatalf("TryRecv() duplicate id %d", id)
		}
		seen[id] = true

		// Each producer's values must arrive in the order it sent them.
		p, seq := int(id)/perProd, int(id)%perProd
		if seq <= last[p] {
			t.Fatalf("producer %d: got seq %d after %d", p, seq, last[p])
		}
		last[p] = seq
		received++
	}

	wg.Wait()
}
