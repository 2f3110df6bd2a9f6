package kernel

import (
	"runtime"
	"sync"
	"testing"
)

func TestMailboxTryRecvEmpty(t *testing.T) {
	var mb Mailbox

	_, ok := mb.TryRecv()
	if ok {
		t.Fatalf("TryRecv() ok = true, want false")
	}
}

func TestMailboxTrySendFull(t *testing.T) {
	var mb Mailbox

	for i := 0; i < mailboxSlots; i++ {
		if ok := mb.TrySend(Event{Kind: EventLoop, Beat: uint32(i)}); !ok {
			t.Fatalf("TrySend() ok = false at slot %d, want true", i)
		}
	}
	if ok := mb.TrySend(Event{Kind: EventLoop}); ok {
		t.Fatalf("TrySend() ok = true when full, want false")
	}

	for i := 0; i < mailboxSlots; i++ {
		ev, ok := mb.TryRecv()
		if !ok {
			t.Fatalf("TryRecv() ok = false at slot %d, want true", i)
		}
		if ev.Beat != uint32(i) {
			t.Fatalf("TryRecv() Beat = %d, want %d", ev.Beat, i)
		}
	}
}

func TestMailboxProducerConsumer(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(2)
	defer runtime.GOMAXPROCS(oldProcs)

	const total = 50_000

	var mb Mailbox
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			for !mb.TrySend(Event{Kind: EventLoop, Sample: uint32(i)}) {
				runtime.Gosched()
			}
		}
	}()

	for i := 0; i < total; i++ {
		ev := mb.Recv()
		if ev.Sample != uint32(i) {
			t.Fatalf("Recv() Sample = %d, want %d", ev.Sample, i)
		}
	}
	wg.Wait()
}

func TestSystemPostDropsWhenFull(t *testing.T) {
	s := NewSystem()
	for i := 0; i < mailboxSlots+3; i++ {
		s.Post(Event{Kind: EventUnderrun})
	}
	if got := s.Dropped(); got != 3 {
		t.Fatalf("Dropped() = %d, want 3", got)
	}

	n := 0
	for {
		if _, ok := s.Poll(); !ok {
			break
		}
		n++
	}
	if n != mailboxSlots {
		t.Fatalf("Poll() returned %d events, want %d", n, mailboxSlots)
	}
}

func TestBeatCounter(t *testing.T) {
	var b BeatCounter
	if got := b.Inc(); got != 1 {
		t.Fatalf("Inc() = %d, want 1", got)
	}
	b.Inc()
	if got := b.Load(); got != 2 {
		t.Fatalf("Load() = %d, want 2", got)
	}
	b.Reset()
	if got := b.Load(); got != 0 {
		t.Fatalf("Load() after Reset() = %d, want 0", got)
	}
}
