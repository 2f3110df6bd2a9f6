package kernel

import (
	"runtime"
	"sync/atomic"
)

// EventKind identifies what the audio context observed.
type EventKind uint8

const (
	EventLoop EventKind = iota + 1
	EventUnderrun
)

func (k EventKind) String() string {
	switch k {
	case EventLoop:
		return "loop"
	case EventUnderrun:
		return "underrun"
	default:
		return "unknown"
	}
}

// Event is a fixed-size notification posted from the audio context.
type Event struct {
	Kind EventKind
	// Beat is the beat count at the time of posting.
	Beat uint32
	// Sample is the track position, or the samples lost for EventUnderrun.
	Sample uint32
}

const mailboxSlots = 8

// Mailbox is a fixed-size single-producer, single-consumer queue.
// It never allocates and the producer never blocks, so it is safe to post
// from the sample clock.
type Mailbox struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	slots [mailboxSlots]Event
}

// TrySend enqueues ev, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(ev Event) bool {
	head := mb.head.Load()
	tail := mb.tail.Load()
	if head-tail >= mailboxSlots {
		return false
	}

	mb.slots[head%mailboxSlots] = ev
	// Publish only after the slot is written.
	mb.head.Store(head + 1)
	return true
}

// TryRecv dequeues one event, returning false if empty.
func (mb *Mailbox) TryRecv() (Event, bool) {
	tail := mb.tail.Load()
	head := mb.head.Load()
	if tail == head {
		return Event{}, false
	}

	ev := mb.slots[tail%mailboxSlots]
	mb.tail.Store(tail + 1)
	return ev, true
}

// Recv blocks until one event is available.
func (mb *Mailbox) Recv() Event {
	for {
		ev, ok := mb.TryRecv()
		if ok {
			return ev
		}
		runtime.Gosched()
	}
}
