// Package kernel holds the state shared between the audio sample clock and
// the render loop.
package kernel

// System is the process-lifetime shared state. It is created once at startup
// and handed to both the audio context and the render loop.
type System struct {
	beats  BeatCounter
	events Mailbox
	// dropped counts events lost to a full mailbox.
	dropped BeatCounter
}

// NewSystem creates the shared state.
func NewSystem() *System {
	return &System{}
}

// Beats returns the shared beat counter.
func (s *System) Beats() *BeatCounter { return &s.beats }

// Post queues an event for the render loop. It never blocks; when the mailbox
// is full the event is counted and dropped.
func (s *System) Post(ev Event) {
	if !s.events.TrySend(ev) {
		s.dropped.Inc()
	}
}

// Poll returns the next pending event, if any.
func (s *System) Poll() (Event, bool) {
	return s.events.TryRecv()
}

// Dropped returns the number of events lost so far.
func (s *System) Dropped() uint32 { return s.dropped.Load() }
