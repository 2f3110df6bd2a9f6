//go:build !tinygo

package hal

import (
	"errors"
	"sync"
	"time"
)

// tickInterval is how often tickAudio catches up with the wall clock.
const tickInterval = time.Millisecond

// tickAudio consumes samples at the source rate without playing them, keeping
// the beat clock running when there is no sound device.
type tickAudio struct {
	clock Clock

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func newTickAudio(clock Clock) *tickAudio {
	return &tickAudio{clock: clock}
}

func (a *tickAudio) Start(src SampleSource) error {
	if src == nil || src.SampleRate() == 0 {
		return errors.New("host audio: invalid source")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stop != nil {
		return errors.New("host audio: already started")
	}
	a.stop = make(chan struct{})
	a.done = make(chan struct{})
	go a.run(src, a.stop, a.done)
	return nil
}

func (a *tickAudio) run(src SampleSource, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	rate := src.SampleRate()
	pacer := newSamplePacer(a.clock.Micros(), rate)
	// At most a tenth of a second of backlog is replayed after a stall.
	maxBacklog := uint64(rate / 10)

	t := time.NewTicker(tickInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			n, dropped := pacer.take(a.clock.Micros(), maxBacklog)
			reportUnderrun(src, dropped)
			for ; n > 0; n-- {
				src.NextSample()
			}
		}
	}
}

func (a *tickAudio) Stop() error {
	a.mu.Lock()
	stop, done := a.stop, a.done
	a.stop, a.done = nil, nil
	a.mu.Unlock()
	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return nil
}
