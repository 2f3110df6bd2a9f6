package hal

import (
	"runtime"
	"time"
)

// spinThreshold is how close to a deadline WaitUntil stops sleeping and spins.
const spinThreshold = 200 * time.Microsecond

// monoClock counts microseconds since it was created.
type monoClock struct {
	start time.Time
}

func newMonoClock() *monoClock {
	return &monoClock{start: time.Now()}
}

func (c *monoClock) Micros() uint64 {
	return uint64(time.Since(c.start) / time.Microsecond)
}

func (c *monoClock) WaitUntil(deadline uint64) {
	for {
		now := c.Micros()
		if now >= deadline {
			return
		}
		remain := time.Duration(deadline-now) * time.Microsecond
		if remain > spinThreshold {
			time.Sleep(remain - spinThreshold)
			continue
		}
		runtime.Gosched()
	}
}

func (c *monoClock) DelayMicros(us uint32) {
	c.WaitUntil(c.Micros() + uint64(us))
}

// samplePacer counts samples owed to an output running at a fixed rate.
type samplePacer struct {
	start uint64
	rate  uint64
	done  uint64
}

func newSamplePacer(now uint64, rate uint32) samplePacer {
	return samplePacer{start: now, rate: uint64(rate)}
}

// take returns how many samples are due at now. A backlog larger than max is
// dropped and reported, so a stalled consumer resumes in time instead of
// racing to catch up.
func (p *samplePacer) take(now, max uint64) (n, dropped uint64) {
	if now < p.start {
		return 0, 0
	}
	want := (now - p.start) * p.rate / 1_000_000
	if want <= p.done {
		return 0, 0
	}
	n = want - p.done
	if n > max {
		dropped = n - max
		n = max
	}
	p.done = want
	return n, dropped
}

// reportUnderrun tells src about dropped samples if it listens.
func reportUnderrun(src SampleSource, dropped uint64) {
	if dropped == 0 {
		return
	}
	if r, ok := src.(UnderrunReporter); ok {
		r.Underrun(dropped)
	}
}

// alarmSchedule spaces 32-bit microsecond timer alarms one sample period
// apart. The remainder of 1e6/rate is carried so the long-run rate is exact.
type alarmSchedule struct {
	rate   uint32
	period uint32
	rem    uint32
	acc    uint32
	next   uint32
}

// newAlarmSchedule starts at now. rate must be in 1..1_000_000.
func newAlarmSchedule(now, rate uint32) alarmSchedule {
	return alarmSchedule{
		rate:   rate,
		period: 1_000_000 / rate,
		rem:    1_000_000 % rate,
		next:   now,
	}
}

// advance returns the next alarm time. If that time is not after now the
// handler ran late: the missed periods are returned and the schedule restarts
// one period from now, since an alarm in the past would not fire until the
// counter wraps.
func (s *alarmSchedule) advance(now uint32) (next, skipped uint32) {
	s.next += s.period
	s.acc += s.rem
	if s.acc >= s.rate {
		s.acc -= s.rate
		s.next++
	}
	if late := now - s.next; int32(late) >= 0 {
		skipped = late/s.period + 1
		s.next = now + s.period
	}
	return s.next, skipped
}
