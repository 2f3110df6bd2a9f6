package hal

import "testing"

func TestMonoClockWaitUntil(t *testing.T) {
	c := newMonoClock()
	deadline := c.Micros() + 3000
	c.WaitUntil(deadline)
	if now := c.Micros(); now < deadline {
		t.Fatalf("Micros() = %d after WaitUntil(%d), want >= deadline", now, deadline)
	}
}

func TestMonoClockWaitUntilPast(t *testing.T) {
	c := newMonoClock()
	c.DelayMicros(100)
	// A deadline in the past returns immediately.
	c.WaitUntil(0)
}

func TestMonoClockMonotonic(t *testing.T) {
	c := newMonoClock()
	prev := c.Micros()
	for i := 0; i < 1000; i++ {
		now := c.Micros()
		if now < prev {
			t.Fatalf("Micros() went backwards: %d after %d", now, prev)
		}
		prev = now
	}
}

func TestSamplePacer(t *testing.T) {
	p := newSamplePacer(1000, 25000)
	tests := []struct {
		now  uint64
		want uint64
	}{
		{1000, 0},
		{2000, 25},
		{2000, 0},
		// 40µs is one sample period at 25 kHz.
		{2040, 1},
		{500, 0},
	}
	for _, tt := range tests {
		n, dropped := p.take(tt.now, 1<<20)
		if n != tt.want || dropped != 0 {
			t.Fatalf("take(%d) = %d, %d, want %d, 0", tt.now, n, dropped, tt.want)
		}
	}
}

func TestSamplePacerDropsBacklog(t *testing.T) {
	p := newSamplePacer(0, 1000)
	if n, dropped := p.take(1_000_000, 100); n != 100 || dropped != 900 {
		t.Fatalf("take(1s, max 100) = %d, %d, want 100, 900", n, dropped)
	}
	if n, dropped := p.take(1_010_000, 100); n != 10 || dropped != 0 {
		t.Fatalf("take(+10ms) = %d, %d, want 10, 0", n, dropped)
	}
}

type underrunSource struct {
	missed uint64
}

func (s *underrunSource) SampleRate() uint32 { return 1000 }
func (s *underrunSource) NextSample() uint8  { return 0 }
func (s *underrunSource) Underrun(n uint64)  { s.missed += n }

func TestReportUnderrun(t *testing.T) {
	src := &underrunSource{}
	reportUnderrun(src, 0)
	reportUnderrun(src, 7)
	if src.missed != 7 {
		t.Fatalf("missed = %d, want 7", src.missed)
	}
}

func TestAlarmScheduleSteady(t *testing.T) {
	s := newAlarmSchedule(0, 25_000)
	now := uint32(0)
	for i := 1; i <= 5; i++ {
		next, skipped := s.advance(now)
		if want := uint32(40 * i); next != want || skipped != 0 {
			t.Fatalf("advance(%d) = %d, %d, want %d, 0", now, next, skipped, want)
		}
		now = next + 2
	}
}

func TestAlarmScheduleCarriesRemainder(t *testing.T) {
	s := newAlarmSchedule(0, 30_000)
	var got []uint32
	for i := 0; i < 6; i++ {
		next, _ := s.advance(0)
		got = append(got, next)
	}
	want := []uint32{33, 66, 100, 133, 166, 200}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("advance() #%d = %d, want %d (all %v)", i, got[i], want[i], got)
		}
	}
}

func TestAlarmScheduleLateHandler(t *testing.T) {
	s := newAlarmSchedule(0, 25_000)
	s.advance(0)
	// Alarms at 80, 120, 160 and 200 were missed.
	next, skipped := s.advance(200)
	if next != 240 || skipped != 4 {
		t.Fatalf("advance(200) = %d, %d, want 240, 4", next, skipped)
	}
	next, skipped = s.advance(241)
	if next != 280 || skipped != 0 {
		t.Fatalf("advance(241) = %d, %d, want 280, 0", next, skipped)
	}
}

func TestAlarmScheduleWraps(t *testing.T) {
	start := ^uint32(0) - 31
	s := newAlarmSchedule(start, 25_000)
	next, skipped := s.advance(start)
	if next != 8 || skipped != 0 {
		t.Fatalf("advance(%d) = %d, %d, want 8, 0", start, next, skipped)
	}
}
