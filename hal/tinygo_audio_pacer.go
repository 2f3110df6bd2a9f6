//go:build tinygo && baremetal && !rp2040

package hal

// startOutput paces the source from a goroutine on chips without a spare
// alarm. The goroutine only runs when the render loop yields, so a late
// wake-up consumes the skipped samples to keep the beat clock on time.
func (a *pwmAudioOut) startOutput() error {
	a.stop = make(chan struct{})
	go a.run(a.stop)
	return nil
}

func (a *pwmAudioOut) stopOutput() {
	close(a.stop)
	a.stop = nil
}

func (a *pwmAudioOut) run(stop <-chan struct{}) {
	rate := a.src.SampleRate()
	period := uint64(1_000_000 / rate)
	now := a.clock.Micros()
	pacer := newSamplePacer(now, rate)
	next := now
	for {
		select {
		case <-stop:
			return
		default:
		}
		n, dropped := pacer.take(a.clock.Micros(), uint64(rate/10))
		reportUnderrun(a.src, dropped)
		if n > 0 {
			var s uint8
			for ; n > 0; n-- {
				s = a.src.NextSample()
			}
			a.pwm.Set(a.ch, uint32(s))
		}
		next += period
		a.clock.WaitUntil(next)
	}
}
