//go:build tinygo && rp2040

package hal

import (
	"device/rp"
	"runtime/interrupt"
)

// The runtime's sleep timer owns alarm 0; samples use alarm 1.
const sampleAlarmBit = 1 << 1

var sampleAlarm struct {
	sched alarmSchedule
	out   *pwmAudioOut
}

// startOutput arms TIMER alarm 1 once per sample period. The handler runs
// in interrupt context, so rendering on the main goroutine cannot delay it.
func (a *pwmAudioOut) startOutput() error {
	now := rp.TIMER.TIMERAWL.Get()
	sampleAlarm.sched = newAlarmSchedule(now, a.src.SampleRate())
	sampleAlarm.out = a

	intr := interrupt.New(rp.IRQ_TIMER_IRQ_1, handleSampleAlarm)
	intr.SetPriority(0x00)
	next, _ := sampleAlarm.sched.advance(now)
	rp.TIMER.ALARM1.Set(next)
	rp.TIMER.INTE.SetBits(sampleAlarmBit)
	intr.Enable()
	return nil
}

func (a *pwmAudioOut) stopOutput() {
	rp.TIMER.INTE.ClearBits(sampleAlarmBit)
	rp.TIMER.ARMED.Set(sampleAlarmBit)
	rp.TIMER.INTR.Set(sampleAlarmBit)
	sampleAlarm.out = nil
}

func handleSampleAlarm(interrupt.Interrupt) {
	rp.TIMER.INTR.Set(sampleAlarmBit)
	a := sampleAlarm.out
	if a == nil {
		return
	}
	next, skipped := sampleAlarm.sched.advance(rp.TIMER.TIMERAWL.Get())
	rp.TIMER.ALARM1.Set(next)
	a.emit()
	reportUnderrun(a.src, uint64(skipped))
}
