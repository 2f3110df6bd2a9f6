//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"
)

// PWM carrier: an 8-bit counter at the system clock, far above audible range.
const (
	pwmTop      = 255
	pwmPeriodNs = 2048
)

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetTop(top uint32)
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

// pwmAudioOut plays 8-bit samples as PWM duty on one pin. The per-chip
// startOutput calls the source once per sample period from an interrupt
// where the chip has a spare timer alarm.
type pwmAudioOut struct {
	pin   machine.Pin
	pwm   pwmDevice
	ch    uint8
	clock Clock

	src     SampleSource
	running bool
	stop    chan struct{}
}

func newPWMAudioOut(pin machine.Pin, clock Clock) *pwmAudioOut {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil
	}
	return &pwmAudioOut{pin: pin, pwm: pwm, clock: clock}
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

func (a *pwmAudioOut) Start(src SampleSource) error {
	if src == nil || src.SampleRate() == 0 || src.SampleRate() > 1_000_000 {
		return errors.New("pwm audio: invalid source")
	}
	if a.running {
		return errors.New("pwm audio: already started")
	}
	if err := a.pwm.Configure(machine.PWMConfig{Period: pwmPeriodNs}); err != nil {
		return err
	}
	ch, err := a.pwm.Channel(a.pin)
	if err != nil {
		return err
	}
	a.ch = ch
	a.pwm.SetTop(pwmTop)
	a.pwm.Set(a.ch, pwmTop/2)
	a.pwm.Enable(true)

	a.src = src
	if err := a.startOutput(); err != nil {
		a.pwm.Enable(false)
		return err
	}
	a.running = true
	return nil
}

// emit plays one sample.
func (a *pwmAudioOut) emit() {
	a.pwm.Set(a.ch, uint32(a.src.NextSample()))
}

func (a *pwmAudioOut) Stop() error {
	if !a.running {
		return nil
	}
	a.stopOutput()
	a.running = false
	a.pwm.Set(a.ch, pwmTop/2)
	a.pwm.Enable(false)
	return nil
}
