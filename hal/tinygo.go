//go:build tinygo && baremetal

package hal

import (
	"machine"

	"rotozoom/uc1701"
)

// Board wiring (Raspberry Pi Pico).
const (
	lcdSPIFrequency = 4_000_000
	lcdPowerOnDelay = 1_000_000
)

var (
	lcdCS    = machine.GP1
	lcdSCK   = machine.GP2
	lcdSDO   = machine.GP3
	lcdSDI   = machine.GP0
	lcdCD    = machine.GP4
	audioPin = machine.GP28
)

type tinyGoHAL struct {
	logger *serialLogger
	led    *pinLED
	disp   PageDisplay
	audio  *pwmAudioOut
	clock  *monoClock
}

// New returns a Pico HAL: UC1701 on SPI0, PWM audio on GP28, logs on the
// USB serial port.
func New() HAL {
	clock := newMonoClock()
	logger := &serialLogger{s: machine.Serial}

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	h := &tinyGoHAL{
		logger: logger,
		led:    &pinLED{pin: ledPin},
		audio:  newPWMAudioOut(audioPin, clock),
		clock:  clock,
	}

	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{
		Frequency: lcdSPIFrequency,
		SCK:       lcdSCK,
		SDO:       lcdSDO,
		SDI:       lcdSDI,
		Mode:      0,
	}); err != nil {
		logger.WriteLineString("lcd: spi: " + err.Error())
		return h
	}
	lcd := uc1701.NewMachine(spi, lcdCD, lcdCS)
	if err := lcd.Init(clock); err != nil {
		logger.WriteLineString("lcd: init: " + err.Error())
		return h
	}
	clock.DelayMicros(lcdPowerOnDelay)
	h.disp = lcd
	return h
}

func (h *tinyGoHAL) Logger() Logger       { return h.logger }
func (h *tinyGoHAL) LED() LED             { return h.led }
func (h *tinyGoHAL) Display() PageDisplay { return h.disp }
func (h *tinyGoHAL) Audio() AudioOut {
	if h.audio == nil {
		return nil
	}
	return h.audio
}
func (h *tinyGoHAL) Clock() Clock { return h.clock }
