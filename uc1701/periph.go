//go:build !tinygo

package uc1701

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SPIFrequency is the bus clock used by NewSPI.
const SPIFrequency = 4 * physic.MegaHertz

// spiBus frames bytes over a periph SPI connection with a CD GPIO.
type spiBus struct {
	c  conn.Conn
	cd gpio.PinOut
}

func (b *spiBus) Command(cmd ...byte) error {
	if err := b.cd.Out(gpio.Low); err != nil {
		return err
	}
	return b.c.Tx(cmd, nil)
}

func (b *spiBus) Data(p []byte) error {
	if err := b.cd.Out(gpio.High); err != nil {
		return err
	}
	return b.c.Tx(p, nil)
}

// NewSPI connects to a controller on p (Mode0, 8-bit) with cd as the
// command/data line. rst is optional; when set the controller is pulsed
// through a hardware reset. The device still needs Init.
func NewSPI(p spi.Port, cd gpio.PinOut, rst gpio.PinOut, delay Delayer) (*Dev, error) {
	if cd == nil {
		return nil, fmt.Errorf("uc1701: CD pin required")
	}
	c, err := p.Connect(SPIFrequency, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("uc1701: connect %s: %w", p, err)
	}
	if rst != nil {
		if err := rst.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("uc1701: RST low: %w", err)
		}
		if delay != nil {
			delay.DelayMicros(resetPulseMicros)
		}
		if err := rst.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("uc1701: RST high: %w", err)
		}
		if delay != nil {
			delay.DelayMicros(resetPulseMicros)
		}
	}
	return New(&spiBus{c: c, cd: cd}), nil
}
