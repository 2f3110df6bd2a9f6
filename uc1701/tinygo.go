//go:build tinygo && baremetal

package uc1701

import (
	"machine"

	"tinygo.org/x/drivers"
)

type pinBus struct {
	spi drivers.SPI
	cd  machine.Pin
	cs  machine.Pin
}

func (b *pinBus) Command(cmd ...byte) error {
	b.cd.Low()
	return b.tx(cmd)
}

func (b *pinBus) Data(p []byte) error {
	b.cd.High()
	return b.tx(p)
}

func (b *pinBus) tx(p []byte) error {
	if b.cs == machine.NoPin {
		return b.spi.Tx(p, nil)
	}
	b.cs.Low()
	err := b.spi.Tx(p, nil)
	b.cs.High()
	return err
}

// NewMachine returns a device on a configured SPI bus. cd and cs are driven
// as plain outputs; pass machine.NoPin for cs when the bus owns chip select.
func NewMachine(spi drivers.SPI, cd, cs machine.Pin) *Dev {
	cd.Configure(machine.PinConfig{Mode: machine.PinOutput})
	if cs != machine.NoPin {
		cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
		cs.High()
	}
	return New(&pinBus{spi: spi, cd: cd, cs: cs})
}
