// Package uc1701 drives a UC1701 monochrome LCD controller.
//
// The controller holds a 132x64 RAM split into 8 pages of 8 rows. A page byte
// covers one column, bit 0 being the top row of the page. The visible panel is
// 128 columns wide starting at column 4.
package uc1701

import (
	"errors"
	"fmt"
)

// Geometry of the controller RAM.
const (
	RAMWidth  = 132
	Width     = 128
	PageCount = 8
	// ColumnOffset is the first visible RAM column.
	ColumnOffset = 4
)

// Init timing.
const (
	commandDelayMicros = 10_000
	resetPulseMicros   = 1_000
)

// Commands.
const (
	cmdPageAddr   = 0xb0
	cmdColumnLow  = 0x00
	cmdColumnHigh = 0x10
	cmdDisplayOn  = 0xaf
	cmdDisplayOff = 0xae
	cmdInverseOff = 0xa6
	cmdInverseOn  = 0xa7
	cmdVolume     = 0x81
)

var initSequence = [...]byte{
	0xe2,       // system reset
	0x40,       // scroll line 0
	0xa1,       // SEG direction reversed
	0xc0,       // COM direction normal
	0xa2,       // bias 1/9
	0x2c,       // booster on
	0x2e,       // regulator on
	0x2f,       // follower on
	0xf8, 0x00, // booster ratio
	0x23,       // resistor ratio
	0x81, 0x2e, // electronic volume
	0xac, 0x00, // static indicator off
	0xa6,       // normal display
	0xa4,       // all-pixel-on off
	0xaf,       // display on
	0xb0,       // page 0
	0x00, 0x10, // column 0
}

var (
	// ErrHalted is returned by operations on a halted device.
	ErrHalted = errors.New("uc1701: device halted")
	// ErrPageSize is returned for a page write that is not exactly Width bytes.
	ErrPageSize = errors.New("uc1701: page write must be 128 bytes")
)

// Bus moves bytes to the controller. Command bytes are clocked with the
// CD line low, data bytes with it high.
type Bus interface {
	Command(cmd ...byte) error
	Data(b []byte) error
}

// Delayer blocks for a number of microseconds.
type Delayer interface {
	DelayMicros(us uint32)
}

// Dev is a handle to one controller.
type Dev struct {
	bus    Bus
	page   uint8
	halted bool
}

// New returns a device on bus. Call Init before the first page write.
func New(bus Bus) *Dev {
	return &Dev{bus: bus}
}

// Init resets the controller, clears the RAM and turns the panel on.
func (d *Dev) Init(delay Delayer) error {
	for _, c := range initSequence {
		if err := d.bus.Command(c); err != nil {
			return fmt.Errorf("uc1701: init: %w", err)
		}
		if delay != nil {
			delay.DelayMicros(commandDelayMicros)
		}
	}
	if err := d.Clear(); err != nil {
		return err
	}
	if err := d.bus.Command(cmdDisplayOn); err != nil {
		return fmt.Errorf("uc1701: display on: %w", err)
	}
	d.halted = false
	return nil
}

// Clear zeroes all of RAM, including the columns outside the visible panel.
func (d *Dev) Clear() error {
	var zero [RAMWidth]byte
	for p := uint8(0); p < PageCount; p++ {
		if err := d.bus.Command(cmdPageAddr|p, cmdColumnLow, cmdColumnHigh); err != nil {
			return fmt.Errorf("uc1701: clear page %d: %w", p, err)
		}
		if err := d.bus.Data(zero[:]); err != nil {
			return fmt.Errorf("uc1701: clear page %d: %w", p, err)
		}
	}
	return nil
}

// SelectPage moves the write cursor to the first visible column of page p.
func (d *Dev) SelectPage(p uint8) error {
	if d.halted {
		return ErrHalted
	}
	if p >= PageCount {
		return fmt.Errorf("uc1701: page %d out of range", p)
	}
	d.page = p
	return d.bus.Command(cmdPageAddr|p, cmdColumnLow|ColumnOffset, cmdColumnHigh)
}

// WritePage sends one page of column bytes at the cursor.
func (d *Dev) WritePage(b []byte) error {
	if d.halted {
		return ErrHalted
	}
	if len(b) != Width {
		return ErrPageSize
	}
	return d.bus.Data(b)
}

// SetContrast sets the electronic volume (0..63).
func (d *Dev) SetContrast(v uint8) error {
	if d.halted {
		return ErrHalted
	}
	return d.bus.Command(cmdVolume, v&0x3f)
}

// Invert swaps lit and unlit pixels.
func (d *Dev) Invert(on bool) error {
	if d.halted {
		return ErrHalted
	}
	if on {
		return d.bus.Command(cmdInverseOn)
	}
	return d.bus.Command(cmdInverseOff)
}

// Halt turns the panel off. Init brings it back.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	return d.bus.Command(cmdDisplayOff)
}

// Page is the last selected page.
func (d *Dev) Page() uint8 { return d.page }

func (d *Dev) String() string {
	return fmt.Sprintf("uc1701.Dev{%dx%d}", Width, PageCount*8)
}
