//go:build !tinygo

package uc1701

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

type tx struct {
	level gpio.Level
	w     []byte
}

type fakeConn struct {
	cd  *gpiotest.Pin
	txs []tx
}

func (c *fakeConn) String() string               { return "fake" }
func (c *fakeConn) Duplex() conn.Duplex          { return conn.Half }
func (c *fakeConn) TxPackets([]spi.Packet) error { return nil }

func (c *fakeConn) Tx(w, r []byte) error {
	c.txs = append(c.txs, tx{level: c.cd.Read(), w: append([]byte(nil), w...)})
	return nil
}

type fakePort struct {
	conn *fakeConn
	freq physic.Frequency
	mode spi.Mode
	bits int
	err  error
}

func (p *fakePort) String() string                      { return "fakeport" }
func (p *fakePort) LimitSpeed(f physic.Frequency) error { return nil }

func (p *fakePort) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	p.freq, p.mode, p.bits = f, mode, bits
	if p.err != nil {
		return nil, p.err
	}
	return p.conn, nil
}

func TestNewSPIFraming(t *testing.T) {
	cd := &gpiotest.Pin{N: "CD"}
	rst := &gpiotest.Pin{N: "RST"}
	port := &fakePort{conn: &fakeConn{cd: cd}}

	d, err := NewSPI(port, cd, rst, nil)
	if err != nil {
		t.Fatalf("NewSPI() error: %v", err)
	}
	if port.freq != SPIFrequency || port.mode != spi.Mode0 || port.bits != 8 {
		t.Fatalf("Connect(%v, %v, %d), want (%v, Mode0, 8)", port.freq, port.mode, port.bits, SPIFrequency)
	}
	if rst.Read() != gpio.High {
		t.Fatalf("RST = %v after reset, want High", rst.Read())
	}

	if err := d.SelectPage(3); err != nil {
		t.Fatalf("SelectPage() error: %v", err)
	}
	page := bytes.Repeat([]byte{0x5a}, Width)
	if err := d.WritePage(page); err != nil {
		t.Fatalf("WritePage() error: %v", err)
	}

	txs := port.conn.txs
	if len(txs) != 2 {
		t.Fatalf("transfers = %d, want 2", len(txs))
	}
	if txs[0].level != gpio.Low || !bytes.Equal(txs[0].w, []byte{0xb3, 0x04, 0x10}) {
		t.Fatalf("command transfer = %+v", txs[0])
	}
	if txs[1].level != gpio.High || !bytes.Equal(txs[1].w, page) {
		t.Fatalf("data transfer level = %v len = %d", txs[1].level, len(txs[1].w))
	}
}

func TestNewSPIErrors(t *testing.T) {
	boom := errors.New("boom")
	cd := &gpiotest.Pin{N: "CD"}
	if _, err := NewSPI(&fakePort{err: boom}, cd, nil, nil); !errors.Is(err, boom) {
		t.Fatalf("NewSPI() error = %v, want %v", err, boom)
	}
	if _, err := NewSPI(&fakePort{conn: &fakeConn{cd: cd}}, nil, nil, nil); err == nil {
		t.Fatalf("NewSPI() without CD error = nil")
	}
}
