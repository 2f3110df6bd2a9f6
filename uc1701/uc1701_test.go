package uc1701

import (
	"bytes"
	"errors"
	"testing"
)

type op struct {
	cmd  bool
	data []byte
}

type recBus struct {
	ops  []op
	fail error
}

func (b *recBus) Command(cmd ...byte) error {
	b.ops = append(b.ops, op{cmd: true, data: append([]byte(nil), cmd...)})
	return b.fail
}

func (b *recBus) Data(p []byte) error {
	b.ops = append(b.ops, op{data: append([]byte(nil), p...)})
	return b.fail
}

type countDelay struct {
	calls int
	total uint64
}

func (d *countDelay) DelayMicros(us uint32) {
	d.calls++
	d.total += uint64(us)
}

func TestInitSequence(t *testing.T) {
	bus := &recBus{}
	delay := &countDelay{}
	if err := New(bus).Init(delay); err != nil {
		t.Fatalf("Init() error: %v", err)
	}

	if delay.calls != len(initSequence) {
		t.Fatalf("delay calls = %d, want %d", delay.calls, len(initSequence))
	}
	if delay.total != uint64(len(initSequence))*commandDelayMicros {
		t.Fatalf("delay total = %d", delay.total)
	}

	if got, want := len(bus.ops), len(initSequence)+2*PageCount+1; got != want {
		t.Fatalf("ops = %d, want %d", got, want)
	}
	for i, c := range initSequence {
		o := bus.ops[i]
		if !o.cmd || len(o.data) != 1 || o.data[0] != c {
			t.Fatalf("op %d = %+v, want command %#02x", i, o, c)
		}
	}
	clear := bus.ops[len(initSequence):]
	for p := 0; p < PageCount; p++ {
		addr, data := clear[2*p], clear[2*p+1]
		if !addr.cmd || !bytes.Equal(addr.data, []byte{0xb0 + byte(p), 0x00, 0x10}) {
			t.Fatalf("clear page %d address = %x", p, addr.data)
		}
		if data.cmd || len(data.data) != RAMWidth {
			t.Fatalf("clear page %d data len = %d, want %d", p, len(data.data), RAMWidth)
		}
		for _, b := range data.data {
			if b != 0 {
				t.Fatalf("clear page %d has non-zero byte", p)
			}
		}
	}
	last := bus.ops[len(bus.ops)-1]
	if !last.cmd || !bytes.Equal(last.data, []byte{0xaf}) {
		t.Fatalf("last op = %+v, want display on", last)
	}
}

func TestSelectPageAddressing(t *testing.T) {
	bus := &recBus{}
	d := New(bus)
	for p := uint8(0); p < PageCount; p++ {
		if err := d.SelectPage(p); err != nil {
			t.Fatalf("SelectPage(%d) error: %v", p, err)
		}
		want := []byte{0xb0 + p, 0x04, 0x10}
		if got := bus.ops[p].data; !bytes.Equal(got, want) {
			t.Fatalf("SelectPage(%d) sent %x, want %x", p, got, want)
		}
		if d.Page() != p {
			t.Fatalf("Page() = %d, want %d", d.Page(), p)
		}
	}
	if err := d.SelectPage(PageCount); err == nil {
		t.Fatalf("SelectPage(%d) error = nil, want range error", PageCount)
	}
}

func TestWritePage(t *testing.T) {
	bus := &recBus{}
	d := New(bus)

	page := make([]byte, Width)
	page[0], page[127] = 0x01, 0x80
	if err := d.WritePage(page); err != nil {
		t.Fatalf("WritePage() error: %v", err)
	}
	if o := bus.ops[0]; o.cmd || !bytes.Equal(o.data, page) {
		t.Fatalf("WritePage() sent %+v", o)
	}

	for _, n := range []int{0, 127, 129, RAMWidth} {
		if err := d.WritePage(make([]byte, n)); !errors.Is(err, ErrPageSize) {
			t.Fatalf("WritePage(%d bytes) error = %v, want ErrPageSize", n, err)
		}
	}
}

func TestHalt(t *testing.T) {
	bus := &recBus{}
	d := New(bus)
	if err := d.Halt(); err != nil {
		t.Fatalf("Halt() error: %v", err)
	}
	if err := d.Halt(); err != nil {
		t.Fatalf("second Halt() error: %v", err)
	}
	if len(bus.ops) != 1 || !bytes.Equal(bus.ops[0].data, []byte{0xae}) {
		t.Fatalf("Halt() ops = %+v, want one display-off", bus.ops)
	}

	if err := d.SelectPage(0); !errors.Is(err, ErrHalted) {
		t.Fatalf("SelectPage() after Halt error = %v, want ErrHalted", err)
	}
	if err := d.WritePage(make([]byte, Width)); !errors.Is(err, ErrHalted) {
		t.Fatalf("WritePage() after Halt error = %v, want ErrHalted", err)
	}
	if err := d.SetContrast(10); !errors.Is(err, ErrHalted) {
		t.Fatalf("SetContrast() after Halt error = %v, want ErrHalted", err)
	}
	if err := d.Invert(true); !errors.Is(err, ErrHalted) {
		t.Fatalf("Invert() after Halt error = %v, want ErrHalted", err)
	}

	if err := d.Init(nil); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if err := d.SelectPage(0); err != nil {
		t.Fatalf("SelectPage() after Init error: %v", err)
	}
}

func TestContrastAndInvert(t *testing.T) {
	bus := &recBus{}
	d := New(bus)
	_ = d.SetContrast(0xff)
	_ = d.Invert(true)
	_ = d.Invert(false)
	want := [][]byte{{0x81, 0x3f}, {0xa7}, {0xa6}}
	for i, w := range want {
		if !bytes.Equal(bus.ops[i].data, w) {
			t.Fatalf("op %d = %x, want %x", i, bus.ops[i].data, w)
		}
	}
}

func TestInitPropagatesBusError(t *testing.T) {
	boom := errors.New("boom")
	if err := New(&recBus{fail: boom}).Init(nil); !errors.Is(err, boom) {
		t.Fatalf("Init() error = %v, want %v", err, boom)
	}
}

func TestString(t *testing.T) {
	if got, want := New(&recBus{}).String(), "uc1701.Dev{128x64}"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
