package hal

import (
	"errors"
	"sync"
)

// Page display geometry.
const (
	PageCount = 8
	PageWidth = 128
)

var errPageRange = errors.New("hal: page out of range")

// pageBuffer is an in-memory PageDisplay. A write to the last page completes
// a frame and fires onFrame.
type pageBuffer struct {
	mu    sync.Mutex
	pages [PageCount][PageWidth]byte
	cur   uint8
	count uint64

	onFrame func()
}

func (b *pageBuffer) SelectPage(p uint8) error {
	if p >= PageCount {
		return errPageRange
	}
	b.mu.Lock()
	b.cur = p
	b.mu.Unlock()
	return nil
}

func (b *pageBuffer) WritePage(data []byte) error {
	if len(data) != PageWidth {
		return errors.New("hal: page write must be 128 bytes")
	}
	b.mu.Lock()
	copy(b.pages[b.cur][:], data)
	last := b.cur == PageCount-1
	if last {
		b.count++
	}
	fn := b.onFrame
	b.mu.Unlock()

	if last && fn != nil {
		fn()
	}
	return nil
}

// snapshot copies the current contents into dst and returns the number of
// completed frames.
func (b *pageBuffer) snapshot(dst *[PageCount][PageWidth]byte) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	*dst = b.pages
	return b.count
}

// mirrorDisplay forwards to a primary display and shadows into a buffer.
type mirrorDisplay struct {
	primary PageDisplay
	shadow  *pageBuffer
}

func (m mirrorDisplay) SelectPage(p uint8) error {
	if err := m.primary.SelectPage(p); err != nil {
		return err
	}
	return m.shadow.SelectPage(p)
}

func (m mirrorDisplay) WritePage(b []byte) error {
	if err := m.primary.WritePage(b); err != nil {
		return err
	}
	return m.shadow.WritePage(b)
}
