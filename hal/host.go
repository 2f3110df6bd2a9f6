//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	pages  *pageBuffer
	disp   PageDisplay
	aud    AudioOut
	clock  *monoClock
}

// New returns a host HAL rendering into memory, with audio paced off the
// wall clock and logs on stdout.
func New() HAL {
	return newHostHAL(os.Stdout)
}

func newHostHAL(w io.Writer) *hostHAL {
	clock := newMonoClock()
	pages := &pageBuffer{}
	return &hostHAL{
		logger: &hostLogger{w: w},
		led:    &hostLED{},
		pages:  pages,
		disp:   pages,
		aud:    newTickAudio(clock),
		clock:  clock,
	}
}

func (h *hostHAL) Logger() Logger       { return h.logger }
func (h *hostHAL) LED() LED             { return h.led }
func (h *hostHAL) Display() PageDisplay { return h.disp }
func (h *hostHAL) Audio() AudioOut      { return h.aud }
func (h *hostHAL) Clock() Clock         { return h.clock }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostLED records the heartbeat state. It toggles twice per beat from the
// audio context, too often to log.
type hostLED struct {
	on atomic.Bool
}

func (l *hostLED) High() { l.on.Store(true) }
func (l *hostLED) Low()  { l.on.Store(false) }

func (l *hostLED) isOn() bool { return l.on.Load() }
