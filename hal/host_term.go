//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal layout: two panel rows per cell, a status line and the log tail.
const (
	termRows     = PageCount * 8 / 2
	termLogLines = 3
)

var (
	termOn  = tcell.NewRGBColor(int32(lcdOn[0]), int32(lcdOn[1]), int32(lcdOn[2]))
	termOff = tcell.NewRGBColor(int32(lcdOff[0]), int32(lcdOff[1]), int32(lcdOff[2]))
)

// RunTerm previews the panel in the terminal with half-block characters.
// q, Escape or Ctrl-C quit.
func RunTerm(ctx context.Context, newApp NewApp, cfg HostConfig) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logs := &logTail{max: termLogLines}
	h := newHostHAL(logs)
	if err := h.useSpeaker(cfg); err != nil {
		return err
	}
	view := &termView{s: s, h: h, logs: logs}
	h.pages.onFrame = view.draw

	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer h.aud.Stop()
	view.app = app

	go func() {
		for {
			switch ev := s.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					cancel()
					return
				}
			case *tcell.EventResize:
				s.Sync()
			}
		}
	}()

	err = app.Run(ctx, cfg.Frames)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// termView renders completed frames onto a tcell screen.
type termView struct {
	s    tcell.Screen
	h    *hostHAL
	app  App
	logs *logTail

	frame [PageCount][PageWidth]byte
}

func halfBlockStyle(top, bottom bool) tcell.Style {
	fg, bg := termOff, termOff
	if top {
		fg = termOn
	}
	if bottom {
		bg = termOn
	}
	return tcell.StyleDefault.Foreground(fg).Background(bg)
}

func (v *termView) draw() {
	v.h.pages.snapshot(&v.frame)
	for row := 0; row < termRows; row++ {
		for x := 0; x < PageWidth; x++ {
			st := halfBlockStyle(pageBit(&v.frame, x, 2*row), pageBit(&v.frame, x, 2*row+1))
			v.s.SetContent(x, row, '▀', nil, st)
		}
	}

	text := tcell.StyleDefault
	status := ""
	if v.app != nil {
		status = v.app.Status()
	}
	if v.h.led.isOn() {
		status += " *"
	}
	v.putLine(termRows, status, text.Bold(true))
	for i, l := range v.logs.lines() {
		v.putLine(termRows+1+i, l, text)
	}
	v.s.Show()
}

func (v *termView) putLine(y int, s string, st tcell.Style) {
	x := 0
	for _, r := range s {
		if x >= PageWidth {
			break
		}
		v.s.SetContent(x, y, r, nil, st)
		x++
	}
	for ; x < PageWidth; x++ {
		v.s.SetContent(x, y, ' ', nil, st)
	}
}

// logTail keeps the last few lines written to it.
type logTail struct {
	mu   sync.Mutex
	max  int
	tail []string
}

func (t *logTail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	text := strings.TrimRight(string(p), "\n")
	if text == "" {
		return len(p), nil
	}
	for _, l := range strings.Split(text, "\n") {
		t.tail = append(t.tail, l)
	}
	if n := len(t.tail) - t.max; n > 0 {
		t.tail = append(t.tail[:0], t.tail[n:]...)
	}
	return len(p), nil
}

func (t *logTail) lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.tail...)
}
