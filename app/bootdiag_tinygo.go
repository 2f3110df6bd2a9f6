//go:build tinygo && bootdebug

package app

import (
	"image/color"
	"machine"
	"sync"
	"time"

	"tinygo.org/x/tinyfont"

	"rotozoom/hal"
	"rotozoom/raster"
)

var (
	bootDiagMu   sync.Mutex
	bootDiagStep string
	bootDiagOnce sync.Once
)

// bootStep records the current startup step, repeats it on the log and USB
// serial until startup finishes, and shows it on the panel.
func bootStep(h hal.HAL, msg string) {
	bootDiagMu.Lock()
	bootDiagStep = msg
	bootDiagMu.Unlock()
	bootDiagOnce.Do(func() { go bootDiagLoop(h) })
	bootScreen(h, msg)
}

func bootDiagLoop(h hal.HAL) {
	l := h.Logger()
	for {
		bootDiagMu.Lock()
		step := bootDiagStep
		bootDiagMu.Unlock()
		if step == bootDone {
			return
		}

		line := "bootdiag: " + step
		if l != nil {
			l.WriteLineString(line)
		}
		if usb := machine.USBCDC; usb != nil {
			_, _ = usb.Write([]byte(line + "\r\n"))
		}
		time.Sleep(250 * time.Millisecond)
	}
}

func bootScreen(h hal.HAL, msg string) {
	disp := h.Display()
	if disp == nil || msg == bootDone {
		return
	}
	var pages raster.Pages
	tinyfont.WriteLine(pageCanvas{pages: &pages}, &tinyfont.Org01, 0, panicBaseline, msg, color.RGBA{R: 255, A: 255})
	for p := range pages {
		if disp.SelectPage(uint8(p)) != nil || disp.WritePage(pages[p][:]) != nil {
			return
		}
	}
}
