package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"

	"rotozoom/hal"
	"rotozoom/raster"
)

// Panic screen text metrics for tinyfont.Org01.
const (
	panicLineHeight = 7
	panicBaseline   = 5
	panicCharWidth  = 6
	panicCols       = raster.Size / panicCharWidth
	panicRows       = raster.Rows / panicLineHeight
)

// recoverPanic must be deferred directly. It reports a panic on the log and
// the panel, then parks the foreground context.
func recoverPanic(h hal.HAL) {
	r := recover()
	if r == nil {
		return
	}
	showPanic(h, r, debug.Stack())
	select {}
}

func showPanic(h hal.HAL, v any, stack []byte) {
	lines := panicLines(v, stack)
	if l := h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	var pages raster.Pages
	c := pageCanvas{pages: &pages}
	ink := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 && int(y) < panicRows {
			chunk, rest := takeRunes(line, panicCols)
			tinyfont.WriteLine(c, &tinyfont.Org01, 0, y*panicLineHeight+panicBaseline, chunk, ink)
			y++
			line = strings.TrimLeft(rest, " ")
		}
	}
	for p := range pages {
		if disp.SelectPage(uint8(p)) != nil || disp.WritePage(pages[p][:]) != nil {
			return
		}
	}
}

func panicLines(v any, stack []byte) []string {
	lines := []string{"PANIC", fmt.Sprintf("panic: %v", v)}
	if len(stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(stack), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// pageCanvas is a drivers.Displayer over display pages. Any non-black colour
// lights the pixel.
type pageCanvas struct {
	pages *raster.Pages
}

func (c pageCanvas) Size() (x, y int16) { return raster.Size, raster.Rows }

func (c pageCanvas) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || y < 0 || int(x) >= raster.Size || int(y) >= raster.Rows {
		return
	}
	bit := byte(1) << (y % raster.PageHeight)
	b := &c.pages[y/raster.PageHeight][x]
	if col.R|col.G|col.B != 0 {
		*b |= bit
	} else {
		*b &^= bit
	}
}

func (c pageCanvas) Display() error { return nil }

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
