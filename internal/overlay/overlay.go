// Package overlay draws status text onto RGBA images with tinyfont.
package overlay

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// LineHeight is the advance between text lines in pixels.
const LineHeight = 7

// Canvas adapts an *image.RGBA to drivers.Displayer.
type Canvas struct {
	img *image.RGBA
}

var _ drivers.Displayer = (*Canvas)(nil)

// NewCanvas wraps img.
func NewCanvas(img *image.RGBA) *Canvas { return &Canvas{img: img} }

func (c *Canvas) Size() (x, y int16) {
	b := c.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	b := c.img.Bounds()
	p := image.Pt(b.Min.X+int(x), b.Min.Y+int(y))
	if !p.In(b) {
		return
	}
	c.img.SetRGBA(p.X, p.Y, col)
}

func (c *Canvas) Display() error { return nil }

// Fill paints the whole canvas.
func (c *Canvas) Fill(col color.RGBA) {
	b := c.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c.img.SetRGBA(x, y, col)
		}
	}
}

// Text writes lines starting at (x, y), y being the top of the first line.
func (c *Canvas) Text(x, y int16, col color.RGBA, lines ...string) {
	for i, s := range lines {
		// Org01 glyphs sit on the baseline, five pixels below the top.
		tinyfont.WriteLine(c, &tinyfont.Org01, x, y+5+int16(i*LineHeight), s, col)
	}
}

// Dot draws a filled square of side n with its top-left corner at (x, y).
func (c *Canvas) Dot(x, y, n int16, col color.RGBA) {
	for dy := int16(0); dy < n; dy++ {
		for dx := int16(0); dx < n; dx++ {
			c.SetPixel(x+dx, y+dy, col)
		}
	}
}
