package overlay

import (
	"image"
	"image/color"
	"testing"
)

func TestCanvasSize(t *testing.T) {
	c := NewCanvas(image.NewRGBA(image.Rect(0, 0, 40, 12)))
	if x, y := c.Size(); x != 40 || y != 12 {
		t.Fatalf("Size() = %d, %d, want 40, 12", x, y)
	}
}

func TestSetPixelClips(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	c := NewCanvas(img)
	white := color.RGBA{255, 255, 255, 255}
	c.SetPixel(-1, 0, white)
	c.SetPixel(4, 4, white)
	c.SetPixel(1, 2, white)
	if got := img.RGBAAt(1, 2); got != white {
		t.Fatalf("RGBAAt(1, 2) = %v, want %v", got, white)
	}
	lit := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			lit++
		}
	}
	if lit != 1 {
		t.Fatalf("lit pixels = %d, want 1", lit)
	}
}

func TestTextDrawsInk(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 8))
	c := NewCanvas(img)
	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}
	c.Fill(black)
	c.Text(0, 0, white, "BEAT 12")

	found := false
	for y := 0; y < 8 && !found; y++ {
		for x := 0; x < 64; x++ {
			if img.RGBAAt(x, y) == white {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("Text() drew nothing")
	}
}

func TestDot(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	c := NewCanvas(img)
	red := color.RGBA{255, 0, 0, 255}
	c.Dot(2, 3, 2, red)
	for _, p := range []image.Point{{2, 3}, {3, 3}, {2, 4}, {3, 4}} {
		if got := img.RGBAAt(p.X, p.Y); got != red {
			t.Fatalf("RGBAAt(%v) = %v, want %v", p, got, red)
		}
	}
	if got := img.RGBAAt(4, 4); got == red {
		t.Fatalf("RGBAAt(4, 4) painted outside the dot")
	}
}
