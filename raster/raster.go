// Package raster maps display pixels through an affine transform into a
// source bitmap and packs the result into display pages.
package raster

import "rotozoom/affine"

// Display geometry.
const (
	Size       = 128
	PageHeight = 8
	PageCount  = 8
	// Rows is the visible height; the source bitmap is Size rows tall.
	Rows     = PageCount * PageHeight
	RowBytes = Size / 8
)

const coordMask = Size - 1

// Pages holds one frame in the display's native layout. Byte x of page p
// packs rows p*8..p*8+7 at column x; bit dy is row p*8+dy.
type Pages [PageCount][Size]byte

// Rasterize renders src through t into dst, overwriting every byte.
func Rasterize(t affine.Transform, src *Bitmap, dst *Pages) {
	for p := 0; p < PageCount; p++ {
		page := &dst[p]
		for x := 0; x < Size; x++ {
			var b byte
			for dy := 0; dy < PageHeight; dy++ {
				y := uint32(p*PageHeight+dy) & coordMask
				x1, y1 := t.Apply(uint32(x), y)
				if src.px[y1*Size+x1] != 0 {
					b |= 1 << dy
				}
			}
			page[x] = b
		}
	}
}

// Pixel reports whether display pixel (x, y) is lit.
func (pg *Pages) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= Size || y >= Rows {
		return false
	}
	return pg[y/PageHeight][x]&(1<<(y%PageHeight)) != 0
}
