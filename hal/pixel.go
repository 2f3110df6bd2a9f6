package hal

// LCD palette: a lit pixel is dark on the pale-green background of the panel.
var (
	lcdOn  = [3]uint8{0x1c, 0x2a, 0x1e}
	lcdOff = [3]uint8{0xa8, 0xc6, 0x8c}
)

// pageBit reports whether pixel (x, y) is set in a page-ordered frame.
func pageBit(pages *[PageCount][PageWidth]byte, x, y int) bool {
	return pages[y/8][x]&(1<<(y%8)) != 0
}

// expandPages writes a page-ordered frame into an RGBA pixel slice of
// PageWidth x PageCount*8 pixels.
func expandPages(pages *[PageCount][PageWidth]byte, dst []byte) {
	for y := 0; y < PageCount*8; y++ {
		for x := 0; x < PageWidth; x++ {
			c := lcdOff
			if pageBit(pages, x, y) {
				c = lcdOn
			}
			i := (y*PageWidth + x) * 4
			dst[i+0] = c[0]
			dst[i+1] = c[1]
			dst[i+2] = c[2]
			dst[i+3] = 0xff
		}
	}
}
