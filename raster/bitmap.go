package raster

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ErrShortAsset reports a bitmap asset that ends before 128x128 bits.
var ErrShortAsset = errors.New("raster: bitmap asset too short")

// ErrBadPBM reports a malformed netpbm header.
var ErrBadPBM = errors.New("raster: bad PBM header")

// Bitmap is a 128x128 1-bit source image, one byte per pixel.
// It is never modified after decoding and may be shared freely.
type Bitmap struct {
	px [Size * Size]uint8
}

// DecodeBitmap unpacks 128x128 bits stored MSB first, row-major, 16 bytes per
// row, starting at offset.
func DecodeBitmap(data []byte, offset int) (*Bitmap, error) {
	if offset < 0 {
		return nil, fmt.Errorf("raster: negative offset %d", offset)
	}
	need := offset + Size*RowBytes
	if len(data) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortAsset, len(data), need)
	}

	bm := &Bitmap{}
	for i := range bm.px {
		if data[offset+(i>>3)]&(0x80>>(i&7)) != 0 {
			bm.px[i] = 1
		}
	}
	return bm, nil
}

// DecodePBM decodes a binary netpbm (P4) image. The image must be 128x128.
func DecodePBM(data []byte) (*Bitmap, error) {
	off, w, h, err := parsePBMHeader(data)
	if err != nil {
		return nil, err
	}
	if w != Size || h != Size {
		return nil, fmt.Errorf("raster: PBM is %dx%d, want %dx%d", w, h, Size, Size)
	}
	return DecodeBitmap(data, off)
}

// NewBitmap builds a bitmap from a predicate.
func NewBitmap(set func(x, y int) bool) *Bitmap {
	bm := &Bitmap{}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if set(x, y) {
				bm.px[y*Size+x] = 1
			}
		}
	}
	return bm
}

// At reports whether the pixel is set. Coordinates wrap modulo 128.
func (b *Bitmap) At(x, y uint32) bool {
	return b.px[(y&coordMask)*Size+(x&coordMask)] != 0
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.px {
		n += int(v)
	}
	return n
}

// parsePBMHeader returns the offset of the raster data and the dimensions.
func parsePBMHeader(data []byte) (off, w, h int, err error) {
	if !bytes.HasPrefix(data, []byte("P4")) {
		return 0, 0, 0, fmt.Errorf("%w: missing P4 magic", ErrBadPBM)
	}
	i := 2
	var fields [2]int
	for n := 0; n < len(fields); n++ {
		i = skipSpaceAndComments(data, i)
		start := i
		for i < len(data) && data[i] >= '0' && data[i] <= '9' {
			i++
		}
		if start == i {
			return 0, 0, 0, fmt.Errorf("%w: missing dimension", ErrBadPBM)
		}
		v, convErr := strconv.Atoi(string(data[start:i]))
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %v", ErrBadPBM, convErr)
		}
		fields[n] = v
	}
	// Exactly one whitespace byte separates the header from the raster.
	if i >= len(data) || !isSpace(data[i]) {
		return 0, 0, 0, fmt.Errorf("%w: no data separator", ErrBadPBM)
	}
	return i + 1, fields[0], fields[1], nil
}

func skipSpaceAndComments(data []byte, i int) int {
	for i < len(data) {
		switch {
		case isSpace(data[i]):
			i++
		case data[i] == '#':
			for i < len(data) && data[i] != '\n' {
				i++
			}
		default:
			return i
		}
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}
