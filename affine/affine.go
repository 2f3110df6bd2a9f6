// Package affine implements 2D affine maps with fixed-point coefficients.
//
// A Transform maps an output pixel to a source sample:
//
//	x' = (a*x + b*y + c) >> FracBits
//	y' = (d*x + e*y + f) >> FracBits
//
// All six coefficients share the same scale, so c and f are translations
// multiplied by One. Results are masked to 7 bits, which makes the source
// plane a 128x128 torus.
package affine

import (
	"fmt"
	"math"
)

// FracBits is the number of fractional bits in every coefficient.
const FracBits = 10

// One is 1.0 in fixed point.
const One int32 = 1 << FracBits

// coordMask wraps results into [0, 127].
const coordMask = 0x7f

// Transform is an immutable affine map. The zero value is degenerate; start
// from Identity.
type Transform struct {
	a, b, c int32
	d, e, f int32
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{
		a: One, b: 0, c: 0,
		d: 0, e: One, f: 0,
	}
}

// Translate returns t composed with a translation by (dx, dy).
func (t Transform) Translate(dx, dy float32) Transform {
	return t.compose(Transform{
		a: One, b: 0, c: toFixed(dx),
		d: 0, e: One, f: toFixed(dy),
	})
}

// Rotate returns t composed with a rotation by theta radians.
func (t Transform) Rotate(theta float32) Transform {
	sin, cos := math.Sincos(float64(theta))
	return t.compose(Transform{
		a: toFixed(float32(cos)), b: toFixed(float32(-sin)), c: 0,
		d: toFixed(float32(sin)), e: toFixed(float32(cos)), f: 0,
	})
}

// Scale returns t composed with a uniform scale.
func (t Transform) Scale(factor float32) Transform {
	s := toFixed(factor)
	return t.compose(Transform{
		a: s, b: 0, c: 0,
		d: 0, e: s, f: 0,
	})
}

// Apply evaluates t at (x, y). Both results are in [0, 127] for any input.
func (t Transform) Apply(x, y uint32) (uint32, uint32) {
	ix, iy := int32(x), int32(y)
	xn := (uint32(t.a*ix+t.b*iy+t.c) >> FracBits) & coordMask
	yn := (uint32(t.d*ix+t.e*iy+t.f) >> FracBits) & coordMask
	return xn, yn
}

// Coefficients returns (a, b, c, d, e, f).
func (t Transform) Coefficients() [6]int32 {
	return [6]int32{t.a, t.b, t.c, t.d, t.e, t.f}
}

func (t Transform) String() string {
	return fmt.Sprintf("affine[%d %d %d; %d %d %d]", t.a, t.b, t.c, t.d, t.e, t.f)
}

// compose returns t∘m: the linear part of t applied to m's output, plus t's
// translation.
//
// int32 arithmetic wraps on overflow. Only bits 10..16 of a coefficient
// survive Apply's shift and mask, so the discarded high bits never matter.
func (t Transform) compose(m Transform) Transform {
	return Transform{
		a: (t.a*m.a + t.b*m.d) >> FracBits,
		b: (t.a*m.b + t.b*m.e) >> FracBits,
		c: ((t.a*m.c + t.b*m.f) >> FracBits) + t.c,
		d: (t.d*m.a + t.e*m.d) >> FracBits,
		e: (t.d*m.b + t.e*m.e) >> FracBits,
		f: ((t.d*m.c + t.e*m.f) >> FracBits) + t.f,
	}
}

// toFixed truncates toward zero, matching a float-to-int conversion.
func toFixed(v float32) int32 {
	return int32(v * float32(One))
}
