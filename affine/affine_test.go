package affine

import (
	"math"
	"testing"
)

func TestIdentityApply(t *testing.T) {
	id := Identity()
	for y := uint32(0); y < 128; y++ {
		for x := uint32(0); x < 128; x++ {
			gx, gy := id.Apply(x, y)
			if gx != x || gy != y {
				t.Fatalf("Identity().Apply(%d, %d) = (%d, %d), want (%d, %d)", x, y, gx, gy, x, y)
			}
		}
	}
}

func TestApplyAlwaysWraps(t *testing.T) {
	transforms := []Transform{
		Identity(),
		Identity().Translate(64, 64).Rotate(1.7).Scale(3.5).Translate(-64, -32),
		Identity().Scale(1e6).Scale(1e6),
		Identity().Rotate(-123.45).Translate(-1e5, 1e5),
	}
	inputs := []uint32{0, 1, 127, 128, 255, 1 << 16, 1<<31 - 1, 1 << 31, math.MaxUint32}
	for i, tr := range transforms {
		for _, x := range inputs {
			for _, y := range inputs {
				gx, gy := tr.Apply(x, y)
				if gx > 127 || gy > 127 {
					t.Fatalf("transform %d Apply(%d, %d) = (%d, %d), want both <= 127", i, x, y, gx, gy)
				}
			}
		}
	}
}

func TestTranslateWrapsAround(t *testing.T) {
	tr := Identity().Translate(-5, 130)
	gx, gy := tr.Apply(0, 0)
	if gx != 123 || gy != 2 {
		t.Fatalf("Apply(0, 0) = (%d, %d), want (123, 2)", gx, gy)
	}
}

func TestScaleHalf(t *testing.T) {
	tr := Identity().Scale(0.5)
	gx, gy := tr.Apply(100, 50)
	if gx != 50 || gy != 25 {
		t.Fatalf("Scale(0.5).Apply(100, 50) = (%d, %d), want (50, 25)", gx, gy)
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	tr := Identity().Rotate(math.Pi / 2)
	want := [6]int32{0, -One, 0, One, 0, 0}
	if got := tr.Coefficients(); got != want {
		t.Fatalf("Rotate(pi/2) = %v, want %v", got, want)
	}

	gx, gy := tr.Apply(5, 0)
	if gx != 0 || gy != 5 {
		t.Fatalf("Apply(5, 0) = (%d, %d), want (0, 5)", gx, gy)
	}
	// (0, 5) rotates to (-5, 0), which wraps to 123.
	gx, gy = tr.Apply(0, 5)
	if gx != 123 || gy != 0 {
		t.Fatalf("Apply(0, 5) = (%d, %d), want (123, 0)", gx, gy)
	}
}

func TestPrimitiveTruncatesTowardZero(t *testing.T) {
	tr := Identity().Translate(0.0009, -0.0009)
	if got := tr.Coefficients(); got[2] != 0 || got[5] != 0 {
		t.Fatalf("Translate(0.0009, -0.0009) c, f = %d, %d, want 0, 0", got[2], got[5])
	}
	tr = Identity().Translate(1.9999, -1.9999)
	if got := tr.Coefficients(); got[2] != 2047 || got[5] != -2047 {
		t.Fatalf("Translate(1.9999, -1.9999) c, f = %d, %d, want 2047, -2047", got[2], got[5])
	}
}

func TestPivotRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float32
		build  func(Transform) Transform
	}{
		{"rotate", 64, 64, func(t Transform) Transform { return t.Rotate(0.37) }},
		{"scale", 10, -20, func(t Transform) Transform { return t.Scale(0.8) }},
		{"rotate+scale", 64, 32, func(t Transform) Transform { return t.Rotate(-1.2).Scale(1.25) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := tt.build(Identity())
			pivot := tt.build(Identity().Translate(tt.dx, tt.dy).Translate(-tt.dx, -tt.dy))
			for y := uint32(16); y < 48; y += 3 {
				for x := uint32(16); x < 48; x += 5 {
					px, py := plain.Apply(x, y)
					qx, qy := pivot.Apply(x, y)
					if px != qx || py != qy {
						t.Fatalf("Apply(%d, %d) = (%d, %d) with pivot, want (%d, %d)", x, y, qx, qy, px, py)
					}
				}
			}
		})
	}
}

func TestComposeWrapsOnOverflow(t *testing.T) {
	big := Identity().Scale(1e6)
	got := big.Scale(1e6).Coefficients()

	s := int64(big.Coefficients()[0])
	m := int64(toFixed(1e6))
	want := int32(s*m) >> FracBits
	if got[0] != want || got[4] != want {
		t.Fatalf("Scale(1e6).Scale(1e6) a, e = %d, %d, want %d", got[0], got[4], want)
	}
}

func TestFrameTransformAtRest(t *testing.T) {
	// No rotation and unit scale leaves only the asymmetric pivot: a 32-row shift.
	tr := Identity().Translate(64, 64).Rotate(0).Scale(1).Translate(-64, -32)
	want := [6]int32{One, 0, 0, 0, One, 32 * One}
	if got := tr.Coefficients(); got != want {
		t.Fatalf("frame transform = %v, want %v", got, want)
	}
	gx, gy := tr.Apply(10, 100)
	if gx != 10 || gy != 4 {
		t.Fatalf("Apply(10, 100) = (%d, %d), want (10, 4)", gx, gy)
	}
}
