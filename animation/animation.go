// Package animation drives the rotozoomer from the audio beat count.
//
// The controller advances once per rendered frame, so rotation speed follows
// the frame rate, while phase boundaries follow the beat count supplied by the
// audio clock. A beat count that is one audio period stale only delays a phase
// change by a frame.
package animation

import "fmt"

// Beat thresholds (inclusive upper bounds).
const (
	StillUntil  = 20
	RotateUntil = 36
	UnzoomUntil = 49
)

// Per-frame steps.
const (
	unzoomStep  = 2
	zoomStep    = 16
	recoverStep = 4
)

// UnitScale is Scl at 1x magnification.
const UnitScale = 100

// Phase identifies one of the five animation behaviours.
type Phase uint8

const (
	PhaseStill   Phase = iota // A
	PhaseRotate               // B
	PhaseUnzoom               // C
	PhaseZoom                 // D
	PhaseRecover              // E
)

func (p Phase) String() string {
	switch p {
	case PhaseStill:
		return "still"
	case PhaseRotate:
		return "rotate"
	case PhaseUnzoom:
		return "unzoom"
	case PhaseZoom:
		return "zoom"
	case PhaseRecover:
		return "recover"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Controller holds the animation state.
//
// Rot counts frames of rotation in hundredths of a radian. Scl is the
// magnification in percent.
type Controller struct {
	Rot     int32
	Scl     int32
	LoopEnd bool
}

// New returns a controller at rest: no rotation, 1x scale.
func New() *Controller {
	return &Controller{Rot: 0, Scl: UnitScale}
}

// Next advances the controller by one frame.
func (c *Controller) Next(beat uint32) {
	if c.LoopEnd {
		c.Rot = 0
		if c.Scl < UnitScale {
			c.Scl += recoverStep
			return
		}
		c.Scl = UnitScale
		if beat <= UnzoomUntil {
			c.LoopEnd = false
		}
		return
	}

	switch {
	case beat <= StillUntil:
		c.Rot = 0
		c.Scl = UnitScale
	case beat <= RotateUntil:
		c.Rot++
	case beat <= UnzoomUntil:
		c.Rot++
		c.Scl += unzoomStep
	case c.Scl > 0:
		c.Rot++
		c.Scl -= zoomStep
	default:
		c.LoopEnd = true
	}
}

// Phase reports the behaviour the next call to Next would run.
func (c *Controller) Phase(beat uint32) Phase {
	switch {
	case c.LoopEnd:
		return PhaseRecover
	case beat <= StillUntil:
		return PhaseStill
	case beat <= RotateUntil:
		return PhaseRotate
	case beat <= UnzoomUntil:
		return PhaseUnzoom
	case c.Scl > 0:
		return PhaseZoom
	default:
		return PhaseRecover
	}
}

// Angle returns the rotation in radians.
func (c *Controller) Angle() float32 { return float32(c.Rot) * 0.01 }

// Factor returns the scale factor (1.0 at UnitScale).
func (c *Controller) Factor() float32 { return float32(c.Scl) * 0.01 }
