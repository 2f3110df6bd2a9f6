package hal

import (
	"context"
	"errors"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// PageDisplay is a monochrome display addressed in pages of 8 rows.
//
// Callers select a page and then write exactly one page of column bytes.
type PageDisplay interface {
	SelectPage(p uint8) error
	WritePage(b []byte) error
}

// SampleSource produces unsigned 8-bit mono samples at a fixed rate.
//
// NextSample is called from the audio context, once per sample period.
type SampleSource interface {
	SampleRate() uint32
	NextSample() uint8
}

// UnderrunReporter is optionally implemented by a SampleSource that wants to
// know when an output skipped samples it could not deliver in time.
type UnderrunReporter interface {
	Underrun(missed uint64)
}

// AudioOut drives a SampleSource from its own context until stopped.
type AudioOut interface {
	Start(src SampleSource) error
	Stop() error
}

// Clock is a free-running monotonic microsecond counter.
type Clock interface {
	Micros() uint64
	// WaitUntil blocks until Micros() >= deadline.
	WaitUntil(deadline uint64)
	DelayMicros(us uint32)
}

// HAL provides the only contact point between the demo and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() PageDisplay
	Audio() AudioOut
	Clock() Clock
}

// App is what the platform runners drive.
type App interface {
	// Frame renders and delivers one frame without pacing.
	Frame() error
	// Run renders frames paced by the HAL clock. frames == 0 runs forever.
	Run(ctx context.Context, frames uint64) error
	// Status is a one-line summary for overlays.
	Status() string
}

// NewApp builds an App on top of a HAL.
type NewApp func(HAL) (App, error)
