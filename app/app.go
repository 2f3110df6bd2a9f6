package app

import (
	"context"
	"errors"
	"fmt"

	"rotozoom/affine"
	"rotozoom/animation"
	"rotozoom/asset"
	"rotozoom/audio"
	"rotozoom/hal"
	"rotozoom/internal/buildinfo"
	"rotozoom/kernel"
	"rotozoom/raster"
)

// bootDone ends startup diagnostics.
const bootDone = "done"

// FrameRate is the target output rate.
const FrameRate = 60

// FramePeriodMicros is one frame in clock ticks.
const FramePeriodMicros = 1_000_000 / FrameRate

// Pivot offsets. The y re-centre is -32, so at rest the 64 visible rows show
// source rows 32..95.
const (
	pivotX    = 64
	pivotY    = 64
	recenterX = -64
	recenterY = -32
)

// Config selects the assets. Zero values fall back to the embedded logo and
// the embedded track, or the synthesized one when none was built in.
type Config struct {
	Bitmap *raster.Bitmap
	Track  audio.Track
	BPM    uint32
}

// Loop is the render loop. All fields are owned by the foreground context
// except sys, which is shared with the audio context.
type Loop struct {
	h      hal.HAL
	log    hal.Logger
	sys    *kernel.System
	player *audio.Player

	bitmap *raster.Bitmap
	ctrl   *animation.Controller
	pages  raster.Pages

	frames    uint64
	lastBeat  uint32
	lastPhase animation.Phase
}

// New loads the assets, starts audio and returns a loop ready to render.
func New(h hal.HAL, cfg Config) (*Loop, error) {
	if h == nil || h.Display() == nil || h.Clock() == nil {
		return nil, errors.New("app: HAL without display or clock")
	}

	bootStep(h, "bitmap")
	bm := cfg.Bitmap
	if bm == nil {
		var err error
		if bm, err = raster.DecodePBM(asset.Logo); err != nil {
			return nil, fmt.Errorf("app: logo: %w", err)
		}
	}
	track := cfg.Track
	if track == nil && len(asset.Track) > 0 {
		pcm, err := audio.ParseWAV(asset.Track)
		if err != nil {
			return nil, fmt.Errorf("app: track: %w", err)
		}
		track = pcm
	}
	if track == nil {
		track = audio.NewSynth(audio.SampleRate, audio.BPM, asset.TrackBeats)
	}
	bpm := cfg.BPM
	if bpm == 0 {
		bpm = audio.BPM
	}

	bootStep(h, "audio")
	sys := kernel.NewSystem()
	player, err := audio.NewPlayer(track, bpm, sys, h.LED())
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	l := &Loop{
		h:         h,
		log:       h.Logger(),
		sys:       sys,
		player:    player,
		bitmap:    bm,
		ctrl:      animation.New(),
		lastPhase: animation.PhaseStill,
	}
	l.logf("rotozoom %s: bitmap %d px set, track %d samples @ %d Hz, %d BPM",
		buildinfo.String(), bm.Count(), track.Len(), track.SampleRate(), bpm)

	if out := h.Audio(); out != nil {
		if err := out.Start(player); err != nil {
			return nil, fmt.Errorf("app: audio: %w", err)
		}
	}
	bootStep(h, bootDone)
	return l, nil
}

// Frame runs one iteration of the pipeline: beat → animation → transform →
// rasterize → display.
func (l *Loop) Frame() error {
	beat := l.sys.Beats().Load()
	phase := l.ctrl.Phase(beat)
	l.ctrl.Next(beat)

	t := Transform(l.ctrl)
	raster.Rasterize(t, l.bitmap, &l.pages)

	// Status must be current before the last page lands; displays may
	// redraw their overlay on it.
	if phase != l.lastPhase {
		l.logf("app: beat %d: %s -> %s (rot=%d scl=%d)", beat, l.lastPhase, phase, l.ctrl.Rot, l.ctrl.Scl)
		l.lastPhase = phase
	}
	l.lastBeat = beat

	disp := l.h.Display()
	for p := range l.pages {
		if err := disp.SelectPage(uint8(p)); err != nil {
			return fmt.Errorf("app: select page %d: %w", p, err)
		}
		if err := disp.WritePage(l.pages[p][:]); err != nil {
			return fmt.Errorf("app: write page %d: %w", p, err)
		}
	}

	l.frames++
	l.drainEvents()
	return nil
}

// Run renders frames paced to FrameRate. The deadline advances by a fixed
// quantum, so a slow frame is caught up rather than shifting the schedule.
func (l *Loop) Run(ctx context.Context, frames uint64) error {
	clock := l.h.Clock()
	deadline := clock.Micros()
	for n := uint64(0); frames == 0 || n < frames; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.Frame(); err != nil {
			return err
		}
		deadline += FramePeriodMicros
		clock.WaitUntil(deadline)
	}
	return nil
}

// Status summarizes the animation for overlays.
func (l *Loop) Status() string {
	return fmt.Sprintf("BEAT %02d %s ROT %d SCL %d", l.lastBeat, l.lastPhase, l.ctrl.Rot, l.ctrl.Scl)
}

// Pages returns the most recently rendered frame.
func (l *Loop) Pages() *raster.Pages { return &l.pages }

// Controller exposes the animation state.
func (l *Loop) Controller() *animation.Controller { return l.ctrl }

// Frames is the number of frames rendered so far.
func (l *Loop) Frames() uint64 { return l.frames }

// Player is the audio sample source feeding the beat counter.
func (l *Loop) Player() *audio.Player { return l.player }

// System is the state shared with the audio context.
func (l *Loop) System() *kernel.System { return l.sys }

// Transform builds the frame's composite map from the animation state.
func Transform(c *animation.Controller) affine.Transform {
	return affine.Identity().
		Translate(pivotX, pivotY).
		Rotate(c.Angle()).
		Scale(c.Factor()).
		Translate(recenterX, recenterY)
}

func (l *Loop) drainEvents() {
	for {
		ev, ok := l.sys.Poll()
		if !ok {
			return
		}
		switch ev.Kind {
		case kernel.EventUnderrun:
			l.logf("audio: underrun at beat %d, %d samples lost", ev.Beat, ev.Sample)
		default:
			l.logf("audio: %s at beat %d (sample %d)", ev.Kind, ev.Beat, ev.Sample)
		}
	}
}

func (l *Loop) logf(format string, args ...any) {
	if l.log == nil {
		return
	}
	l.log.WriteLineString(fmt.Sprintf(format, args...))
}

// NewApp adapts New to the runner factory signature.
func NewApp(cfg Config) hal.NewApp {
	return func(h hal.HAL) (hal.App, error) {
		return New(h, cfg)
	}
}

// Run starts the demo and never returns (device entrypoint).
func Run(h hal.HAL, cfg Config) {
	defer recoverPanic(h)
	l, err := New(h, cfg)
	if err != nil {
		fatal(h, err)
	}
	if err := l.Run(context.Background(), 0); err != nil {
		fatal(h, err)
	}
	select {}
}

func fatal(h hal.HAL, err error) {
	if log := h.Logger(); log != nil {
		log.WriteLineString("fatal: " + err.Error())
	}
	select {}
}
