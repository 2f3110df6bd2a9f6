package audio

import (
	"fmt"

	"rotozoom/kernel"
)

// LED is the heartbeat output.
type LED interface {
	High()
	Low()
}

// Source produces unsigned 8-bit mono samples at a fixed rate.
type Source interface {
	SampleRate() uint32
	NextSample() uint8
}

// Player walks a track one sample at a time and keeps the shared beat count.
// It implements Source; NextSample must only be called from one
// context at a time.
type Player struct {
	track Track
	sys   *kernel.System
	led   LED

	spb     uint32
	ledSpan uint32

	pos     int
	ledHigh bool
}

// NewPlayer returns a player for track at the given tempo. led may be nil.
func NewPlayer(track Track, bpm uint32, sys *kernel.System, led LED) (*Player, error) {
	if track == nil || track.Len() == 0 {
		return nil, fmt.Errorf("audio: empty track")
	}
	rate := track.SampleRate()
	if rate == 0 || bpm == 0 {
		return nil, fmt.Errorf("audio: invalid rate %d or tempo %d", rate, bpm)
	}
	spb := rate * 60 / bpm
	if spb == 0 {
		return nil, fmt.Errorf("audio: tempo %d too fast for %d Hz", bpm, rate)
	}
	return &Player{
		track:   track,
		sys:     sys,
		led:     led,
		spb:     spb,
		ledSpan: rate / 20,
	}, nil
}

func (p *Player) SampleRate() uint32 { return p.track.SampleRate() }

// SamplesPerBeat is the beat length in samples.
func (p *Player) SamplesPerBeat() uint32 { return p.spb }

// Position is the current sample index.
func (p *Player) Position() int { return p.pos }

// NextSample returns the next sample and advances the beat clock. The first
// sample of every beat bumps the beat count; the end of the track wraps to
// the start and resets it to zero.
func (p *Player) NextSample() uint8 {
	phase := uint32(p.pos) % p.spb
	if phase == 0 {
		p.sys.Beats().Inc()
	}
	p.heartbeat(phase < p.ledSpan)

	s := p.track.Sample(p.pos)
	p.pos++
	if p.pos >= p.track.Len() {
		p.sys.Post(kernel.Event{Kind: kernel.EventLoop, Beat: p.sys.Beats().Load(), Sample: uint32(p.pos)})
		p.pos = 0
		p.sys.Beats().Reset()
	}
	return s
}

// Underrun records samples the output skipped. It runs in the audio context.
func (p *Player) Underrun(missed uint64) {
	if missed > 0xffffffff {
		missed = 0xffffffff
	}
	p.sys.Post(kernel.Event{Kind: kernel.EventUnderrun, Beat: p.sys.Beats().Load(), Sample: uint32(missed)})
}

func (p *Player) heartbeat(on bool) {
	if p.led == nil || on == p.ledHigh {
		return
	}
	p.ledHigh = on
	if on {
		p.led.High()
	} else {
		p.led.Low()
	}
}
