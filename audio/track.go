// Package audio plays an 8-bit mono track as the demo's beat clock.
//
// A Player hands out one sample per audio period; whoever calls it (a PWM
// timer interrupt, a speaker callback, a test) becomes the "interrupt"
// context. Beats are counted against the track position and published
// through the shared kernel.System.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Track defaults.
const (
	SampleRate = 25_000
	BPM        = 130
)

// ErrBadWAV reports a WAV file the player cannot use.
var ErrBadWAV = errors.New("audio: unsupported WAV")

// Track is a finite stream of unsigned 8-bit mono samples.
type Track interface {
	SampleRate() uint32
	Len() int
	Sample(i int) uint8
}

// PCM is a track backed by raw sample bytes.
type PCM struct {
	rate uint32
	data []byte
}

// NewPCM wraps raw unsigned 8-bit samples.
func NewPCM(rate uint32, samples []byte) *PCM {
	return &PCM{rate: rate, data: samples}
}

func (p *PCM) SampleRate() uint32 { return p.rate }
func (p *PCM) Len() int           { return len(p.data) }
func (p *PCM) Sample(i int) uint8 { return p.data[i] }

// ParseWAV reads an in-memory WAV file holding 8-bit unsigned mono PCM.
// The returned track aliases b.
func ParseWAV(b []byte) (*PCM, error) {
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: bad header", ErrBadWAV)
	}

	var (
		foundFmt bool
		pcm      PCM
	)
	for off := 12; off+8 <= len(b); {
		id := string(b[off : off+4])
		sz := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
		body := off + 8
		if sz < 0 || body+sz > len(b) {
			// Some writers leave the data size unpatched; trust the file length.
			if id != "data" {
				return nil, fmt.Errorf("%w: truncated %q chunk", ErrBadWAV, id)
			}
			sz = len(b) - body
		}

		switch id {
		case "fmt ":
			if sz < 16 {
				return nil, fmt.Errorf("%w: short fmt chunk", ErrBadWAV)
			}
			format := binary.LittleEndian.Uint16(b[body : body+2])
			channels := binary.LittleEndian.Uint16(b[body+2 : body+4])
			pcm.rate = binary.LittleEndian.Uint32(b[body+4 : body+8])
			bits := binary.LittleEndian.Uint16(b[body+14 : body+16])
			if format != 1 || channels != 1 || bits != 8 {
				return nil, fmt.Errorf("%w: want PCM 8-bit mono, got format=%d channels=%d bits=%d",
					ErrBadWAV, format, channels, bits)
			}
			if pcm.rate == 0 {
				return nil, fmt.Errorf("%w: zero sample rate", ErrBadWAV)
			}
			foundFmt = true

		case "data":
			if !foundFmt {
				return nil, fmt.Errorf("%w: data before fmt", ErrBadWAV)
			}
			if sz == 0 {
				return nil, fmt.Errorf("%w: empty data", ErrBadWAV)
			}
			pcm.data = b[body : body+sz]
			return &pcm, nil
		}

		off = body + sz + sz%2
	}
	return nil, fmt.Errorf("%w: missing fmt or data chunk", ErrBadWAV)
}
