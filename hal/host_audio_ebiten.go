//go:build !tinygo && cgo

package hal

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"

	roto "rotozoom/audio"
)

// ebitenAudio plays a source through the window's audio context.
type ebitenAudio struct {
	mu     sync.Mutex
	player *audio.Player
}

func newEbitenAudio() *ebitenAudio { return &ebitenAudio{} }

func (a *ebitenAudio) Start(src SampleSource) error {
	if src == nil || src.SampleRate() == 0 {
		return errors.New("host audio: invalid source")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.player != nil {
		return errors.New("host audio: already started")
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(OutputSampleRate)
	}
	s := roto.Resampled(src, beep.SampleRate(ctx.SampleRate()))
	p, err := ctx.NewPlayer(&streamReader{s: s})
	if err != nil {
		return err
	}
	p.SetBufferSize(50 * time.Millisecond)
	p.Play()
	a.player = p
	return nil
}

func (a *ebitenAudio) Stop() error {
	a.mu.Lock()
	p := a.player
	a.player = nil
	a.mu.Unlock()
	if p == nil {
		return nil
	}
	return p.Close()
}

// streamReader renders a beep.Streamer as 16-bit little-endian stereo.
type streamReader struct {
	s   beep.Streamer
	buf [][2]float64
}

func (r *streamReader) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]
	n, ok := r.s.Stream(buf)
	if n == 0 && !ok {
		if err := r.s.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	for i := 0; i < n; i++ {
		l, rr := pcm16(buf[i][0]), pcm16(buf[i][1])
		j := i * 4
		p[j+0] = byte(l)
		p[j+1] = byte(l >> 8)
		p[j+2] = byte(rr)
		p[j+3] = byte(rr >> 8)
	}
	return n * 4, nil
}

func pcm16(v float64) int16 {
	if v >= 1 {
		return 32767
	}
	if v <= -1 {
		return -32768
	}
	return int16(v * 32768)
}
