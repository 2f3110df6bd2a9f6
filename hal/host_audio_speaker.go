//go:build !tinygo && cgo

package hal

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	roto "rotozoom/audio"
)

// speakerBuffer is the beep speaker latency.
const speakerBuffer = 50 * time.Millisecond

var speakerOnce struct {
	sync.Once
	err error
}

// speakerAudio plays a source through the default sound device without a
// window.
type speakerAudio struct {
	mu      sync.Mutex
	playing bool
}

func newSpeakerAudio() (AudioOut, error) {
	sr := beep.SampleRate(OutputSampleRate)
	speakerOnce.Do(func() {
		speakerOnce.err = speaker.Init(sr, sr.N(speakerBuffer))
	})
	if speakerOnce.err != nil {
		return nil, speakerOnce.err
	}
	return &speakerAudio{}, nil
}

func (a *speakerAudio) Start(src SampleSource) error {
	if src == nil || src.SampleRate() == 0 {
		return errors.New("host audio: invalid source")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.playing {
		return errors.New("host audio: already started")
	}
	speaker.Play(roto.Resampled(src, beep.SampleRate(OutputSampleRate)))
	a.playing = true
	return nil
}

func (a *speakerAudio) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.playing {
		speaker.Clear()
		a.playing = false
	}
	return nil
}
