//go:build !tinygo && !cgo

package hal

import "fmt"

var errNoSound = fmt.Errorf("host audio: sound output requires cgo (build with CGO_ENABLED=1): %w", ErrNotImplemented)

func newSpeakerAudio() (AudioOut, error) { return nil, errNoSound }
