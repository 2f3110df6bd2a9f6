//go:build !tinygo

package hal

import "context"

// OutputSampleRate is the host sound device rate; tracks are resampled to it.
const OutputSampleRate = 44100

// HostConfig selects and tunes the host runner.
type HostConfig struct {
	// Headless renders into memory only.
	Headless bool
	// Term previews in the terminal.
	Term bool
	// SPI names a periph SPI port with a UC1701 attached ("" = none).
	SPI string
	DC  string
	RST string
	// Contrast sets the UC1701 electronic volume, 1..63 (0 = init default).
	Contrast int
	// Invert swaps lit and unlit pixels on the UC1701.
	Invert bool

	// Frames stops after N frames (0 = run until interrupted).
	Frames uint64
	// Sound plays audio on the default device outside window mode.
	Sound bool
	// Silent keeps window mode off the sound device.
	Silent bool
	// Scale is the window zoom factor.
	Scale int
}

// Run dispatches to the runner cfg selects. The window is the default.
func Run(ctx context.Context, newApp NewApp, cfg HostConfig) error {
	switch {
	case cfg.SPI != "":
		return RunSPI(ctx, newApp, cfg)
	case cfg.Term:
		return RunTerm(ctx, newApp, cfg)
	case cfg.Headless:
		return RunHeadless(ctx, newApp, cfg)
	default:
		return RunWindow(newApp, cfg)
	}
}

// useSpeaker swaps the silent sample clock for the sound device.
func (h *hostHAL) useSpeaker(cfg HostConfig) error {
	if !cfg.Sound {
		return nil
	}
	a, err := newSpeakerAudio()
	if err != nil {
		return err
	}
	h.aud = a
	return nil
}
