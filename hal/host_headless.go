//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// RunHeadless renders into memory without a window. Frames are paced to the
// real frame rate so the beat clock and the animation stay in step.
func RunHeadless(ctx context.Context, newApp NewApp, cfg HostConfig) error {
	return runHeadless(ctx, os.Stdout, newApp, cfg)
}

func runHeadless(ctx context.Context, w io.Writer, newApp NewApp, cfg HostConfig) error {
	h := newHostHAL(w)
	if err := h.useSpeaker(cfg); err != nil {
		return err
	}
	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer h.aud.Stop()

	err = app.Run(ctx, cfg.Frames)
	var frame [PageCount][PageWidth]byte
	n := h.pages.snapshot(&frame)
	h.logger.WriteLineString(fmt.Sprintf("headless: %d frames, %s", n, app.Status()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
