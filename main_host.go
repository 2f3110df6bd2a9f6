//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"rotozoom/app"
	"rotozoom/audio"
	"rotozoom/hal"
	"rotozoom/raster"
)

func main() {
	var (
		cfg     hal.HostConfig
		appCfg  app.Config
		wavPath string
		pbmPath string
		bpm     uint
	)
	flag.BoolVar(&cfg.Headless, "headless", false, "Run without a window.")
	flag.BoolVar(&cfg.Term, "term", false, "Preview in the terminal.")
	flag.StringVar(&cfg.SPI, "spi", "", "Drive a UC1701 on this SPI port (e.g. /dev/spidev0.0).")
	flag.StringVar(&cfg.DC, "dc", "GPIO24", "UC1701 command/data GPIO.")
	flag.StringVar(&cfg.RST, "rst", "", "UC1701 reset GPIO (optional).")
	flag.IntVar(&cfg.Contrast, "contrast", 0, "UC1701 contrast 1..63 (0 = init default).")
	flag.BoolVar(&cfg.Invert, "invert", false, "Invert the UC1701 display.")
	flag.Uint64Var(&cfg.Frames, "frames", 0, "Stop after N frames (0 = run forever).")
	flag.BoolVar(&cfg.Sound, "sound", false, "Play audio on the sound device in headless, term and SPI modes.")
	flag.BoolVar(&cfg.Silent, "silent", false, "Do not open the sound device in window mode.")
	flag.IntVar(&cfg.Scale, "scale", 2, "Window zoom factor.")
	flag.StringVar(&wavPath, "wav", "", "Track to play (any PCM WAV; empty = synthesized).")
	flag.StringVar(&pbmPath, "pbm", "", "128x128 P4 PBM to spin (empty = stock logo).")
	flag.UintVar(&bpm, "bpm", audio.BPM, "Track tempo.")
	flag.Parse()

	appCfg.BPM = uint32(bpm)
	if wavPath != "" {
		t, err := audio.LoadWAV(wavPath, audio.SampleRate)
		if err != nil {
			fatal(err)
		}
		appCfg.Track = t
	}
	if pbmPath != "" {
		b, err := os.ReadFile(pbmPath)
		if err != nil {
			fatal(err)
		}
		bm, err := raster.DecodePBM(b)
		if err != nil {
			fatal(err)
		}
		appCfg.Bitmap = bm
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := hal.Run(ctx, app.NewApp(appCfg), cfg); err != nil {
		if err == context.Canceled {
			return
		}
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
