package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"rotozoom/animation"
	"rotozoom/app"
	"rotozoom/asset"
	"rotozoom/audio"
	"rotozoom/internal/overlay"
	"rotozoom/raster"
)

var (
	ink   = color.RGBA{0x1c, 0x2a, 0x1e, 0xff}
	paper = color.RGBA{0xa8, 0xc6, 0x8c, 0xff}
)

func main() {
	var (
		outPath = flag.String("out", "", "Output PNG.")
		frame   = flag.Uint("frame", 0, "Frame number to render (60 fps timeline).")
		bpm     = flag.Uint("bpm", audio.BPM, "Tempo driving the beat clock.")
		scale   = flag.Int("scale", 4, "Nearest-neighbour zoom factor.")
		pbm     = flag.String("pbm", "", "Source bitmap (128x128 P4 PBM; empty = stock logo).")
		status  = flag.Bool("status", true, "Draw the status line.")
	)
	flag.Parse()

	if *outPath == "" || *scale <= 0 || *bpm == 0 || *bpm > audio.SampleRate*60 {
		fatalf("usage: rotosnap -out frame.png [-frame N] [-bpm 130] [-scale 4] [-pbm logo.pbm]")
	}

	data := asset.Logo
	if *pbm != "" {
		b, err := os.ReadFile(*pbm)
		if err != nil {
			fatalf("read: %v", err)
		}
		data = b
	}
	bm, err := raster.DecodePBM(data)
	if err != nil {
		fatalf("bitmap: %v", err)
	}

	img := render(bm, uint64(*frame), uint32(*bpm), *status)
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()**scale, b.Dy()**scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	out, err := os.Create(*outPath)
	if err != nil {
		fatalf("create: %v", err)
	}
	if err := png.Encode(out, dst); err != nil {
		out.Close()
		fatalf("encode: %v", err)
	}
	if err := out.Close(); err != nil {
		fatalf("close: %v", err)
	}
}

// beatAt is the beat count the audio clock reports at a 60 fps frame: the
// first sample of each beat bumps it, and the track loop restarts it. Beats
// are whole samples long, as in audio.Player.
func beatAt(frame uint64, bpm uint32) uint32 {
	sample := frame * audio.SampleRate / app.FrameRate
	spb := uint64(audio.SampleRate * 60 / bpm)
	return uint32(sample/spb%asset.TrackBeats) + 1
}

// replay runs the controller over every frame up to and including frame.
func replay(frame uint64, bpm uint32) *animation.Controller {
	c := animation.New()
	for f := uint64(0); f <= frame; f++ {
		c.Next(beatAt(f, bpm))
	}
	return c
}

// render draws a frame as the panel shows it, with an optional status line.
func render(bm *raster.Bitmap, frame uint64, bpm uint32, status bool) *image.RGBA {
	c := replay(frame, bpm)
	var pages raster.Pages
	raster.Rasterize(app.Transform(c), bm, &pages)

	h := raster.Rows
	if status {
		h += overlay.LineHeight + 2
	}
	img := image.NewRGBA(image.Rect(0, 0, raster.Size, h))
	cv := overlay.NewCanvas(img)
	cv.Fill(paper)
	for y := 0; y < raster.Rows; y++ {
		for x := 0; x < raster.Size; x++ {
			if pages.Pixel(x, y) {
				img.SetRGBA(x, y, ink)
			}
		}
	}
	if status {
		beat := beatAt(frame, bpm)
		line := fmt.Sprintf("F%d B%d %s", frame, beat, c.Phase(beat))
		cv.Text(1, raster.Rows+1, ink, line)
	}
	return img
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
