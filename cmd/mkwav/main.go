package main

import (
	"flag"
	"fmt"
	"os"

	"rotozoom/asset"
	"rotozoom/audio"
)

func main() {
	var (
		inPath  = flag.String("in", "", "Input WAV to convert (empty = synthesize the stock track).")
		outPath = flag.String("out", "", "Output WAV (8-bit unsigned mono).")
		rate    = flag.Uint("rate", audio.SampleRate, "Output sample rate in Hz.")
		bpm     = flag.Uint("bpm", audio.BPM, "Tempo of the synthesized track.")
		beats   = flag.Uint("beats", asset.TrackBeats, "Length of the synthesized track in beats.")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: mkwav -out track.wav [-in source.wav] [-rate 25000] [-bpm 130] [-beats 60]")
	}
	if *rate == 0 || *bpm == 0 || *beats == 0 {
		fatalf("rate, bpm and beats must be positive")
	}

	var (
		track audio.Track
		err   error
	)
	if *inPath != "" {
		track, err = audio.LoadWAV(*inPath, uint32(*rate))
		if err != nil {
			fatalf("decode: %v", err)
		}
	} else {
		track = audio.NewSynth(uint32(*rate), uint32(*bpm), uint32(*beats))
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fatalf("create: %v", err)
	}
	if err := audio.WriteWAV(out, track); err != nil {
		out.Close()
		fatalf("encode: %v", err)
	}
	if err := out.Close(); err != nil {
		fatalf("close: %v", err)
	}
	fmt.Printf("%s: %d samples @ %d Hz (%.1fs)\n", *outPath, track.Len(), track.SampleRate(),
		float64(track.Len())/float64(track.SampleRate()))
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
