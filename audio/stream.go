//go:build !tinygo

package audio

import "github.com/gopxl/beep"

// resampleQuality is the beep.Resample interpolation quality.
const resampleQuality = 4

// Streamer exposes a sample source as an endless beep.Streamer.
//
// Whatever pulls from it drives the beat clock, so pulling must happen at the
// audio rate (a speaker or a paced loop).
func Streamer(src Source) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := toFloat(src.NextSample())
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	})
}

// Resampled converts a sample source to the given output rate.
func Resampled(src Source, rate beep.SampleRate) beep.Streamer {
	in := beep.SampleRate(src.SampleRate())
	if in == rate {
		return Streamer(src)
	}
	return beep.Resample(resampleQuality, in, rate, Streamer(src))
}

// trackStreamer plays a track once.
type trackStreamer struct {
	t   Track
	pos int
}

func (s *trackStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.t.Len() {
		return 0, false
	}
	n := 0
	for n < len(samples) && s.pos < s.t.Len() {
		v := toFloat(s.t.Sample(s.pos))
		samples[n] = [2]float64{v, v}
		s.pos++
		n++
	}
	return n, true
}

func (s *trackStreamer) Err() error { return nil }

func toFloat(u uint8) float64 {
	return float64(int(u)-128) / 128
}

// fromFloat maps [-1, 1) to an unsigned 8-bit sample, clamping.
func fromFloat(v float64) uint8 {
	s := int(v*128 + 128.5)
	if s < 0 {
		s = 0
	}
	if s > 255 {
		s = 255
	}
	return uint8(s)
}
