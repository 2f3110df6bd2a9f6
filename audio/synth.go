package audio

import "math"

const (
	kickMillis = 120
	hatMillis  = 30
	sineSize   = 256
)

// bassline in Hz, one note per beat, repeating.
var bassline = [...]float64{55, 55, 65.41, 49}

// Synth is a procedural four-on-the-floor track: a kick on every beat, a hat
// on the off-beat and a bass note per beat. Samples are computed on demand
// from small tables, so the track needs no large asset.
type Synth struct {
	rate  uint32
	spb   int
	beats int

	kick []int8
	hat  []int8
	sine [sineSize]int8
	// bassInc is the 16.16 sine-table step per sample for each note.
	bassInc [len(bassline)]uint32
}

// NewSynth builds a track of the given length in beats.
func NewSynth(rate, bpm, beats uint32) *Synth {
	s := &Synth{
		rate:  rate,
		spb:   int(rate * 60 / bpm),
		beats: int(beats),
	}

	for i := range s.sine {
		s.sine[i] = int8(127 * math.Sin(2*math.Pi*float64(i)/sineSize))
	}

	// Kick: sine sweep from 150 Hz down to 45 Hz with a linear decay.
	n := int(rate) * kickMillis / 1000
	s.kick = make([]int8, n)
	var phase float64
	for i := range s.kick {
		t := float64(i) / float64(n)
		freq := 45 + 105*math.Exp(-6*t)
		phase += 2 * math.Pi * freq / float64(rate)
		s.kick[i] = int8(127 * (1 - t) * math.Sin(phase))
	}

	// Hat: xorshift noise with a fast decay.
	n = int(rate) * hatMillis / 1000
	s.hat = make([]int8, n)
	x := uint32(0x9e3779b9)
	for i := range s.hat {
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		env := 1 - float64(i)/float64(n)
		s.hat[i] = int8(float64(int8(x>>24)) * env * env)
	}

	for i, f := range bassline {
		s.bassInc[i] = uint32(f * sineSize * 65536 / float64(rate))
	}
	return s
}

func (s *Synth) SampleRate() uint32 { return s.rate }
func (s *Synth) Len() int           { return s.spb * s.beats }

// SamplesPerBeat is the beat length in samples.
func (s *Synth) SamplesPerBeat() int { return s.spb }

func (s *Synth) Sample(i int) uint8 {
	beat := i / s.spb
	t := i % s.spb

	var mix int32
	if t < len(s.kick) {
		mix += int32(s.kick[t]) * 5 / 8
	}
	if off := t - s.spb/2; off >= 0 && off < len(s.hat) {
		mix += int32(s.hat[off]) / 6
	}
	inc := s.bassInc[beat%len(s.bassInc)]
	idx := uint32((uint64(t) * uint64(inc)) >> 16)
	mix += int32(s.sine[idx%sineSize]) / 4

	if mix > 127 {
		mix = 127
	}
	if mix < -128 {
		mix = -128
	}
	return uint8(mix + 128)
}
