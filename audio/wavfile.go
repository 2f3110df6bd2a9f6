//go:build !tinygo

package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// LoadWAV reads a WAV file as an 8-bit mono track at rate. A file already
// in that format is used as is; anything else beep can decode is converted.
func LoadWAV(path string, rate uint32) (*PCM, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return loadWAV(b, rate)
}

func loadWAV(b []byte, rate uint32) (*PCM, error) {
	if pcm, err := ParseWAV(b); err == nil && pcm.SampleRate() == rate {
		return pcm, nil
	}
	return DecodeWAV(bytes.NewReader(b), rate)
}

// DecodeWAV converts any PCM WAV beep understands to an 8-bit mono track
// at rate.
func DecodeWAV(r io.Reader, rate uint32) (*PCM, error) {
	s, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadWAV, err)
	}
	defer s.Close()

	var st beep.Streamer = s
	if format.SampleRate != beep.SampleRate(rate) {
		st = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(rate), s)
	}

	var (
		out []byte
		buf = make([][2]float64, 1024)
	)
	for {
		n, ok := st.Stream(buf)
		for _, frame := range buf[:n] {
			out = append(out, fromFloat((frame[0]+frame[1])/2))
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("audio: decode: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrBadWAV)
	}
	return NewPCM(rate, out), nil
}

// WriteWAV encodes a track as 8-bit mono PCM with a canonical 44-byte header.
func WriteWAV(w io.WriteSeeker, t Track) error {
	format := beep.Format{
		SampleRate:  beep.SampleRate(t.SampleRate()),
		NumChannels: 1,
		Precision:   1,
	}
	if err := wav.Encode(w, &trackStreamer{t: t}, format); err != nil {
		return fmt.Errorf("audio: encode: %w", err)
	}
	return nil
}
