//go:build wavtrack

package asset

import _ "embed"

//go:embed track.wav
var trackWAV []byte

func init() { Track = trackWAV }
