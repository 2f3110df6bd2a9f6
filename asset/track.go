package asset

//go:generate go run ../cmd/mkwav -out track.wav

// Track is an 8-bit mono WAV played instead of the synthesized track. It is
// nil unless the binary is built with -tags wavtrack.
var Track []byte
