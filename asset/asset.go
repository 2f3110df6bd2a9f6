// Package asset embeds the demo's stock data.
package asset

import _ "embed"

// Logo is a 128x128 P4 bitmap whose pixel data starts at LogoOffset.
//
//go:embed logo.pbm
var Logo []byte

// LogoOffset is the size of Logo's header.
const LogoOffset = 57

// TrackBeats is the length of the synthesized track. It covers a full
// animation cycle with room to recover before the loop.
const TrackBeats = 60
