package kernel

import "sync/atomic"

// BeatCounter counts beats since the audio track last looped.
//
// The sample clock is the only writer. The render loop reads it once per frame
// without further synchronization; a value one sample period stale is fine.
type BeatCounter struct {
	n atomic.Uint32
}

// Load returns the current beat count.
func (b *BeatCounter) Load() uint32 { return b.n.Load() }

// Inc adds one beat and returns the new count.
func (b *BeatCounter) Inc() uint32 { return b.n.Add(1) }

// Reset sets the count back to zero when the track loops.
func (b *BeatCounter) Reset() { b.n.Store(0) }
