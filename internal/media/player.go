// Package media models the play/pause toggle for an embedded soundtrack.
// Actual playback belongs to the host (browser audio element, external player).
package media

import (
	"errors"
	"sync"

	"github.com/whiterosearts/petalsite/internal/content"
)

// ErrUnplayable is returned when a source cannot be streamed directly, for
// example a YouTube page that still needs converting to an audio file.
var ErrUnplayable = errors.New("media: source is not a directly playable file")

// Player tracks the playing state of one soundtrack.
type Player struct {
	mu      sync.Mutex
	track   content.Soundtrack
	playing bool
}

// NewPlayer returns a paused player for track.
func NewPlayer(track content.Soundtrack) *Player {
	return &Player{track: track}
}

// Track returns the soundtrack the player controls.
func (p *Player) Track() content.Soundtrack { return p.track }

// Playing reports the current state.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Toggle flips between playing and paused and returns the new state.
// Starting an unplayable source fails and leaves the player paused.
func (p *Player) Toggle() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.playing && !p.track.Playable() {
		return false, ErrUnplayable
	}
	p.playing = !p.playing
	return p.playing, nil
}

// Pause stops playback.
func (p *Player) Pause() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}
