// Package mpris exposes the transport on the session bus so desktop media
// keys and applets can drive it.
package mpris

import "time"

// Snapshot is the transport state answered to bus queries.
type Snapshot struct {
	Path     string
	Title    string
	Artist   string
	Album    string
	Playing  bool
	Looping  bool
	Position time.Duration
	Length   time.Duration
}

// Controller receives bus requests. Methods are called from bus goroutines
// and must return promptly.
type Controller interface {
	SetPlaying(playing bool)
	TogglePlayback()
	SeekBy(offset time.Duration)
	SeekTo(position time.Duration)
	SetLooping(looping bool)
	Snapshot() Snapshot
}
