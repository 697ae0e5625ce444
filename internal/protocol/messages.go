// Package protocol defines the messages exchanged between the control
// goroutine and the audio engine, and the channels that carry them.
package protocol

import (
	"fmt"

	"github.com/gopxl/beep/v2"
)

// Command is a control→engine message.
// Only types in this package implement it.
type Command interface {
	command()
	fmt.Stringer
}

// Status is an engine→control message.
type Status interface {
	status()
	fmt.Stringer
}

// Shutdown is the zero-payload stop signal for the repaint ticker.
type Shutdown struct{}

// UseStream hands an opened, seekable source to the engine. The sender must
// not touch Stream after a successful send.
type UseStream struct {
	Stream beep.StreamSeekCloser
}

// SetLoop defines the loop region [Start, End) in frames.
type SetLoop struct {
	Start int
	End   int
}

// Pause suspends playback, holding the current frame.
type Pause struct{}

// PlayResume starts or continues playback from the current frame.
type PlayResume struct{}

// SeekTo moves the playhead to Frame.
type SeekTo struct {
	Frame int
}

// TransportPos reports the engine's playhead.
type TransportPos struct {
	Frame int
}

func (UseStream) command()  {}
func (SetLoop) command()    {}
func (Pause) command()      {}
func (PlayResume) command() {}
func (SeekTo) command()     {}

func (TransportPos) status() {}

func (UseStream) String() string  { return "UseStream" }
func (l SetLoop) String() string  { return fmt.Sprintf("SetLoop{%d, %d}", l.Start, l.End) }
func (Pause) String() string      { return "Pause" }
func (PlayResume) String() string { return "PlayResume" }
func (s SeekTo) String() string   { return fmt.Sprintf("SeekTo{%d}", s.Frame) }

func (p TransportPos) String() string { return fmt.Sprintf("TransportPos{%d}", p.Frame) }

// Validate checks start <= end <= numFrames with a non-negative start.
func (l SetLoop) Validate(numFrames int) error {
	if l.Start < 0 || l.Start > l.End || l.End > numFrames {
		return fmt.Errorf("%w: %v with %d frames", ErrInvalidLoop, l, numFrames)
	}
	return nil
}

// Empty reports whether the region has no length.
func (l SetLoop) Empty() bool {
	return l.End <= l.Start
}

// Contains reports whether frame lies in [Start, End).
func (l SetLoop) Contains(frame int) bool {
	return frame >= l.Start && frame < l.End
}
