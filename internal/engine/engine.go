// Package engine implements the audio side of the transport: a beep.Streamer
// that applies control commands, advances the playhead with seamless looping
// and reports the position back.
//
// Stream is called from the speaker goroutine. Everything the engine touches
// there is owned by that goroutine; the only way in or out is the lock-free
// link, so no call made on the audio path ever blocks.
package engine

import (
	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/loopdeck/internal/protocol"
)

var _ beep.Streamer = (*Engine)(nil)

// DefaultMaxCommands bounds how many commands one processing cycle applies.
const DefaultMaxCommands = 32

// Engine owns the audio source and the playback state.
type Engine struct {
	link        *protocol.EngineEnd
	maxCommands int

	stream    beep.StreamSeekCloser
	numFrames int

	state   State
	frame   int
	loop    protocol.SetLoop
	looping bool

	// position changed outside of normal playback and must be reported
	dirty bool

	err error
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxCommands sets how many commands are drained per cycle.
func WithMaxCommands(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxCommands = n
		}
	}
}

// New creates a paused engine with no stream attached.
func New(link *protocol.EngineEnd, opts ...Option) *Engine {
	e := &Engine{
		link:        link,
		maxCommands: DefaultMaxCommands,
		state:       Paused,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stream runs one processing cycle: drain pending commands, fill samples,
// report the playhead. It always fills the whole buffer (with silence when
// paused) and never finishes, so the speaker keeps driving it.
func (e *Engine) Stream(samples [][2]float64) (n int, ok bool) {
	e.link.Drain(e.apply, e.maxCommands)

	filled := 0
	if e.state == Playing && e.stream != nil {
		filled = e.advance(samples)
		e.dirty = true
		if !e.looping && e.frame >= e.numFrames {
			e.state = Paused
		}
	}
	clear(samples[filled:])

	if e.dirty && e.link.Report(protocol.TransportPos{Frame: e.frame}) {
		e.dirty = false
	}
	return len(samples), true
}

// Err returns the last error reported by the source.
func (e *Engine) Err() error { return e.err }

// State returns the current transport state. Only safe on the audio
// goroutine or while the speaker is locked.
func (e *Engine) State() State { return e.state }

// Frame returns the playhead. Same ownership rules as State.
func (e *Engine) Frame() int { return e.frame }

// Loop returns the active loop region and whether one is set.
func (e *Engine) Loop() (protocol.SetLoop, bool) { return e.loop, e.looping }

// Close releases the attached stream, including one handed over by a
// UseStream the engine never got to apply. Call only once the speaker no
// longer drives the engine.
func (e *Engine) Close() error {
	e.link.Drain(e.apply, 0)
	if e.stream == nil {
		return nil
	}
	err := e.stream.Close()
	e.stream = nil
	return err
}

func (e *Engine) apply(cmd protocol.Command) {
	switch c := cmd.(type) {
	case protocol.UseStream:
		e.attach(c.Stream)
	case protocol.SetLoop:
		e.setLoop(c)
	case protocol.Pause:
		if e.state == Playing {
			e.state = Paused
			e.dirty = true
		}
	case protocol.PlayResume:
		if e.stream == nil {
			return
		}
		if !e.looping && e.frame >= e.numFrames {
			_ = e.seek(0)
			e.dirty = true
		}
		e.state = Playing
	case protocol.SeekTo:
		if e.stream != nil {
			_ = e.seek(min(max(c.Frame, 0), e.numFrames))
			e.dirty = true
		}
	}
}

func (e *Engine) attach(s beep.StreamSeekCloser) {
	if e.stream != nil && e.stream != s {
		_ = e.stream.Close()
	}
	e.stream = s
	e.err = nil
	if s == nil {
		e.numFrames, e.frame, e.state = 0, 0, Paused
		return
	}
	e.numFrames = s.Len()
	e.frame = min(max(s.Position(), 0), e.numFrames)
	if e.looping && e.loop.Validate(e.numFrames) != nil {
		e.looping = false
	}
	e.dirty = true
}

// setLoop installs a new region. It takes effect on the next advance; a
// playhead outside the region is clamped to its start at that point. Regions
// that do not fit the stream are ignored; an empty region clears looping.
func (e *Engine) setLoop(l protocol.SetLoop) {
	if e.stream != nil && l.Validate(e.numFrames) != nil {
		return
	}
	if l.Empty() {
		e.looping = false
		return
	}
	e.loop = l
	e.looping = true
}

func (e *Engine) seek(frame int) error {
	if err := e.stream.Seek(frame); err != nil {
		e.err = err
		return err
	}
	e.frame = frame
	return nil
}

// advance fills samples from the stream and returns how many were written.
// Reaching the loop end seeks back to the loop start inside the same block,
// so the overshoot is carried over without a gap.
func (e *Engine) advance(samples [][2]float64) int {
	if e.looping && !e.loop.Contains(e.frame) {
		_ = e.seek(e.loop.Start)
	}

	filled := 0
	stalled := false
	for filled < len(samples) {
		limit := e.numFrames
		if e.looping {
			limit = e.loop.End
		}
		want := min(len(samples)-filled, limit-e.frame)
		if want <= 0 {
			if !e.looping || !e.wrap() {
				break
			}
			continue
		}

		n, ok := e.stream.Stream(samples[filled : filled+want])
		filled += n
		e.frame += n
		if n > 0 {
			stalled = false
		}
		if !ok || n == 0 {
			if err := e.stream.Err(); err != nil {
				e.err = err
				break
			}
			// The source ran dry before its reported length. Wrap once;
			// a second dry read in a row means there is nothing to play.
			if stalled || !e.looping || !e.wrap() {
				break
			}
			stalled = true
		}
	}
	return filled
}

// wrap moves the playhead back to the loop start. It returns false if the
// source refused the seek.
func (e *Engine) wrap() bool {
	return e.seek(e.loop.Start) == nil
}
