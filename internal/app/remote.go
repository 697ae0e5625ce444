package app

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/loopdeck/internal/mpris"
)

// Messages from the desktop remote. They go through Update like keys so
// that only the control thread sends commands.

// RemotePlayMsg asks for playback to start or stop.
type RemotePlayMsg struct{ Playing bool }

// RemoteToggleMsg flips playback.
type RemoteToggleMsg struct{}

// RemoteSeekMsg moves the playhead to Offset, or by Offset when Relative.
type RemoteSeekMsg struct {
	Offset   time.Duration
	Relative bool
}

// RemoteLoopMsg turns looping on (over the whole stream) or off.
type RemoteLoopMsg struct{ Looping bool }

// Remote is an mpris.Controller backed by a running program.
type Remote struct {
	send func(tea.Msg)
	snap *atomic.Pointer[mpris.Snapshot]
}

var _ mpris.Controller = (*Remote)(nil)

// Remote returns a controller that delivers requests through send, usually
// a program's Send.
func (m Model) Remote(send func(tea.Msg)) *Remote {
	return &Remote{send: send, snap: &m.res.snapshot}
}

func (r *Remote) SetPlaying(playing bool) { r.send(RemotePlayMsg{Playing: playing}) }
func (r *Remote) TogglePlayback()         { r.send(RemoteToggleMsg{}) }
func (r *Remote) SetLooping(looping bool) { r.send(RemoteLoopMsg{Looping: looping}) }

func (r *Remote) SeekBy(offset time.Duration) {
	r.send(RemoteSeekMsg{Offset: offset, Relative: true})
}

func (r *Remote) SeekTo(position time.Duration) {
	r.send(RemoteSeekMsg{Offset: position})
}

// Snapshot returns the state as of the last handled message.
func (r *Remote) Snapshot() mpris.Snapshot {
	if s := r.snap.Load(); s != nil {
		return *s
	}
	return mpris.Snapshot{}
}

func (m *Model) handleRemote(msg tea.Msg) {
	switch msg := msg.(type) {
	case RemotePlayMsg:
		if msg.Playing != m.Transport.Playing {
			m.togglePlayback()
		}
	case RemoteToggleMsg:
		m.togglePlayback()
	case RemoteSeekMsg:
		frame := m.framesIn(msg.Offset)
		if msg.Relative {
			frame += m.Transport.CurrentFrame
		}
		m.seek(frame)
	case RemoteLoopMsg:
		switch {
		case msg.Looping && m.Loop.Empty():
			m.setLoop(defaultLoop(m.Transport.NumFrames, 0))
		case !msg.Looping && !m.Loop.Empty():
			m.clearLoop()
		}
	}
}

// publish stores the snapshot answered to remote queries.
func (m *Model) publish() {
	s := mpris.Snapshot{
		Path:    m.Info.Path,
		Title:   m.Info.Title,
		Artist:  m.Info.Artist,
		Album:   m.Info.Album,
		Playing: m.Transport.Playing,
		Looping: !m.Loop.Empty(),
		Length:  m.Info.Duration(),
	}
	if m.Info.SampleRate > 0 {
		s.Position = m.Info.SampleRate.D(m.Transport.CurrentFrame)
	}
	m.res.snapshot.Store(&s)
}
