package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/loopdeck/internal/errmsg"
	"github.com/llehouerou/loopdeck/internal/keymap"
	"github.com/llehouerou/loopdeck/internal/protocol"
	"github.com/llehouerou/loopdeck/internal/transport"
)

// errEmptyLoop is shown when a loop edge would leave no region.
var errEmptyLoop = errors.New("loop region would be empty")

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.layout()

	case RepaintMsg:
		m.drainReports()

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case RemotePlayMsg, RemoteToggleMsg, RemoteSeekMsg, RemoteLoopMsg:
		m.handleRemote(msg)
	}

	m.publish()
	return m, cmd
}

// layout places the rail across the window, inset by the configured
// padding on both sides.
func (m *Model) layout() {
	pad := float64(m.display.RailPadding)
	m.control.Rail = transport.LayoutFor(0, float64(m.Width-1), pad, railRow, float64(m.display.HitTolerance))
}

// drainReports applies every pending position report; the last one wins.
// With no loop the engine pauses at the end of the stream, so a report there
// means playback stopped. Captured stderr lines end up in the status line.
func (m *Model) drainReports() {
	m.res.ctl.Drain(func(st protocol.Status) {
		if pos, ok := st.(protocol.TransportPos); ok {
			m.Transport.Apply(pos)
		}
	})
	if m.Loop.Empty() && m.Transport.NumFrames > 0 && m.Transport.CurrentFrame >= m.Transport.NumFrames {
		m.Transport.Playing = false
	}
	m.res.stderr.Drain(func(line string) {
		m.res.logger.Warn("stderr", "line", line)
		m.StatusMsg = line
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.res.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return tea.Quit
	case keymap.ActionPlayPause:
		m.togglePlayback()
	case keymap.ActionRewind:
		m.seek(0)
	case keymap.ActionNudgeBack:
		m.seek(m.Transport.CurrentFrame - m.nudge())
	case keymap.ActionNudgeAhead:
		m.seek(m.Transport.CurrentFrame + m.nudge())
	case keymap.ActionLoopStart:
		end := m.Transport.NumFrames
		if !m.Loop.Empty() && m.Loop.End > m.Transport.CurrentFrame {
			end = m.Loop.End
		}
		m.setLoop(protocol.SetLoop{Start: m.Transport.CurrentFrame, End: end})
	case keymap.ActionLoopEnd:
		start := 0
		if !m.Loop.Empty() && m.Loop.Start < m.Transport.CurrentFrame {
			start = m.Loop.Start
		}
		m.setLoop(protocol.SetLoop{Start: start, End: m.Transport.CurrentFrame})
	case keymap.ActionLoopClear:
		m.clearLoop()
	}
	return nil
}

// togglePlayback flips the playing flag once the engine has been told.
func (m *Model) togglePlayback() {
	if m.Transport.Playing {
		if m.send(errmsg.OpSendCommand, protocol.Pause{}) {
			m.Transport.Playing = false
		}
		return
	}
	if m.send(errmsg.OpSendCommand, protocol.PlayResume{}) {
		m.Transport.Playing = true
	}
}

func (m *Model) setLoop(l protocol.SetLoop) {
	if l.Empty() {
		m.fail(errmsg.OpSetLoop, errEmptyLoop)
		return
	}
	if err := l.Validate(m.Transport.NumFrames); err != nil {
		m.fail(errmsg.OpSetLoop, err)
		return
	}
	if m.send(errmsg.OpSetLoop, l) {
		m.Loop = l
	}
}

func (m *Model) clearLoop() {
	if m.send(errmsg.OpSetLoop, protocol.SetLoop{}) {
		m.Loop = protocol.SetLoop{}
	}
}

// seek moves the playhead. The engine clamps into the loop on its next
// playing block; the displayed frame follows its reports.
func (m *Model) seek(frame int) {
	frame = m.Transport.clamp(frame)
	if m.send(errmsg.OpSeek, protocol.SeekTo{Frame: frame}) {
		m.Transport.CurrentFrame = frame
	}
}

func (m Model) nudge() int {
	return m.framesIn(time.Second)
}

func (m Model) framesIn(d time.Duration) int {
	if m.Info.SampleRate <= 0 {
		return 0
	}
	return m.Info.SampleRate.N(d)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y := float64(msg.X), float64(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.control.Press(x, y) {
			return
		}
		m.dragValue = -1
		m.dragTo(x)
	case tea.MouseActionMotion:
		m.dragTo(x)
	case tea.MouseActionRelease:
		if m.control.Dragging() {
			m.dragTo(x)
			m.control.Release()
		}
	}
}

// dragTo seeks to the value under x when it differs from the last one sent
// during this gesture.
func (m *Model) dragTo(x float64) {
	value, active := m.control.Drag(x, m.Transport.NumFrames)
	if !active || value == m.dragValue {
		return
	}
	m.dragValue = value
	m.seek(value)
}

// send delivers cmd and reports a failure in the status line.
func (m *Model) send(op errmsg.Op, cmd protocol.Command) bool {
	if err := m.res.ctl.Send(context.Background(), cmd); err != nil {
		m.fail(op, err)
		return false
	}
	m.StatusMsg = ""
	return true
}

func (m *Model) fail(op errmsg.Op, err error) {
	m.StatusMsg = errmsg.Format(op, err)
	m.res.logger.Warn(m.StatusMsg)
}
