// Package app is the control thread: a bubbletea model that opens the
// stream, hands it to the engine, turns keys and mouse gestures into
// commands and folds position reports back into what is drawn.
package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/loopdeck/internal/config"
	"github.com/llehouerou/loopdeck/internal/errmsg"
	"github.com/llehouerou/loopdeck/internal/keymap"
	"github.com/llehouerou/loopdeck/internal/mpris"
	"github.com/llehouerou/loopdeck/internal/protocol"
	"github.com/llehouerou/loopdeck/internal/spsc"
	"github.com/llehouerou/loopdeck/internal/state"
	"github.com/llehouerou/loopdeck/internal/stderr"
	"github.com/llehouerou/loopdeck/internal/stream"
	"github.com/llehouerou/loopdeck/internal/ticker"
	"github.com/llehouerou/loopdeck/internal/transport"
)

// railRow is the view line the transport rail is drawn on.
const railRow = 2

// Options collects what New needs. Control is the control end of a link
// whose engine end is already attached to an engine.
type Options struct {
	Path       string
	TrackIndex int
	Channels   int
	LoopTail   int

	Opener  stream.Opener
	Control *protocol.ControlEnd
	State   state.Interface
	Stderr  *stderr.Capture
	Logger  *slog.Logger

	RepaintInterval time.Duration
	Display         config.DisplayConfig
}

// shared is the part of the model that must not be copied by value
// through Update.
type shared struct {
	ctl      *protocol.ControlEnd
	shutdown *spsc.Producer[protocol.Shutdown]
	ticker   *ticker.Ticker
	state    state.Interface
	stderr   *stderr.Capture
	logger   *slog.Logger
	keys     *keymap.Resolver
	snapshot atomic.Pointer[mpris.Snapshot]

	closeOnce sync.Once
	closeErr  error
}

// Model is the root application model.
type Model struct {
	res *shared

	Info      stream.Info
	Transport TransportState
	Loop      protocol.SetLoop

	control   transport.Control
	dragValue int
	display   config.DisplayConfig

	StatusMsg string
	Width     int
	Height    int
}

// New opens the stream, hands it to the engine and sets the initial loop.
// Any failure here is fatal: the returned error carries the failed
// operation.
func New(ctx context.Context, opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opener := opts.Opener
	if opener == nil {
		opener = stream.FileOpener{}
	}

	src, err := opener.Open(opts.Path, opts.TrackIndex, opts.Channels, true)
	if err != nil {
		return Model{}, errmsg.WrapWith(errmsg.OpStreamOpen, opts.Path, err)
	}
	if err := src.SeekTo(0, 0); err != nil {
		src.Close()
		return Model{}, errmsg.WrapWith(errmsg.OpStreamOpen, opts.Path, err)
	}
	if err := src.BlockUntilReady(ctx); err != nil {
		src.Close()
		return Model{}, errmsg.WrapWith(errmsg.OpStreamOpen, opts.Path, err)
	}

	info := src.Info()
	numFrames := info.NumFrames
	logger.Info("stream opened",
		"path", opts.Path,
		"frames", numFrames,
		"rate", int(info.SampleRate),
		"format", info.Format)

	if err := opts.Control.Send(ctx, protocol.UseStream{Stream: src}); err != nil {
		// The engine never saw the stream, so it is still ours to close.
		src.Close()
		return Model{}, errmsg.Wrap(errmsg.OpSendCommand, err)
	}

	loop := defaultLoop(numFrames, opts.LoopTail)
	frame := 0
	if sess := restoreSession(opts.State, opts.Path, numFrames, logger); sess != nil {
		if sess.HasLoop() {
			saved := protocol.SetLoop{Start: int(*sess.LoopStart), End: int(*sess.LoopEnd)}
			if saved.Validate(numFrames) == nil {
				loop = saved
			}
		}
		frame = min(max(sess.Frame, 0), numFrames)
	}

	// From here on the stream belongs to the engine; Engine.Close releases
	// it even if the UseStream was never applied.
	if err := opts.Control.Send(ctx, loop); err != nil {
		return Model{}, errmsg.Wrap(errmsg.OpSendCommand, err)
	}
	if frame > 0 {
		if err := opts.Control.Send(ctx, protocol.SeekTo{Frame: frame}); err != nil {
			return Model{}, errmsg.Wrap(errmsg.OpSendCommand, err)
		}
	}

	tx, rx := spsc.New[protocol.Shutdown](1)

	m := Model{
		res: &shared{
			ctl:      opts.Control,
			shutdown: tx,
			ticker:   ticker.New(opts.RepaintInterval, rx, logger),
			state:    opts.State,
			stderr:   opts.Stderr,
			logger:   logger,
			keys:     keymap.NewResolver(keymap.All),
		},
		Info:      info,
		Transport: TransportState{NumFrames: numFrames, CurrentFrame: frame},
		Loop:      loop,
		control:   transport.NewControl(transport.Rail{}),
		display:   opts.Display,
	}
	m.publish()
	return m, nil
}

// restoreSession returns the saved session for path when it still
// describes a stream of the same length.
func restoreSession(st state.Interface, path string, numFrames int, logger *slog.Logger) *state.Session {
	if st == nil {
		return nil
	}
	sess, err := st.GetSession(path)
	if err != nil {
		logger.Warn(errmsg.Format(errmsg.OpSessionLoad, err))
		return nil
	}
	if sess == nil || sess.NumFrames != numFrames {
		return nil
	}
	return sess
}

// StartRepaint starts the repaint ticker against r. It can only succeed
// once.
func (m Model) StartRepaint(r ticker.Repainter) error {
	return m.res.ticker.Start(r)
}

// ProgramRepainter adapts a running program to the ticker: every tick
// becomes a RepaintMsg.
func ProgramRepainter(p *tea.Program) ticker.Repainter {
	return ticker.RepainterFunc(func() { p.Send(RepaintMsg{}) })
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Title is the track title, falling back to the file name.
func (m Model) Title() string {
	if m.Info.Title != "" {
		return m.Info.Title
	}
	return filepath.Base(m.Info.Path)
}
