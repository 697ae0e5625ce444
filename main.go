package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/loopdeck/internal/app"
	"github.com/llehouerou/loopdeck/internal/config"
	"github.com/llehouerou/loopdeck/internal/engine"
	"github.com/llehouerou/loopdeck/internal/errmsg"
	"github.com/llehouerou/loopdeck/internal/mpris"
	"github.com/llehouerou/loopdeck/internal/output"
	"github.com/llehouerou/loopdeck/internal/protocol"
	"github.com/llehouerou/loopdeck/internal/state"
	"github.com/llehouerou/loopdeck/internal/stderr"
	"github.com/llehouerou/loopdeck/internal/stream"
)

var errNoFile = errors.New("no audio file given (usage: loopdeck <file>)")

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	if len(os.Args) > 1 {
		cfg.File = os.Args[1]
	}
	if cfg.File == "" {
		return errNoFile
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	// Capture stderr before the audio device is opened.
	capture, err := stderr.Start()
	if err != nil {
		logger.Warn("stderr capture unavailable", "err", err)
	}
	defer capture.Stop()

	var st state.Interface
	if mgr, err := state.Open(); err != nil {
		logger.Warn("session store unavailable", "err", err)
	} else {
		st = mgr
		defer mgr.Close()
	}

	ctl, engEnd := protocol.NewLink(cfg.LinkConfig())
	eng := engine.New(engEnd, engine.WithMaxCommands(cfg.Engine.MaxCommands))
	defer func() {
		// Runs after the speaker is closed, so the engine end is ours.
		if err := eng.Close(); err != nil {
			logger.Warn("close stream", "err", err)
		}
		if n := engEnd.Dropped(); n > 0 {
			logger.Debug("position reports dropped", "count", n)
		}
	}()

	ctx := context.Background()
	m, err := app.New(ctx, app.Options{
		Path:            cfg.File,
		TrackIndex:      cfg.TrackIndex,
		Channels:        cfg.GetChannels(),
		LoopTail:        cfg.LoopTail,
		Opener:          stream.FileOpener{},
		Control:         ctl,
		State:           st,
		Stderr:          capture,
		Logger:          logger,
		RepaintInterval: cfg.RepaintInterval(),
		Display:         cfg.GetDisplayConfig(),
	})
	if err != nil {
		return err
	}

	spk, err := output.Open(m.Info.SampleRate, cfg.SpeakerBuffer(), logger)
	if err != nil {
		_ = m.Close(ctx)
		return errmsg.Wrap(errmsg.OpSpeakerInit, err)
	}
	defer spk.Close()
	spk.Play(eng, m.Info.SampleRate)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if err := m.StartRepaint(app.ProgramRepainter(p)); err != nil {
		return err
	}

	if remote, err := mpris.New(m.Remote(p.Send)); err != nil {
		logger.Warn("media controls unavailable", "err", err)
	} else {
		defer remote.Close()
	}

	final, runErr := p.Run()
	if fm, ok := final.(app.Model); ok {
		m = fm
	}
	if err := m.Close(ctx); err != nil {
		logger.Error("teardown", "err", err)
		capture.WriteOriginal(err.Error() + "\n")
	}
	return runErr
}

// newLogger writes text logs to path. The terminal belongs to the UI, so
// without a path logs are discarded.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }, nil
}
