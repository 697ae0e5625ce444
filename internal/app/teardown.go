package app

import (
	"context"
	"errors"
	"time"

	"github.com/llehouerou/loopdeck/internal/errmsg"
	"github.com/llehouerou/loopdeck/internal/protocol"
	"github.com/llehouerou/loopdeck/internal/spsc"
	"github.com/llehouerou/loopdeck/internal/state"
)

// ShutdownTimeout bounds how long Close waits for the repaint ticker.
const ShutdownTimeout = time.Second

// Close signals the repaint ticker to stop, waits for it and saves the
// session. Only the first call does anything; later calls return the
// first result.
func (m Model) Close(ctx context.Context) error {
	m.res.closeOnce.Do(func() {
		m.res.closeErr = m.close(ctx)
	})
	return m.res.closeErr
}

func (m Model) close(ctx context.Context) error {
	var errs []error

	if err := m.res.shutdown.Push(protocol.Shutdown{}); err != nil {
		if errors.Is(err, spsc.ErrFull) {
			m.res.logger.Debug("shutdown already signalled")
		} else {
			errs = append(errs, errmsg.Wrap(errmsg.OpShutdown, err))
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()
	if err := m.res.ticker.Wait(waitCtx); err != nil {
		errs = append(errs, errmsg.Wrap(errmsg.OpShutdown, err))
	}

	if err := m.saveSession(); err != nil {
		errs = append(errs, errmsg.Wrap(errmsg.OpSessionSave, err))
	}

	return errors.Join(errs...)
}

// Session is the state saved for the current file.
func (m Model) Session() state.Session {
	s := state.Session{
		Path:      m.Info.Path,
		NumFrames: m.Transport.NumFrames,
		Frame:     m.Transport.CurrentFrame,
	}
	if !m.Loop.Empty() {
		start, end := int64(m.Loop.Start), int64(m.Loop.End)
		s.LoopStart = &start
		s.LoopEnd = &end
	}
	return s
}

func (m Model) saveSession() error {
	if m.res.state == nil || m.Info.Path == "" {
		return nil
	}
	return m.res.state.SaveSession(m.Session())
}
