// Package ticker requests periodic UI repaints until it is told to stop.
package ticker

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/llehouerou/loopdeck/internal/protocol"
	"github.com/llehouerou/loopdeck/internal/spsc"
)

// DefaultInterval repaints at 60 Hz.
const DefaultInterval = time.Second / 60

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("ticker: already started")

// Repainter asks the host UI for a redraw. It must be safe to call from any
// goroutine.
type Repainter interface {
	RequestRepaint()
}

// RepainterFunc adapts a function to Repainter.
type RepainterFunc func()

// RequestRepaint calls f.
func (f RepainterFunc) RequestRepaint() { f() }

// Ticker owns the consumer half of the shutdown channel. The goroutine
// started by Start takes it over; after that the Ticker only exposes
// completion.
type Ticker struct {
	interval time.Duration
	shutdown *spsc.Consumer[protocol.Shutdown]
	logger   *slog.Logger

	started atomic.Bool
	done    chan struct{}
}

// New creates a stopped ticker. A non-positive interval uses
// DefaultInterval; a nil logger discards.
func New(interval time.Duration, shutdown *spsc.Consumer[protocol.Shutdown], logger *slog.Logger) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ticker{
		interval: interval,
		shutdown: shutdown,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start launches the repaint goroutine. Only the first call does anything.
func (t *Ticker) Start(r Repainter) error {
	if !t.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	shutdown := t.shutdown
	t.shutdown = nil
	go t.run(shutdown, r)
	return nil
}

// Done is closed once the goroutine has exited.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the goroutine exits or ctx ends. A ticker that was never
// started returns immediately.
func (t *Ticker) Wait(ctx context.Context) error {
	if !t.started.Load() {
		return nil
	}
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Ticker) run(shutdown *spsc.Consumer[protocol.Shutdown], r Repainter) {
	defer close(t.done)
	t.logger.Debug("repaint ticker started", "interval", t.interval)

	ticks := 0
	for {
		time.Sleep(t.interval)
		if _, err := shutdown.Pop(); err == nil {
			t.logger.Debug("repaint ticker stopped", "ticks", ticks)
			return
		}
		r.RequestRepaint()
		ticks++
	}
}
