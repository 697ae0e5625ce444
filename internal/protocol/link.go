package protocol

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jpillora/backoff"

	"github.com/llehouerou/loopdeck/internal/spsc"
)

var (
	// ErrCommandDropped is wrapped by SendError when every attempt found the
	// command queue full.
	ErrCommandDropped = errors.New("command queue full")
	// ErrInvalidLoop is returned for loop regions outside the stream.
	ErrInvalidLoop = errors.New("invalid loop region")
)

// SendError reports a command that could not be enqueued.
type SendError struct {
	Cmd      Command
	Attempts int
	Err      error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send %v after %d attempts: %v", e.Cmd, e.Attempts, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// Config sizes the link and tunes the command retry policy.
type Config struct {
	CommandCapacity int
	StatusCapacity  int
	SendRetries     int
	BackoffMin      time.Duration
	BackoffMax      time.Duration
}

// DefaultConfig returns the sizes used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		CommandCapacity: 64,
		StatusCapacity:  64,
		SendRetries:     8,
		BackoffMin:      time.Millisecond,
		BackoffMax:      20 * time.Millisecond,
	}
}

// ControlEnd is the control goroutine's side of the link.
type ControlEnd struct {
	commands *spsc.Producer[Command]
	statuses *spsc.Consumer[Status]

	retries int
	backoff backoff.Backoff
	sleep   func(context.Context, time.Duration) error
}

// EngineEnd is the audio engine's side of the link.
type EngineEnd struct {
	commands *spsc.Consumer[Command]
	statuses *spsc.Producer[Status]

	dropped uint64
}

// NewLink creates the command and status queues and splits them between the
// two ends.
func NewLink(cfg Config) (*ControlEnd, *EngineEnd) {
	def := DefaultConfig()
	if cfg.CommandCapacity <= 0 {
		cfg.CommandCapacity = def.CommandCapacity
	}
	if cfg.StatusCapacity <= 0 {
		cfg.StatusCapacity = def.StatusCapacity
	}
	if cfg.SendRetries < 0 {
		cfg.SendRetries = 0
	}
	if cfg.BackoffMin <= 0 {
		cfg.BackoffMin = def.BackoffMin
	}
	if cfg.BackoffMax < cfg.BackoffMin {
		cfg.BackoffMax = cfg.BackoffMin
	}

	cmdTx, cmdRx := spsc.New[Command](cfg.CommandCapacity)
	stTx, stRx := spsc.New[Status](cfg.StatusCapacity)

	ctl := &ControlEnd{
		commands: cmdTx,
		statuses: stRx,
		retries:  cfg.SendRetries,
		backoff: backoff.Backoff{
			Min:    cfg.BackoffMin,
			Max:    cfg.BackoffMax,
			Factor: 2,
			Jitter: true,
		},
		sleep: sleepContext,
	}
	eng := &EngineEnd{commands: cmdRx, statuses: stTx}
	return ctl, eng
}

// TrySend enqueues cmd without waiting.
func (c *ControlEnd) TrySend(cmd Command) error {
	return c.commands.Push(cmd)
}

// Send enqueues cmd, retrying with exponential backoff while the queue is
// full. Commands are never dropped silently: when retries run out a
// *SendError wrapping ErrCommandDropped is returned.
func (c *ControlEnd) Send(ctx context.Context, cmd Command) error {
	c.backoff.Reset()
	attempts := 0
	for {
		attempts++
		err := c.commands.Push(cmd)
		if err == nil {
			return nil
		}
		if attempts > c.retries {
			return &SendError{Cmd: cmd, Attempts: attempts, Err: fmt.Errorf("%w: %w", ErrCommandDropped, err)}
		}
		if err := c.sleep(ctx, c.backoff.Duration()); err != nil {
			return &SendError{Cmd: cmd, Attempts: attempts, Err: err}
		}
	}
}

// Drain pops every pending status and passes it to apply, oldest first.
// It returns the number of statuses applied.
func (c *ControlEnd) Drain(apply func(Status)) int {
	n := 0
	for {
		st, err := c.statuses.Pop()
		if err != nil {
			return n
		}
		apply(st)
		n++
	}
}

// Drain pops at most limit pending commands and passes them to apply.
// A limit <= 0 drains only what was queued when the call started.
// It never blocks.
func (e *EngineEnd) Drain(apply func(Command), limit int) int {
	if limit <= 0 {
		limit = e.commands.Len()
	}
	n := 0
	for n < limit {
		cmd, err := e.commands.Pop()
		if err != nil {
			break
		}
		apply(cmd)
		n++
	}
	return n
}

// Report pushes st without blocking. It returns false when the status queue
// is full and the update was dropped; the next report supersedes it.
func (e *EngineEnd) Report(st Status) bool {
	if err := e.statuses.Push(st); err != nil {
		e.dropped++
		return false
	}
	return true
}

// Dropped returns how many status reports were discarded.
func (e *EngineEnd) Dropped() uint64 { return e.dropped }

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
