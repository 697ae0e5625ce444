package stream

import (
	"context"
	"fmt"

	"github.com/gopxl/beep/v2"
)

// handle adapts a decoder to Source.
type handle struct {
	dec      beep.StreamSeekCloser
	info     Info
	seekable bool
	err      error
}

var _ Source = (*handle)(nil)

func newHandle(dec beep.StreamSeekCloser, info Info, seekable bool) *handle {
	return &handle{dec: dec, info: info, seekable: seekable}
}

func (h *handle) Stream(samples [][2]float64) (int, bool) {
	n, ok := h.dec.Stream(samples)
	if h.info.Channels == 1 {
		for i := range n {
			m := (samples[i][0] + samples[i][1]) / 2
			samples[i] = [2]float64{m, m}
		}
	}
	return n, ok
}

func (h *handle) Err() error {
	if h.err != nil {
		return h.err
	}
	return h.dec.Err()
}

func (h *handle) Len() int      { return h.dec.Len() }
func (h *handle) Position() int { return h.dec.Position() }
func (h *handle) Info() Info    { return h.info }

// Seek implements beep.StreamSeeker with clamping, which is what the engine
// expects when wrapping loops.
func (h *handle) Seek(p int) error {
	return h.SeekTo(p, SeekClamp)
}

func (h *handle) SeekTo(frame int, flags SeekFlags) error {
	if !h.seekable {
		return fmt.Errorf("%w: %w", ErrSeek, ErrNotSeekable)
	}
	if frame < 0 || frame > h.dec.Len() {
		if flags&SeekClamp == 0 {
			return fmt.Errorf("%w: frame %d outside [0, %d]", ErrSeek, frame, h.dec.Len())
		}
		frame = min(max(frame, 0), h.dec.Len())
	}
	if err := h.dec.Seek(frame); err != nil {
		h.err = fmt.Errorf("%w: %w", ErrSeek, err)
		return h.err
	}
	h.err = nil
	return nil
}

// BlockUntilReady returns once the decoder can deliver samples from the
// current position. Decoders here are synchronous, so this only surfaces a
// pending error or a cancelled context.
func (h *handle) BlockUntilReady(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	if err := h.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	return nil
}

func (h *handle) Close() error {
	return h.dec.Close()
}
