// Package output connects the engine to the audio device through beep's
// speaker. The speaker's goroutine is the real-time thread: it calls the
// engine's Stream for every buffer it fills.
package output

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultBuffer is the speaker buffer length.
const DefaultBuffer = 100 * time.Millisecond

// Speaker is the initialized audio device.
type Speaker struct {
	rate   beep.SampleRate
	logger *slog.Logger
}

// Open initializes the device at rate with a buffer of the given length.
func Open(rate beep.SampleRate, buffer time.Duration, logger *slog.Logger) (*Speaker, error) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	logger.Info("speaker ready", "rate", int(rate), "buffer", buffer)
	return &Speaker{rate: rate, logger: logger}, nil
}

// Play starts pulling from src, produced at srcRate.
func (s *Speaker) Play(src beep.Streamer, srcRate beep.SampleRate) {
	speaker.Play(adapt(src, srcRate, s.rate))
}

// Close stops playback and releases the device. After Close returns the
// engine is no longer called.
func (s *Speaker) Close() {
	speaker.Clear()
	speaker.Close()
	s.logger.Info("speaker closed")
}

// adapt resamples src when its rate differs from the device rate.
func adapt(src beep.Streamer, from, to beep.SampleRate) beep.Streamer {
	if from == to || from <= 0 {
		return src
	}
	return beep.Resample(4, from, to, src)
}
