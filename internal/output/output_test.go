package output

import (
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
)

type silence struct{}

func (silence) Stream(samples [][2]float64) (int, bool) {
	clear(samples)
	return len(samples), true
}

func (silence) Err() error { return nil }

func TestAdapt(t *testing.T) {
	src := silence{}

	assert.Equal(t, beep.Streamer(src), adapt(src, 44100, 44100))
	assert.Equal(t, beep.Streamer(src), adapt(src, 0, 44100))

	_, resampled := adapt(src, 48000, 44100).(*beep.Resampler)
	assert.True(t, resampled)
}
