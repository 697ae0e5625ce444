//go:build !windows

package stderr

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture_CollectsLines(t *testing.T) {
	c, err := Start()
	require.NoError(t, err)

	_, err = os.Stderr.WriteString("ALSA lib pcm.c: underrun\n\n  second  \n")
	require.NoError(t, err)

	var got []string
	require.Eventually(t, func() bool {
		c.Drain(func(line string) { got = append(got, line) })
		return len(got) == 2
	}, time.Second, 5*time.Millisecond)
	c.Stop()

	assert.Equal(t, []string{"ALSA lib pcm.c: underrun", "second"}, got)
}

func TestCapture_NilIsSafe(t *testing.T) {
	var c *Capture
	assert.Equal(t, 0, c.Drain(func(string) {}))
	c.Stop()
}
