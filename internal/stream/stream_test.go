package stream

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constStreamer yields n frames of the same stereo value.
type constStreamer struct {
	n    int
	l, r float64
}

func (c *constStreamer) Stream(samples [][2]float64) (int, bool) {
	if c.n <= 0 {
		return 0, false
	}
	k := min(len(samples), c.n)
	for i := range k {
		samples[i] = [2]float64{c.l, c.r}
	}
	c.n -= k
	return k, true
}

func (c *constStreamer) Err() error { return nil }

func writeWAV(t *testing.T, frames int, l, r float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, &constStreamer{n: frames, l: l, r: r}, format))
	return path
}

func TestOpen_WAV(t *testing.T) {
	path := writeWAV(t, 4410, 0.25, 0.25)

	src, err := FileOpener{}.Open(path, 0, 2, true)
	require.NoError(t, err)
	defer src.Close()

	info := src.Info()
	assert.Equal(t, 4410, info.NumFrames)
	assert.Equal(t, beep.SampleRate(44100), info.SampleRate)
	assert.Equal(t, "WAV", info.Format)
	assert.Equal(t, "tone.wav", info.Title)
	assert.Equal(t, 100*time.Millisecond, info.Duration())
	assert.Equal(t, 4410, src.Len())

	require.NoError(t, src.SeekTo(0, 0))
	require.NoError(t, src.BlockUntilReady(context.Background()))

	buf := make([][2]float64, 16)
	n, ok := src.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 16, n)
	assert.InDelta(t, 0.25, buf[0][0], 1e-3)
	assert.Equal(t, 16, src.Position())
}

func TestOpen_MonoDownmix(t *testing.T) {
	path := writeWAV(t, 100, 0.5, -0.5)

	src, err := FileOpener{}.Open(path, 0, 1, true)
	require.NoError(t, err)
	defer src.Close()

	buf := make([][2]float64, 4)
	n, _ := src.Stream(buf)
	require.Equal(t, 4, n)
	for i := range n {
		assert.InDelta(t, 0, buf[i][0], 1e-3)
		assert.Equal(t, buf[i][0], buf[i][1])
	}
}

func TestOpen_Errors(t *testing.T) {
	wavPath := writeWAV(t, 10, 0, 0)
	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o600))

	tests := []struct {
		name     string
		path     string
		track    int
		channels int
		want     error
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.wav"), 0, 2, ErrOpen},
		{"unsupported", txt, 0, 2, ErrUnsupported},
		{"bad track", wavPath, 1, 2, ErrOpen},
		{"bad channels", wavPath, 0, 6, ErrOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FileOpener{}.Open(tt.path, tt.track, tt.channels, true)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSeek(t *testing.T) {
	path := writeWAV(t, 100, 0, 0)

	src, err := FileOpener{}.Open(path, 0, 2, true)
	require.NoError(t, err)
	defer src.Close()

	assert.ErrorIs(t, src.SeekTo(101, 0), ErrSeek)
	require.NoError(t, src.SeekTo(101, SeekClamp))
	assert.Equal(t, 100, src.Position())
	require.NoError(t, src.Seek(-5))
	assert.Equal(t, 0, src.Position())
}

func TestSeek_NotSeekable(t *testing.T) {
	path := writeWAV(t, 100, 0, 0)

	src, err := FileOpener{}.Open(path, 0, 2, false)
	require.NoError(t, err)
	defer src.Close()

	assert.ErrorIs(t, src.SeekTo(10, 0), ErrNotSeekable)
}

func TestBlockUntilReady_Cancelled(t *testing.T) {
	path := writeWAV(t, 10, 0, 0)
	src, err := FileOpener{}.Open(path, 0, 2, true)
	require.NoError(t, err)
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, src.BlockUntilReady(ctx), ErrNotReady)
}

func TestSkipID3v2(t *testing.T) {
	tag := []byte{'I', 'D', '3', 3, 0, 0, 0, 0, 0, 4, 'x', 'x', 'x', 'x'}
	r := bytes.NewReader(append(tag, []byte("fLaC")...))

	require.NoError(t, skipID3v2(r))
	rest, _ := io.ReadAll(r)
	assert.Equal(t, "fLaC", string(rest))

	plain := bytes.NewReader([]byte("fLaC and more"))
	require.NoError(t, skipID3v2(plain))
	rest, _ = io.ReadAll(plain)
	assert.Equal(t, "fLaC and more", string(rest))

	short := bytes.NewReader([]byte("ID3"))
	require.NoError(t, skipID3v2(short))
	rest, _ = io.ReadAll(short)
	assert.Equal(t, "ID3", string(rest))
}

func TestIsAudioFile(t *testing.T) {
	assert.True(t, IsAudioFile("a/b/song.FLAC"))
	assert.True(t, IsAudioFile("x.wav"))
	assert.True(t, IsAudioFile("x.mp3"))
	assert.False(t, IsAudioFile("x.ogg"))
	assert.False(t, IsAudioFile("x"))
}
