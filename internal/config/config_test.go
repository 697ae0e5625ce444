//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/music/loop.wav",
			expected: filepath.Join(home, "music", "loop.wav"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/srv/audio/take1.flac",
			expected: "/srv/audio/take1.flac",
		},
		{
			name:     "relative path unchanged",
			input:    "test_files/wav_i24_mono.wav",
			expected: "test_files/wav_i24_mono.wav",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(xdg.ConfigHome, "loopdeck", "config.toml"), paths[0])
	assert.Equal(t, "config.toml", paths[1])
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.GetChannels())
	assert.Equal(t, 500000, cfg.LoopTail)
	assert.Equal(t, time.Second/60, cfg.RepaintInterval())
	assert.Equal(t, 100*time.Millisecond, cfg.SpeakerBuffer())

	d := cfg.GetDisplayConfig()
	assert.Equal(t, 60, d.RepaintHz)
	assert.Equal(t, 2, d.RailPadding)
	assert.Equal(t, 10, d.HitTolerance)

	link := cfg.LinkConfig()
	assert.Equal(t, 64, link.CommandCapacity)
	assert.Equal(t, 8, link.SendRetries)
}

func TestLoadFrom_File(t *testing.T) {
	path := writeConfig(t, `
file = "/tmp/loop.wav"
channels = 1
loop_tail = 1000

[engine]
command_capacity = 4
send_retries = 2
backoff_min_ms = 5
backoff_max_ms = 2

[display]
repaint_hz = 30
rail_padding = 0
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/loop.wav", cfg.File)
	assert.Equal(t, 1, cfg.GetChannels())
	assert.Equal(t, 1000, cfg.LoopTail)
	assert.Equal(t, time.Second/30, cfg.RepaintInterval())
	assert.Equal(t, 0, cfg.GetDisplayConfig().RailPadding)

	link := cfg.LinkConfig()
	assert.Equal(t, 4, link.CommandCapacity)
	assert.Equal(t, 2, link.SendRetries)
	assert.Equal(t, 5*time.Millisecond, link.BackoffMin)
	assert.Equal(t, 5*time.Millisecond, link.BackoffMax, "max raised to min")
}

func TestLoadFrom_LaterFileWins(t *testing.T) {
	first := writeConfig(t, `file = "a.wav"`+"\nloop_tail = 7\n")
	second := writeConfig(t, `file = "b.wav"`)

	cfg, err := LoadFrom(first, second)
	require.NoError(t, err)

	assert.Equal(t, "b.wav", cfg.File)
	assert.Equal(t, 7, cfg.LoopTail)
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "file = ")

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestGetChannels(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{1, 1},
		{2, 2},
		{0, 2},
		{6, 2},
	}

	for _, tt := range tests {
		cfg := Config{Channels: tt.in}
		assert.Equal(t, tt.want, cfg.GetChannels(), "channels=%d", tt.in)
	}
}
