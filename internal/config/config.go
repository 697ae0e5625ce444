package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/loopdeck/internal/protocol"
)

const appName = "loopdeck"

type Config struct {
	File       string `koanf:"file"`        // audio file to open at startup
	TrackIndex int    `koanf:"track_index"` // track within multi-track containers
	Channels   int    `koanf:"channels"`    // 1 (downmix) or 2 (default)
	LoopTail   int    `koanf:"loop_tail"`   // frames excluded from the initial loop end (default: 500000)
	LogFile    string `koanf:"log_file"`    // empty disables logging

	Engine  EngineConfig  `koanf:"engine"`
	Display DisplayConfig `koanf:"display"`
}

// EngineConfig sizes the control link and the audio device.
type EngineConfig struct {
	CommandCapacity int `koanf:"command_capacity"`  // queued commands (default: 64)
	StatusCapacity  int `koanf:"status_capacity"`   // queued position reports (default: 64)
	SendRetries     int `koanf:"send_retries"`      // retries on a full command queue (default: 8)
	BackoffMinMs    int `koanf:"backoff_min_ms"`    // first retry delay (default: 1)
	BackoffMaxMs    int `koanf:"backoff_max_ms"`    // retry delay cap (default: 20)
	MaxCommands     int `koanf:"max_commands"`      // commands applied per audio cycle (default: 32)
	SpeakerBufferMs int `koanf:"speaker_buffer_ms"` // device buffer (default: 100)
}

// DisplayConfig tunes the transport rail and repaint rate.
type DisplayConfig struct {
	RepaintHz    int `koanf:"repaint_hz"`    // repaints per second (default: 60)
	RailPadding  int `koanf:"rail_padding"`  // cells between the window edge and the rail (default: 2, 0 allowed)
	HitTolerance int `koanf:"hit_tolerance"` // rows above/below the rail that grab it (default: 10)
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given files in order, later files overriding earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Channels: 2,
		LoopTail: 500000,
		Display: DisplayConfig{
			RailPadding: 2,
		},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.File = expandPath(cfg.File)
	cfg.LogFile = expandPath(cfg.LogFile)

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/loopdeck/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// LinkConfig returns the protocol link settings with defaults applied.
func (c *Config) LinkConfig() protocol.Config {
	cfg := protocol.DefaultConfig()
	e := c.Engine

	if e.CommandCapacity > 0 {
		cfg.CommandCapacity = e.CommandCapacity
	}
	if e.StatusCapacity > 0 {
		cfg.StatusCapacity = e.StatusCapacity
	}
	if e.SendRetries > 0 {
		cfg.SendRetries = e.SendRetries
	}
	if e.BackoffMinMs > 0 {
		cfg.BackoffMin = time.Duration(e.BackoffMinMs) * time.Millisecond
	}
	if e.BackoffMaxMs > 0 {
		cfg.BackoffMax = time.Duration(e.BackoffMaxMs) * time.Millisecond
	}
	if cfg.BackoffMax < cfg.BackoffMin {
		cfg.BackoffMax = cfg.BackoffMin
	}

	return cfg
}

// SpeakerBuffer returns the device buffer length (default: 100ms).
func (c *Config) SpeakerBuffer() time.Duration {
	if c.Engine.SpeakerBufferMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.Engine.SpeakerBufferMs) * time.Millisecond
}

// RepaintInterval returns the time between repaints (default: 1/60s).
func (c *Config) RepaintInterval() time.Duration {
	hz := c.Display.RepaintHz
	if hz <= 0 || hz > 1000 {
		hz = 60
	}
	return time.Second / time.Duration(hz)
}

// GetDisplayConfig returns the display configuration with defaults applied.
func (c *Config) GetDisplayConfig() DisplayConfig {
	cfg := c.Display

	if cfg.RepaintHz <= 0 || cfg.RepaintHz > 1000 {
		cfg.RepaintHz = 60
	}
	if cfg.RailPadding < 0 {
		cfg.RailPadding = 0
	}
	if cfg.HitTolerance <= 0 {
		cfg.HitTolerance = 10
	}

	return cfg
}

// GetChannels returns 1 or 2.
func (c *Config) GetChannels() int {
	if c.Channels == 1 {
		return 1
	}
	return 2
}
