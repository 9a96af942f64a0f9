// Package config provides YAML and TOML configuration for frameloop.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/valerio/go-frameloop/frameloop/metronome"
	"github.com/valerio/go-frameloop/frameloop/timing"
)

// Host names accepted in configuration.
const (
	HostTicker   = "ticker"
	HostAdaptive = "adaptive"
	HostVirtual  = "virtual"
)

var (
	ErrUnknownHost     = errors.New("unknown host")
	ErrUnknownFormat   = errors.New("unknown config file format")
	ErrInvalidPeriod   = errors.New("period must be a finite number")
	ErrInvalidRefresh  = errors.New("refresh rate must be positive and finite")
	ErrInvalidFrames   = errors.New("frame budget must not be negative")
	ErrUnknownLogLevel = errors.New("unknown log level")
)

// Config is the complete loop configuration.
type Config struct {
	// Policy is the metronome policy: "simple" or "delta".
	Policy metronome.Policy `yaml:"policy" toml:"policy"`
	// PeriodMillis is the interval between logical updates.
	PeriodMillis float64 `yaml:"period_millis" toml:"period_millis"`
	// RateDisplay enables frame rate sampling at startup.
	RateDisplay bool `yaml:"rate_display" toml:"rate_display"`

	// Host selects the frame clock: "ticker", "adaptive" or "virtual".
	Host      string  `yaml:"host" toml:"host"`
	RefreshHz float64 `yaml:"refresh_hz" toml:"refresh_hz"`

	// Headless runs without a terminal UI.
	Headless bool `yaml:"headless" toml:"headless"`
	// Frames is the tick budget in headless mode; 0 runs until stopped.
	Frames int `yaml:"frames" toml:"frames"`
	// LogInterval logs progress every N ticks in headless mode.
	LogInterval int `yaml:"log_interval" toml:"log_interval"`

	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// Default returns the default configuration: a 60 Hz delta metronome on a
// 60 Hz ticker host with the rate display on.
func Default() *Config {
	return &Config{
		Policy:       metronome.PolicyDelta,
		PeriodMillis: 1000.0 / 60,
		RateDisplay:  true,
		Host:         HostTicker,
		RefreshHz:    timing.DefaultRefreshHz,
		LogInterval:  60,
		LogLevel:     "info",
	}
}

// Load reads a configuration file on top of the defaults. The format is
// chosen by extension: .yaml/.yml or .toml. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := decodeYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := decodeTOML(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown keys: %v", undecoded)
	}
	return nil
}

// Validate checks the configuration. Finite periods outside the metronome
// range are clamped rather than rejected.
func (c *Config) Validate() error {
	if math.IsNaN(c.PeriodMillis) || math.IsInf(c.PeriodMillis, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidPeriod, c.PeriodMillis)
	}
	if clamped := metronome.ClampPeriodMillis(c.PeriodMillis); clamped != c.PeriodMillis {
		slog.Warn("Configured period clamped", "requested_ms", c.PeriodMillis, "period_ms", clamped)
		c.PeriodMillis = clamped
	}

	switch c.Host {
	case HostTicker, HostAdaptive, HostVirtual:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownHost, c.Host)
	}

	if !(c.RefreshHz > 0) || math.IsInf(c.RefreshHz, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidRefresh, c.RefreshHz)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrames, c.Frames)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, c.LogLevel)
	}
	return level, nil
}
