package config

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-frameloop/frameloop/metronome"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, metronome.PolicyDelta, cfg.Policy)
	assert.InDelta(t, 16.667, cfg.PeriodMillis, 0.001)
	assert.True(t, cfg.RateDisplay)
	assert.Equal(t, HostTicker, cfg.Host)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "loop.yaml", `
policy: simple
period_millis: 250
rate_display: false
host: virtual
refresh_hz: 120
headless: true
frames: 40
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, metronome.PolicySimple, cfg.Policy)
	assert.Equal(t, 250.0, cfg.PeriodMillis)
	assert.False(t, cfg.RateDisplay)
	assert.Equal(t, HostVirtual, cfg.Host)
	assert.Equal(t, 120.0, cfg.RefreshHz)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 40, cfg.Frames)
	assert.Equal(t, 60, cfg.LogInterval, "unset keys keep defaults")

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "loop.toml", `
policy = "delta"
period_millis = 100.0
host = "adaptive"
log_interval = 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, metronome.PolicyDelta, cfg.Policy)
	assert.Equal(t, 100.0, cfg.PeriodMillis)
	assert.Equal(t, HostAdaptive, cfg.Host)
	assert.Equal(t, 5, cfg.LogInterval)
	assert.True(t, cfg.RateDisplay, "unset keys keep defaults")
}

func TestLoad_EmptyYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "empty.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"unknown yaml key", "a.yaml", "tick_rate: 5\n", nil},
		{"unknown toml key", "a.toml", "tick_rate = 5\n", nil},
		{"bad policy", "a.yaml", "policy: fixed\n", metronome.ErrUnknownPolicy},
		{"unknown extension", "a.json", "{}", ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"unknown host", func(c *Config) { c.Host = "vsync" }, ErrUnknownHost},
		{"NaN period", func(c *Config) { c.PeriodMillis = math.NaN() }, ErrInvalidPeriod},
		{"infinite period", func(c *Config) { c.PeriodMillis = math.Inf(1) }, ErrInvalidPeriod},
		{"negative infinite period", func(c *Config) { c.PeriodMillis = math.Inf(-1) }, ErrInvalidPeriod},
		{"zero refresh", func(c *Config) { c.RefreshHz = 0 }, ErrInvalidRefresh},
		{"NaN refresh", func(c *Config) { c.RefreshHz = math.NaN() }, ErrInvalidRefresh},
		{"infinite refresh", func(c *Config) { c.RefreshHz = math.Inf(1) }, ErrInvalidRefresh},
		{"negative frames", func(c *Config) { c.Frames = -1 }, ErrInvalidFrames},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, ErrUnknownLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestValidate_ClampsPeriod(t *testing.T) {
	for _, period := range []float64{-10, 0, 0.25} {
		cfg := Default()
		cfg.PeriodMillis = period
		require.NoError(t, cfg.Validate())
		assert.Equal(t, metronome.MinPeriodMillis, cfg.PeriodMillis)
	}

	cfg := Default()
	cfg.PeriodMillis = 3_600_000
	require.NoError(t, cfg.Validate())
	assert.Equal(t, metronome.MaxPeriodMillis, cfg.PeriodMillis)
}

func TestLoad_RejectsNaNPeriod(t *testing.T) {
	path := writeConfig(t, "nan.yaml", "period_millis: .nan\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(cfg.PeriodMillis))
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidPeriod)
}
