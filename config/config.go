// SPDX-License-Identifier: EPL-2.0

// Package config loads the engine settings shared by the sfzpbx commands.
//
// Settings live in a YAML file; every field is optional and falls back to
// Default:
//
//	sample_rate: 44100
//	block_size: 512
//	bit_depth: 16
//	volume: 0.4
//	velocity_tracking: 0
//	max_voices_per_note: 8
//	overflow_policy: steal_oldest   # or drop_new
//	load_concurrency: 0             # 0 = GOMAXPROCS
//	release_tail: 2s
//	log_level: info
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/ik5/sfzpbx/instrument"
)

// Config holds the engine settings.
type Config struct {
	// SampleRate is the render rate in Hz.
	SampleRate int `yaml:"sample_rate"`

	// BlockSize is the number of frames rendered per Instrument.Render call.
	BlockSize int `yaml:"block_size"`

	// BitDepth of rendered WAV files.
	BitDepth int `yaml:"bit_depth"`

	Volume           float32 `yaml:"volume"`
	VelocityTracking float32 `yaml:"velocity_tracking"`
	MaxVoicesPerNote int     `yaml:"max_voices_per_note"`
	OverflowPolicy   string  `yaml:"overflow_policy"`

	// LoadConcurrency caps parallel sample decodes; 0 uses GOMAXPROCS.
	LoadConcurrency int `yaml:"load_concurrency"`

	// ReleaseTail is rendered after the last event so releases can ring out.
	ReleaseTail time.Duration `yaml:"release_tail"`

	LogLevel string `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		SampleRate:       instrument.DefaultSampleRate,
		BlockSize:        512,
		BitDepth:         16,
		Volume:           instrument.DefaultVolume,
		MaxVoicesPerNote: instrument.DefaultMaxVoicesPerNote,
		OverflowPolicy:   instrument.StealOldest.String(),
		ReleaseTail:      2 * time.Second,
		LogLevel:         "info",
	}
}

// Load reads path over the defaults and validates the result. Unknown keys
// are rejected so typos do not pass silently.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate %d", ErrInvalidConfig, c.SampleRate)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block_size %d", ErrInvalidConfig, c.BlockSize)
	case c.BitDepth != 16 && c.BitDepth != 24 && c.BitDepth != 32:
		return fmt.Errorf("%w: bit_depth %d", ErrInvalidConfig, c.BitDepth)
	case c.Volume < 0:
		return fmt.Errorf("%w: volume %v", ErrInvalidConfig, c.Volume)
	case c.VelocityTracking < 0 || c.VelocityTracking > 1:
		return fmt.Errorf("%w: velocity_tracking %v", ErrInvalidConfig, c.VelocityTracking)
	case c.MaxVoicesPerNote < 1 || c.MaxVoicesPerNote > instrument.MaxVoicesPerNoteLimit:
		return fmt.Errorf("%w: max_voices_per_note %d", ErrInvalidConfig, c.MaxVoicesPerNote)
	case c.LoadConcurrency < 0:
		return fmt.Errorf("%w: load_concurrency %d", ErrInvalidConfig, c.LoadConcurrency)
	case c.ReleaseTail < 0:
		return fmt.Errorf("%w: release_tail %v", ErrInvalidConfig, c.ReleaseTail)
	}

	if _, err := instrument.ParseOverflowPolicy(c.OverflowPolicy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel; an empty value is info.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// InstrumentOptions translates the settings into instrument options.
func (c *Config) InstrumentOptions(logger *slog.Logger) ([]instrument.Option, error) {
	policy, err := instrument.ParseOverflowPolicy(c.OverflowPolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return []instrument.Option{
		instrument.WithSampleRate(c.SampleRate),
		instrument.WithVolume(c.Volume),
		instrument.WithVelocityTracking(c.VelocityTracking),
		instrument.WithMaxVoicesPerNote(c.MaxVoicesPerNote),
		instrument.WithOverflowPolicy(policy),
		instrument.WithLoadConcurrency(c.LoadConcurrency),
		instrument.WithLogger(logger),
	}, nil
}

// ReleaseTailFrames converts ReleaseTail to frames at SampleRate.
func (c *Config) ReleaseTailFrames() int {
	return int(c.ReleaseTail.Seconds() * float64(c.SampleRate))
}
