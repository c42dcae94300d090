package utils

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for a run
type Config struct {
	Size             int     `json:"size"`
	Pattern          string  `json:"pattern"`
	Generations      int     `json:"generations"`
	UseParallel      bool    `json:"use_parallel"`
	Workers          int     `json:"workers"`
	UseMemoryPool    bool    `json:"use_memory_pool"`
	UseBoundedGrid   bool    `json:"use_bounded_grid"`
	StopOnStagnation bool    `json:"stop_on_stagnation"`
	RandomDensity    float64 `json:"random_density"`
	Seed             int64   `json:"seed"`
	LogLevel         string  `json:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Size:             32,
		Pattern:          "glider",
		Generations:      100,
		UseParallel:      true,
		Workers:          0, // one per CPU
		UseMemoryPool:    true,
		UseBoundedGrid:   true, // Enable active region optimization
		StopOnStagnation: true,
		RandomDensity:    0.15,
		Seed:             1,
		LogLevel:         "info",
	}
}

// LoadConfig loads configuration from JSON file, starting from DefaultConfig
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks value ranges. knownPattern reports whether a pattern name
// can seed a grid.
func (c Config) Validate(knownPattern func(string) bool) error {
	switch {
	case c.Size <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] size must be positive, got %d", c.Size)
	case c.Generations < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] generations must not be negative, got %d", c.Generations)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] workers must not be negative, got %d", c.Workers)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] random_density must be within [0, 1], got %v", c.RandomDensity)
	case knownPattern != nil && !knownPattern(c.Pattern):
		return errors.Wrapf(ErrInvalidConfig, "[Validate] unknown pattern %q", c.Pattern)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log_level setting onto a slog level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Wrapf(ErrInvalidConfig, "[ParseLevel] unknown log level %q", level)
}
