package revealx

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config tunes observation thresholds and effect timing. All fields have
// working defaults from DefaultConfig; a zero Config is not valid.
type Config struct {
	// Visibility fraction required per kind. Counters use a higher bar
	// so the 2s animation starts with the number mostly on screen.
	RevealThreshold  float64 `yaml:"reveal_threshold"`
	CounterThreshold float64 `yaml:"counter_threshold"`
	LazyThreshold    float64 `yaml:"lazy_threshold"`

	// Bottom root margin per kind, in px. Negative values pull the
	// effective viewport edge up so activation waits until the element
	// is properly inside the fold. Lazy media stays at 0 so fetches are
	// never delayed past the edge.
	RevealRootMarginPx  float64 `yaml:"reveal_root_margin_px"`
	CounterRootMarginPx float64 `yaml:"counter_root_margin_px"`
	LazyRootMarginPx    float64 `yaml:"lazy_root_margin_px"`

	RevealDurationMs  int     `yaml:"reveal_duration_ms"`
	StaggerStepMs     int     `yaml:"stagger_step_ms"`
	RevealOffsetPx    float64 `yaml:"reveal_offset_px"`
	CounterDurationMs int     `yaml:"counter_duration_ms"`
}

// DefaultConfig returns the stock tuning: 0.1 reveal/lazy threshold,
// 0.5 counter threshold, -50px bottom margin for reveal and counter,
// 600ms reveal, 100ms stagger, 30px offset, 2000ms counter.
func DefaultConfig() Config {
	return Config{
		RevealThreshold:     0.1,
		CounterThreshold:    0.5,
		LazyThreshold:       0.1,
		RevealRootMarginPx:  -50,
		CounterRootMarginPx: -50,
		LazyRootMarginPx:    0,
		RevealDurationMs:    600,
		StaggerStepMs:       100,
		RevealOffsetPx:      30,
		CounterDurationMs:   2000,
	}
}

// Validate checks the configuration:
// - thresholds in (0, 1]
// - durations strictly positive
// - stagger step non-negative
func (c *Config) Validate() error {
	for _, t := range []struct {
		name string
		v    float64
	}{
		{"reveal_threshold", c.RevealThreshold},
		{"counter_threshold", c.CounterThreshold},
		{"lazy_threshold", c.LazyThreshold},
	} {
		if t.v <= 0 || t.v > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %v", t.name, t.v)
		}
	}
	if c.RevealDurationMs <= 0 {
		return errors.New("reveal_duration_ms must be positive")
	}
	if c.CounterDurationMs <= 0 {
		return errors.New("counter_duration_ms must be positive")
	}
	if c.StaggerStepMs < 0 {
		return errors.New("stagger_step_ms cannot be negative")
	}
	return nil
}

// LoadConfig reads a YAML config file, layering it over DefaultConfig so
// partial files only override what they name.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("yaml unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) revealDuration() time.Duration {
	return time.Duration(c.RevealDurationMs) * time.Millisecond
}

func (c Config) staggerStep() time.Duration {
	return time.Duration(c.StaggerStepMs) * time.Millisecond
}

// CounterDuration is the fixed length of a counter animation.
func (c Config) CounterDuration() time.Duration {
	return time.Duration(c.CounterDurationMs) * time.Millisecond
}

// threshold returns the default visibility fraction for a kind.
func (c Config) threshold(k Kind) float64 {
	switch k {
	case KindCounter:
		return c.CounterThreshold
	case KindLazyMedia:
		return c.LazyThreshold
	}
	return c.RevealThreshold
}

// rootMargin returns the default bottom root margin for a kind.
func (c Config) rootMargin(k Kind) float64 {
	switch k {
	case KindCounter:
		return c.CounterRootMarginPx
	case KindLazyMedia:
		return c.LazyRootMarginPx
	}
	return c.RevealRootMarginPx
}
