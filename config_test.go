package revealx_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/avendel/revealx"
)

// Test the stock config is valid and carries the documented timings.
func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.CounterDurationMs != 2000 {
		t.Errorf("expected 2000ms counter duration, got %d", cfg.CounterDurationMs)
	}
	if cfg.StaggerStepMs != 100 {
		t.Errorf("expected 100ms stagger, got %d", cfg.StaggerStepMs)
	}
	if cfg.RevealOffsetPx != 30 {
		t.Errorf("expected 30px reveal offset, got %v", cfg.RevealOffsetPx)
	}
}

func TestConfigValidateRejectsBadThreshold(t *testing.T) {
	for _, v := range []float64{0, -0.1, 1.5} {
		cfg := DefaultConfig()
		cfg.RevealThreshold = v
		if err := cfg.Validate(); err == nil {
			t.Errorf("threshold %v: expected validation error", v)
		}
	}
}

func TestConfigValidateRejectsBadDurations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CounterDurationMs = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero counter duration")
	}

	cfg = DefaultConfig()
	cfg.StaggerStepMs = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative stagger")
	}
}

// Test a partial YAML file layers over the defaults.
func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revealx.yaml")
	data := "counter_threshold: 0.4\nstagger_step_ms: 150\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CounterThreshold != 0.4 {
		t.Errorf("expected overridden threshold 0.4, got %v", cfg.CounterThreshold)
	}
	if cfg.StaggerStepMs != 150 {
		t.Errorf("expected overridden stagger 150, got %d", cfg.StaggerStepMs)
	}
	if cfg.RevealDurationMs != 600 {
		t.Errorf("expected default reveal duration to survive, got %d", cfg.RevealDurationMs)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("reveal_threshold: 3.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected validation error for threshold 3.0")
	}
}
