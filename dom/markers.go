// Package dom is the host side of the activation engine: a borrowed
// element model, an HTML scanner that materializes registrations from
// markup markers, and the effect sink that applies activations back to
// the elements.
package dom

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Markers names the markup conventions the scanner looks for. Zero
// fields fall back to the defaults.
type Markers struct {
	// RevealClass marks scroll-reveal candidates.
	RevealClass string `yaml:"reveal_class"`
	// CounterAttr holds the numeric goal of an animated counter.
	CounterAttr string `yaml:"counter_attr"`
	// StagedAttr holds a deferred media source; it is promoted to
	// LiveAttr on activation and then removed.
	StagedAttr string `yaml:"staged_attr"`
	LiveAttr   string `yaml:"live_attr"`
	// VisibleClass is added to an element when its reveal starts.
	VisibleClass string `yaml:"visible_class"`
	// HeightAttr overrides the element's synthetic layout height.
	HeightAttr string `yaml:"height_attr"`
}

// DefaultMarkers returns the stock marker names.
func DefaultMarkers() Markers {
	return Markers{
		RevealClass:  "animate-on-scroll",
		CounterAttr:  "data-count-to",
		StagedAttr:   "data-src",
		LiveAttr:     "src",
		VisibleClass: "visible",
		HeightAttr:   "data-height",
	}
}

// LoadMarkers reads the markers section of a YAML config file. Fields
// the file leaves out keep their defaults; a file with no markers
// section yields DefaultMarkers. The same file can carry the engine
// tuning read by revealx.LoadConfig.
func LoadMarkers(path string) (Markers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Markers{}, fmt.Errorf("read %s: %w", path, err)
	}
	var wrapper struct {
		Markers Markers `yaml:"markers"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return Markers{}, fmt.Errorf("yaml unmarshal %s: %w", path, err)
	}
	return wrapper.Markers.withDefaults(), nil
}

func (m Markers) withDefaults() Markers {
	d := DefaultMarkers()
	if m.RevealClass == "" {
		m.RevealClass = d.RevealClass
	}
	if m.CounterAttr == "" {
		m.CounterAttr = d.CounterAttr
	}
	if m.StagedAttr == "" {
		m.StagedAttr = d.StagedAttr
	}
	if m.LiveAttr == "" {
		m.LiveAttr = d.LiveAttr
	}
	if m.VisibleClass == "" {
		m.VisibleClass = d.VisibleClass
	}
	if m.HeightAttr == "" {
		m.HeightAttr = d.HeightAttr
	}
	return m
}
