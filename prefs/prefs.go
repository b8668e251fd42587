// Package prefs persists the one durable bit of the system: the
// dark-mode preference. The file is read once when the store opens and
// written on every toggle.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Preferences is the on-disk shape.
type Preferences struct {
	DarkMode bool `yaml:"dark_mode"`
}

// Store is a file-backed preference store.
type Store struct {
	path string

	mu    sync.Mutex
	prefs Preferences
}

// Open loads the store. A missing file is not an error; it means the
// default (light mode). A malformed file is an error so a corrupted
// preference never silently flips the theme.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s.prefs); err != nil {
		return nil, fmt.Errorf("yaml unmarshal %s: %w", path, err)
	}
	return s, nil
}

// Dark reports the current dark-mode flag.
func (s *Store) Dark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.DarkMode
}

// Toggle flips dark mode, persists, and returns the new value. Toggling
// twice restores both the in-memory and the persisted state.
func (s *Store) Toggle() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.DarkMode = !s.prefs.DarkMode
	if err := s.save(); err != nil {
		// Roll back so memory and disk stay consistent.
		s.prefs.DarkMode = !s.prefs.DarkMode
		return s.prefs.DarkMode, err
	}
	return s.prefs.DarkMode, nil
}

// SetDark writes an explicit value and persists it.
func (s *Store) SetDark(dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.prefs.DarkMode
	s.prefs.DarkMode = dark
	if err := s.save(); err != nil {
		s.prefs.DarkMode = prev
		return err
	}
	return nil
}

func (s *Store) save() error {
	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
