package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentready/models"
)

// PresetStore keeps named filter presets as one JSON file per preset.
// Presets are a plain interchange format; nothing here interprets the
// filter values.
type PresetStore struct {
	dir string
}

// NewPresetStore ensures the preset directory exists.
func NewPresetStore(dir string) (*PresetStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("presets: create dir %q: %w", dir, err)
	}
	return &PresetStore{dir: dir}, nil
}

// Save assigns an id and timestamp and writes the preset to disk.
func (s *PresetStore) Save(preset models.FilterPreset) (models.FilterPreset, error) {
	if strings.TrimSpace(preset.Name) == "" {
		return preset, fmt.Errorf("presets: name is required")
	}
	if preset.ID == "" {
		preset.ID = uuid.New().String()
	}
	if preset.SavedAt.IsZero() {
		preset.SavedAt = time.Now()
	}

	b, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return preset, fmt.Errorf("presets: marshal %q: %w", preset.Name, err)
	}
	if err := os.WriteFile(s.path(preset.ID), b, 0644); err != nil {
		return preset, fmt.Errorf("presets: write %q: %w", preset.Name, err)
	}
	return preset, nil
}

// Load reads one preset by id.
func (s *PresetStore) Load(id string) (models.FilterPreset, error) {
	var preset models.FilterPreset

	b, err := os.ReadFile(s.path(id))
	if err != nil {
		return preset, fmt.Errorf("presets: read %q: %w", id, err)
	}
	if err := json.Unmarshal(b, &preset); err != nil {
		return preset, fmt.Errorf("presets: parse %q: %w", id, err)
	}
	return preset, nil
}

// List returns all presets, newest first.
func (s *PresetStore) List() ([]models.FilterPreset, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("presets: list: %w", err)
	}

	presets := make([]models.FilterPreset, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		p, err := s.Load(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			// One corrupt preset must not hide the rest.
			continue
		}
		presets = append(presets, p)
	}

	sort.Slice(presets, func(i, j int) bool {
		return presets[i].SavedAt.After(presets[j].SavedAt)
	})
	return presets, nil
}

// Delete removes one preset by id.
func (s *PresetStore) Delete(id string) error {
	if err := os.Remove(s.path(id)); err != nil {
		return fmt.Errorf("presets: delete %q: %w", id, err)
	}
	return nil
}

func (s *PresetStore) path(id string) string {
	// ids are uuids; Base guards against path escapes in requests
	return filepath.Join(s.dir, filepath.Base(id)+".json")
}
