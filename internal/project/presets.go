package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/WallPanel/internal/model"
)

// CustomPreset is a named PanelConfig saved by the user alongside the
// built-in presets.
type CustomPreset struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Config      model.PanelConfig `json:"config" yaml:"config"`
}

// DefaultPresetsDir returns the default directory for storing custom presets.
func DefaultPresetsDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "wallpanel"), nil
}

// DefaultPresetsPath returns the default file path for custom presets.
func DefaultPresetsPath() (string, error) {
	dir, err := DefaultPresetsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "presets.json"), nil
}

// checkPreset requires a name that does not shadow a built-in preset and a
// config that passes validation.
func checkPreset(p CustomPreset) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return errors.New("preset has no name")
	}
	if _, builtIn := model.Preset(name); builtIn {
		return fmt.Errorf("preset %q shadows a built-in preset", name)
	}
	if err := p.Config.Validate().Err(); err != nil {
		return fmt.Errorf("preset %q: %w", name, err)
	}
	return nil
}

// SaveCustomPresets validates and saves custom presets to a JSON or YAML file.
func SaveCustomPresets(path string, presets []CustomPreset) error {
	for _, p := range presets {
		if err := checkPreset(p); err != nil {
			return err
		}
	}
	if presets == nil {
		presets = []CustomPreset{}
	}
	data, err := marshalFor(path, presets)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}
	return writeFile(path, data)
}

// LoadCustomPresets loads custom presets from a file.
// Returns an empty slice if the file does not exist.
func LoadCustomPresets(path string) ([]CustomPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []CustomPreset{}, nil
		}
		return nil, err
	}

	var presets []CustomPreset
	if err := unmarshalFor(path, data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse presets %s: %w", path, err)
	}
	for _, p := range presets {
		if err := checkPreset(p); err != nil {
			return nil, err
		}
	}
	if presets == nil {
		presets = []CustomPreset{}
	}
	return presets, nil
}

// ResolvePreset looks a name up among the built-in presets first, then
// among custom presets.
func ResolvePreset(name string, custom []CustomPreset) (model.PanelConfig, bool) {
	if cfg, ok := model.Preset(name); ok {
		return cfg, true
	}
	for _, p := range custom {
		if strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name)) {
			return p.Config, true
		}
	}
	return model.PanelConfig{}, false
}

// ExportPreset writes a single preset to a JSON file for sharing.
func ExportPreset(path string, preset CustomPreset) error {
	if err := checkPreset(preset); err != nil {
		return err
	}
	data, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportPreset reads a single preset from a JSON file.
func ImportPreset(path string) (CustomPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CustomPreset{}, err
	}

	var preset CustomPreset
	if err := json.Unmarshal(data, &preset); err != nil {
		return CustomPreset{}, err
	}
	if err := checkPreset(preset); err != nil {
		return CustomPreset{}, err
	}
	return preset, nil
}
