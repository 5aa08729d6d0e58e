package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/WallPanel/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.wallpanel/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".wallpanel")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// isYAML reports whether path should be read and written as YAML.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func marshalFor(path string, v any) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

func unmarshalFor(path string, data []byte, v any) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, v)
	}
	return json.Unmarshal(data, v)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

// SaveAppConfig persists an AppConfig to the given path, as YAML for .yaml
// and .yml files and JSON otherwise. Missing parent directories are created.
func SaveAppConfig(path string, config model.AppConfig) error {
	data, err := marshalFor(path, config)
	if err != nil {
		return fmt.Errorf("failed to marshal app config: %w", err)
	}
	return writeFile(path, data)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := unmarshalFor(path, data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse app config %s: %w", path, err)
	}
	// Ensure RecentProjects is never nil
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	if config.CornerTolerance <= 0 {
		config.CornerTolerance = model.DefaultCornerTolerance
	}
	return config, nil
}

// SavePanelConfig validates cfg and writes it to path. An invalid config
// is not written; the returned *model.ConfigError lists every violation.
func SavePanelConfig(path string, cfg model.PanelConfig) error {
	if err := cfg.Validate().Err(); err != nil {
		return err
	}
	data, err := marshalFor(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal panel config: %w", err)
	}
	return writeFile(path, data)
}

// LoadPanelConfig reads a panel config file. Keys missing from the file keep
// their default values. Type problems and constraint violations are
// reported together as a *model.ConfigError.
func LoadPanelConfig(path string) (model.PanelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PanelConfig{}, fmt.Errorf("failed to read panel config: %w", err)
	}
	var raw map[string]any
	if err := unmarshalFor(path, data, &raw); err != nil {
		return model.PanelConfig{}, fmt.Errorf("failed to parse panel config %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return model.PanelConfigFromMap(raw)
}
