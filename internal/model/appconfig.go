package model

// AppConfig holds run-wide preferences that sit around a PanelConfig.
type AppConfig struct {
	// Panel rules applied to new runs
	DefaultPreset   string  `json:"default_preset" yaml:"default_preset"`
	CornerTolerance float64 `json:"corner_tolerance" yaml:"corner_tolerance"` // ft

	// Execution preferences
	Workers  int    `json:"workers" yaml:"workers"`     // 0 = sequential
	LogLevel string `json:"log_level" yaml:"log_level"` // "debug", "info", "warn", "error"

	RecentProjects []string `json:"recent_projects" yaml:"recent_projects"`
}

// DefaultCornerTolerance is the distance within which two wall endpoints
// are treated as the same corner.
const DefaultCornerTolerance = 0.01

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultPreset:   "residential_16oc",
		CornerTolerance: DefaultCornerTolerance,
		Workers:         0,
		LogLevel:        "info",
		RecentProjects:  []string{},
	}
}

// PanelConfig resolves the default preset, falling back to DefaultPanelConfig
// when the preset name is unknown.
func (c AppConfig) PanelConfig() PanelConfig {
	if p, ok := Preset(c.DefaultPreset); ok {
		return p
	}
	return DefaultPanelConfig()
}
