package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CornerPriority selects which wall extends at a two-wall corner.
type CornerPriority string

const (
	PriorityLongerWall CornerPriority = "longer_wall" // longer wall extends
	PrioritySpecified  CornerPriority = "specified"   // declared but not implemented, see Validate
	PriorityAlternate  CornerPriority = "alternate"   // lower wall ID extends
)

// PanelConfig holds the panelization rules. All lengths are in feet,
// weights in pounds.
type PanelConfig struct {
	MaxPanelLength      float64 `json:"max_panel_length" yaml:"max_panel_length"`
	MinPanelLength      float64 `json:"min_panel_length" yaml:"min_panel_length"`
	MaxPanelHeight      float64 `json:"max_panel_height" yaml:"max_panel_height"`
	MinJointToOpening   float64 `json:"min_joint_to_opening" yaml:"min_joint_to_opening"`
	MinJointToCorner    float64 `json:"min_joint_to_corner" yaml:"min_joint_to_corner"`
	MinJointToShearWall float64 `json:"min_joint_to_shear_wall" yaml:"min_joint_to_shear_wall"`

	CornerPriority CornerPriority `json:"corner_priority" yaml:"corner_priority"`

	// Transport limits
	MaxTransportLength float64 `json:"max_transport_length" yaml:"max_transport_length"`
	MaxTransportWeight float64 `json:"max_transport_weight" yaml:"max_transport_weight"`

	// Framing alignment
	StudSpacing          float64 `json:"stud_spacing" yaml:"stud_spacing"`
	RequireStudAlignment bool    `json:"require_stud_alignment" yaml:"require_stud_alignment"`

	WeightPerSqFt float64 `json:"weight_per_sqft" yaml:"weight_per_sqft"`
}

// Residential16OC returns the default residential preset with studs at 16" on center.
func Residential16OC() PanelConfig {
	return PanelConfig{
		MaxPanelLength:       24.0,
		MinPanelLength:       4.0,
		MaxPanelHeight:       12.0,
		MinJointToOpening:    1.0,
		MinJointToCorner:     2.0,
		MinJointToShearWall:  2.0,
		CornerPriority:       PriorityLongerWall,
		MaxTransportLength:   40.0,
		MaxTransportWeight:   10000.0,
		StudSpacing:          16.0 / 12.0,
		RequireStudAlignment: true,
		WeightPerSqFt:        12.0,
	}
}

// Residential24OC returns the residential preset with studs at 24" on center.
func Residential24OC() PanelConfig {
	c := Residential16OC()
	c.StudSpacing = 2.0
	c.WeightPerSqFt = 11.0
	return c
}

// Commercial returns a preset for taller, heavier commercial walls.
func Commercial() PanelConfig {
	return PanelConfig{
		MaxPanelLength:       30.0,
		MinPanelLength:       6.0,
		MaxPanelHeight:       14.0,
		MinJointToOpening:    1.5,
		MinJointToCorner:     3.0,
		MinJointToShearWall:  3.0,
		CornerPriority:       PriorityLongerWall,
		MaxTransportLength:   48.0,
		MaxTransportWeight:   20000.0,
		StudSpacing:          16.0 / 12.0,
		RequireStudAlignment: true,
		WeightPerSqFt:        18.0,
	}
}

// DefaultPanelConfig returns the 16" OC residential preset.
func DefaultPanelConfig() PanelConfig {
	return Residential16OC()
}

var presets = map[string]func() PanelConfig{
	"residential_16oc": Residential16OC,
	"residential_24oc": Residential24OC,
	"commercial":       Commercial,
}

// Preset returns a named preset.
func Preset(name string) (PanelConfig, bool) {
	fn, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PanelConfig{}, false
	}
	return fn(), true
}

// PresetNames returns the names of all built-in presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ValidationResult collects every problem found in a PanelConfig.
type ValidationResult struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// OK reports whether the config has no errors. Warnings do not fail validation.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Err returns nil for a passing result, or a *ConfigError listing every violation.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	return &ConfigError{Violations: append([]string(nil), r.Errors...)}
}

// ConfigError reports all violated configuration constraints at once.
type ConfigError struct {
	Violations []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid panel config (%d violations): %s", len(e.Violations), strings.Join(e.Violations, "; "))
}

// Validate checks every constraint and reports all violations together.
func (c PanelConfig) Validate() ValidationResult {
	var r ValidationResult

	positive := []struct {
		name  string
		value float64
	}{
		{"max_panel_length", c.MaxPanelLength},
		{"min_panel_length", c.MinPanelLength},
		{"max_panel_height", c.MaxPanelHeight},
		{"max_transport_length", c.MaxTransportLength},
		{"max_transport_weight", c.MaxTransportWeight},
		{"stud_spacing", c.StudSpacing},
		{"weight_per_sqft", c.WeightPerSqFt},
	}
	for _, f := range positive {
		if f.value <= 0 {
			r.Errors = append(r.Errors, fmt.Sprintf("%s must be positive, got %g", f.name, f.value))
		}
	}

	offsets := []struct {
		name  string
		value float64
	}{
		{"min_joint_to_opening", c.MinJointToOpening},
		{"min_joint_to_corner", c.MinJointToCorner},
		{"min_joint_to_shear_wall", c.MinJointToShearWall},
	}
	for _, f := range offsets {
		if f.value < 0 {
			r.Errors = append(r.Errors, fmt.Sprintf("%s must not be negative, got %g", f.name, f.value))
		}
	}

	if c.MinPanelLength > c.MaxPanelLength {
		r.Errors = append(r.Errors, fmt.Sprintf("min_panel_length (%g) exceeds max_panel_length (%g)", c.MinPanelLength, c.MaxPanelLength))
	}
	if c.MaxTransportLength < c.MaxPanelLength {
		r.Errors = append(r.Errors, fmt.Sprintf("max_transport_length (%g) is less than max_panel_length (%g)", c.MaxTransportLength, c.MaxPanelLength))
	}

	switch c.CornerPriority {
	case PriorityLongerWall, PriorityAlternate:
	case PrioritySpecified:
		r.Warnings = append(r.Warnings, "corner_priority \"specified\" is not implemented; corners fall back to detection order")
	default:
		r.Errors = append(r.Errors, fmt.Sprintf("unknown corner_priority %q", c.CornerPriority))
	}

	return r
}

// ToMap converts the config to a plain key-value map for interchange.
func (c PanelConfig) ToMap() map[string]any {
	return map[string]any{
		"max_panel_length":        c.MaxPanelLength,
		"min_panel_length":        c.MinPanelLength,
		"max_panel_height":        c.MaxPanelHeight,
		"min_joint_to_opening":    c.MinJointToOpening,
		"min_joint_to_corner":     c.MinJointToCorner,
		"min_joint_to_shear_wall": c.MinJointToShearWall,
		"corner_priority":         string(c.CornerPriority),
		"max_transport_length":    c.MaxTransportLength,
		"max_transport_weight":    c.MaxTransportWeight,
		"stud_spacing":            c.StudSpacing,
		"require_stud_alignment":  c.RequireStudAlignment,
		"weight_per_sqft":         c.WeightPerSqFt,
	}
}

// PanelConfigFromMap builds a config from a key-value map. Keys that are
// absent keep their default value. Type errors and constraint violations
// are reported together in a single *ConfigError.
func PanelConfigFromMap(m map[string]any) (PanelConfig, error) {
	c := DefaultPanelConfig()
	var problems []string

	floatFields := map[string]*float64{
		"max_panel_length":        &c.MaxPanelLength,
		"min_panel_length":        &c.MinPanelLength,
		"max_panel_height":        &c.MaxPanelHeight,
		"min_joint_to_opening":    &c.MinJointToOpening,
		"min_joint_to_corner":     &c.MinJointToCorner,
		"min_joint_to_shear_wall": &c.MinJointToShearWall,
		"max_transport_length":    &c.MaxTransportLength,
		"max_transport_weight":    &c.MaxTransportWeight,
		"stud_spacing":            &c.StudSpacing,
		"weight_per_sqft":         &c.WeightPerSqFt,
	}
	keys := make([]string, 0, len(floatFields))
	for k := range floatFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		raw, ok := m[key]
		if !ok {
			continue
		}
		v, ok := ToFloat(raw)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: expected a number, got %v", key, raw))
			continue
		}
		*floatFields[key] = v
	}

	if raw, ok := m["corner_priority"]; ok {
		s, ok := raw.(string)
		if !ok {
			problems = append(problems, fmt.Sprintf("corner_priority: expected a string, got %v", raw))
		} else {
			c.CornerPriority = CornerPriority(s)
		}
	}
	if raw, ok := m["require_stud_alignment"]; ok {
		switch v := raw.(type) {
		case bool:
			c.RequireStudAlignment = v
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				problems = append(problems, fmt.Sprintf("require_stud_alignment: expected a boolean, got %q", v))
			} else {
				c.RequireStudAlignment = b
			}
		default:
			problems = append(problems, fmt.Sprintf("require_stud_alignment: expected a boolean, got %v", raw))
		}
	}

	problems = append(problems, c.Validate().Errors...)
	if len(problems) > 0 {
		return c, &ConfigError{Violations: problems}
	}
	return c, nil
}

// ToFloat converts the numeric shapes produced by JSON, YAML, and
// spreadsheet decoders into a float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
