// Package wallpanel splits building walls into factory-built panels.
//
// It resolves shared wall corners, places vertical joints on each wall so
// panels stay within length limits and away from openings and corners, and
// returns one PanelResults record per wall. The records serialize to a
// stable JSON interchange form and can be exported as shop drawings, panel
// labels, schedules and DXF outlines.
//
// All lengths are in feet.
//
//	d, err := wallpanel.New(wallpanel.DefaultPanelConfig())
//	if err != nil {
//		return err
//	}
//	results := d.DecomposeAllWalls(walls, framing)
//	data, err := wallpanel.SerializeBatchResults(results)
package wallpanel

import (
	"go.uber.org/zap"

	"github.com/piwi3910/WallPanel/internal/engine"
	"github.com/piwi3910/WallPanel/internal/export"
	"github.com/piwi3910/WallPanel/internal/importer"
	"github.com/piwi3910/WallPanel/internal/model"
	"github.com/piwi3910/WallPanel/internal/project"
)

// Input records.
type (
	Point3D        = model.Point3D
	LocalFrame     = model.LocalFrame
	Wall           = model.Wall
	WallEnd        = model.WallEnd
	Opening        = model.Opening
	FramingElement = model.FramingElement
)

// Configuration.
type (
	PanelConfig      = model.PanelConfig
	CornerPriority   = model.CornerPriority
	ValidationResult = model.ValidationResult
	ConfigError      = model.ConfigError
	AppConfig        = model.AppConfig
)

const (
	PriorityLongerWall = model.PriorityLongerWall
	PrioritySpecified  = model.PrioritySpecified
	PriorityAlternate  = model.PriorityAlternate
)

// Results.
type (
	WallCornerInfo   = model.WallCornerInfo
	CornerAdjustment = model.CornerAdjustment
	ExclusionZone    = model.ExclusionZone
	Span             = model.Span
	Panel            = model.Panel
	Joint            = model.Joint
	JointType        = model.JointType
	JointStrategy    = model.JointStrategy
	ResultMetadata   = model.ResultMetadata
	PanelResults     = model.PanelResults
	ShipmentEstimate = model.ShipmentEstimate
)

// Engine.
type (
	Decomposer         = engine.Decomposer
	Option             = engine.Option
	AdjustedWall       = engine.AdjustedWall
	CornerGroup        = engine.CornerGroup
	JointPlan          = engine.JointPlan
	ComparisonScenario = engine.ComparisonScenario
	ComparisonResult   = engine.ComparisonResult
)

// Files.
type (
	BatchDocument  = project.BatchDocument
	CustomPreset   = project.CustomPreset
	ImportResult   = importer.ImportResult
	WallDefaults   = importer.WallDefaults
	PanelLabelInfo = export.PanelLabelInfo
)

// DefaultCornerTolerance is the endpoint distance treated as a shared corner.
const DefaultCornerTolerance = model.DefaultCornerTolerance

// ─── Configuration ─────────────────────────────────────────

// DefaultPanelConfig returns the residential 16" on-center rules.
func DefaultPanelConfig() PanelConfig { return model.DefaultPanelConfig() }

// Preset returns a built-in config by name.
func Preset(name string) (PanelConfig, bool) { return model.Preset(name) }

// PresetNames lists the built-in config names in sorted order.
func PresetNames() []string { return model.PresetNames() }

// DefaultAppConfig returns the default run-wide preferences.
func DefaultAppConfig() AppConfig { return model.DefaultAppConfig() }

// LoadPanelConfig reads and validates a YAML or JSON panel config file.
func LoadPanelConfig(path string) (PanelConfig, error) { return project.LoadPanelConfig(path) }

// SavePanelConfig validates cfg and writes it as YAML or JSON by extension.
func SavePanelConfig(path string, cfg PanelConfig) error { return project.SavePanelConfig(path, cfg) }

// ─── Decomposition ─────────────────────────────────────────

// New returns a Decomposer for a validated config.
func New(cfg PanelConfig, opts ...Option) (*Decomposer, error) { return engine.New(cfg, opts...) }

// NewFromAppConfig builds a Decomposer from run-wide preferences.
func NewFromAppConfig(app AppConfig) (*Decomposer, error) { return engine.NewFromAppConfig(app) }

// WithLogger sets the logger used for fallback and corner diagnostics.
func WithLogger(l *zap.Logger) Option { return engine.WithLogger(l) }

// WithCornerTolerance sets the endpoint distance treated as a shared corner.
func WithCornerTolerance(t float64) Option { return engine.WithCornerTolerance(t) }

// WithWorkers sets how many walls Decomposer.Run handles concurrently.
func WithWorkers(n int) Option { return engine.WithWorkers(n) }

// DetectWallCorners finds every pair of wall ends within tolerance.
func DetectWallCorners(walls []Wall, tolerance float64) []WallCornerInfo {
	return engine.DetectWallCorners(walls, tolerance)
}

// CalculateCornerAdjustments resolves two-wall corners into per-wall adjustments.
func CalculateCornerAdjustments(corners []WallCornerInfo, priority CornerPriority, tolerance float64) []CornerAdjustment {
	return engine.CalculateCornerAdjustments(corners, priority, tolerance)
}

// ApplyCornerAdjustments returns the wall with its ends moved by the adjustments.
func ApplyCornerAdjustments(wall Wall, adjustments []CornerAdjustment) AdjustedWall {
	return engine.ApplyCornerAdjustments(wall, adjustments)
}

// GetAdjustedWallLength returns the wall length after the adjustments.
func GetAdjustedWallLength(wall Wall, adjustments []CornerAdjustment) float64 {
	return engine.GetAdjustedWallLength(wall, adjustments)
}

// FindExclusionZones returns the merged no-joint zones of a wall.
func FindExclusionZones(wall Wall, cfg PanelConfig) []ExclusionZone {
	return engine.FindExclusionZones(wall, cfg)
}

// PlanJoints places joints on a wall of the given length and reports the strategy used.
func PlanJoints(wallLength float64, zones []ExclusionZone, cfg PanelConfig) JointPlan {
	return engine.PlanJoints(wallLength, zones, cfg)
}

// GetPanelBoundaries converts joints into contiguous spans covering the wall.
func GetPanelBoundaries(joints []float64, length float64) []Span {
	return engine.GetPanelBoundaries(joints, length)
}

// ValidateJoints lists every panel length rule a joint set breaks.
func ValidateJoints(joints []float64, length float64, cfg PanelConfig) []string {
	return engine.ValidateJoints(joints, length, cfg)
}

// CompareScenarios decomposes the same walls under several configs.
func CompareScenarios(scenarios []ComparisonScenario, walls []Wall, framing map[string][]FramingElement, opts ...Option) []ComparisonResult {
	return engine.CompareScenarios(scenarios, walls, framing, opts...)
}

// BuildDefaultScenarios derives what-if configs from base.
func BuildDefaultScenarios(base PanelConfig) []ComparisonScenario {
	return engine.BuildDefaultScenarios(base)
}

// CalculateShipmentEstimate totals a panel set against the transport limits in cfg.
func CalculateShipmentEstimate(panels []Panel, cfg PanelConfig) ShipmentEstimate {
	return model.CalculateShipmentEstimate(panels, cfg)
}

// ─── Interchange ───────────────────────────────────────────

// SerializePanelResults encodes one wall result as JSON.
func SerializePanelResults(r PanelResults) ([]byte, error) { return project.SerializePanelResults(r) }

// DeserializePanelResults decodes and checks one wall result.
func DeserializePanelResults(data []byte) (PanelResults, error) {
	return project.DeserializePanelResults(data)
}

// SerializeBatchResults encodes a list of wall results as a JSON array.
func SerializeBatchResults(results []PanelResults) ([]byte, error) {
	return project.SerializeBatchResults(results)
}

// DeserializeBatchResults decodes and checks a JSON array of wall results.
func DeserializeBatchResults(data []byte) ([]PanelResults, error) {
	return project.DeserializeBatchResults(data)
}

// SaveResults writes a result file.
func SaveResults(path string, results []PanelResults) error { return project.SaveResults(path, results) }

// LoadResults reads a result file.
func LoadResults(path string) ([]PanelResults, error) { return project.LoadResults(path) }

// ─── Import and export ─────────────────────────────────────

// NormalizeWallRecord maps a loosely keyed wall record onto Wall.
func NormalizeWallRecord(rec map[string]any) (Wall, []string) { return importer.NormalizeWallRecord(rec) }

// ParseWallsJSON reads a JSON array (or {"walls": [...]}) of wall records.
func ParseWallsJSON(data []byte) ImportResult { return importer.ParseWallsJSON(data) }

// ParseFramingJSON reads framing elements keyed by wall ID or listed with a wall_id.
func ParseFramingJSON(data []byte) ImportResult { return importer.ParseFramingJSON(data) }

// ImportCSV reads a wall schedule from a CSV file.
func ImportCSV(path string) ImportResult { return importer.ImportCSV(path) }

// ImportExcel reads a wall schedule from the first sheet of a workbook.
func ImportExcel(path string) ImportResult { return importer.ImportExcel(path) }

// DefaultWallDefaults returns 6" thick, 9 ft walls drawn in feet.
func DefaultWallDefaults() WallDefaults { return importer.DefaultWallDefaults() }

// ImportDXF reads wall centerlines from a DXF drawing.
func ImportDXF(path string, defaults WallDefaults) ImportResult {
	return importer.ImportDXF(path, defaults)
}

// ExportPDF writes panel shop drawings.
func ExportPDF(path string, results []PanelResults) error { return export.ExportPDF(path, results) }

// ExportLabels writes a sheet of QR-coded panel labels.
func ExportLabels(path string, results []PanelResults) error { return export.ExportLabels(path, results) }

// ExportSchedule writes a panel and joint schedule workbook.
func ExportSchedule(path string, results []PanelResults) error {
	return export.ExportSchedule(path, results)
}

// ExportDXF writes panel outlines and joint lines in world coordinates.
func ExportDXF(path string, results []PanelResults) error { return export.ExportDXF(path, results) }
