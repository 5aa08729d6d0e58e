package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/piwi3910/WallPanel/internal/model"
)

// openingJointMargin widens the opening-adjacent band beyond MinJointToOpening.
const openingJointMargin = 0.5

// Decomposer splits walls into panels and joints.
type Decomposer struct {
	Config          model.PanelConfig
	CornerTolerance float64
	Workers         int // 0 = sequential
	logger          *zap.Logger
}

// Option configures a Decomposer.
type Option func(*Decomposer)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(d *Decomposer) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithCornerTolerance sets the endpoint distance treated as a shared corner.
func WithCornerTolerance(t float64) Option {
	return func(d *Decomposer) {
		if t > 0 {
			d.CornerTolerance = t
		}
	}
}

// WithWorkers sets how many walls Run decomposes concurrently.
func WithWorkers(n int) Option {
	return func(d *Decomposer) {
		if n >= 0 {
			d.Workers = n
		}
	}
}

// New returns a Decomposer for cfg. The config is validated first and every
// violation is returned as a *model.ConfigError.
func New(cfg model.PanelConfig, opts ...Option) (*Decomposer, error) {
	if err := cfg.Validate().Err(); err != nil {
		return nil, fmt.Errorf("failed to create decomposer: %w", err)
	}
	d := &Decomposer{
		Config:          cfg,
		CornerTolerance: model.DefaultCornerTolerance,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NewFromAppConfig builds a Decomposer from run-wide preferences: the
// default preset's rules, corner tolerance, worker count and log level.
func NewFromAppConfig(app model.AppConfig) (*Decomposer, error) {
	logger, err := NewLogger(app.LogLevel)
	if err != nil {
		return nil, err
	}
	return New(app.PanelConfig(),
		WithLogger(logger),
		WithCornerTolerance(app.CornerTolerance),
		WithWorkers(app.Workers),
	)
}

// DecomposeWallToPanels applies the wall's corner adjustments, places joints
// on the adjusted length, and builds the panel and joint records. Framing
// elements are only read, to tag panels and list studs near each joint.
func (d *Decomposer) DecomposeWallToPanels(wall model.Wall, framing []model.FramingElement, adjustments []model.CornerAdjustment) model.PanelResults {
	cfg := d.Config
	own := adjustmentsFor(wall.ID, adjustments)
	adjusted := ApplyCornerAdjustments(wall, own)
	w := adjusted.Wall
	length := w.Length

	zones := FindExclusionZones(w, cfg)
	plan := PlanJoints(length, zones, cfg)
	spans := GetPanelBoundaries(plan.Joints, length)
	elements := shiftFraming(framing, adjusted.StartDelta)

	panels := make([]model.Panel, 0, len(spans))
	for i, span := range spans {
		panels = append(panels, d.buildPanel(w, i, span, elements, i == len(spans)-1))
	}

	joints := make([]model.Joint, 0, len(panels)-1)
	for i := 0; i+1 < len(panels); i++ {
		u := panels[i].UEnd
		joints = append(joints, model.Joint{
			U:            u,
			Type:         classifyJoint(u, length, w.Openings, cfg),
			LeftPanelID:  panels[i].ID,
			RightPanelID: panels[i+1].ID,
			NearbyStuds:  nearbyStuds(u, elements, cfg.StudSpacing),
		})
	}

	violations := ValidateJoints(plan.Joints, length, cfg)
	warnings := transportWarnings(panels, cfg)
	if length <= 0 {
		warnings = append(warnings, fmt.Sprintf("wall %q has no usable length", wall.ID))
	}

	if plan.Strategy.Degraded() {
		d.logger.Warn("Joint placement fell back",
			zap.String("wall", wall.ID),
			zap.String("strategy", string(plan.Strategy)),
			zap.Int("violations", len(violations)))
	}
	for _, msg := range warnings {
		d.logger.Info("Panel limit exceeded", zap.String("wall", wall.ID), zap.String("detail", msg))
	}
	d.logger.Debug("Wall decomposed",
		zap.String("wall", wall.ID),
		zap.Float64("original_length", adjusted.OriginalLength),
		zap.Float64("adjusted_length", length),
		zap.Int("panels", len(panels)),
		zap.Int("zones", len(zones)))

	if own == nil {
		own = []model.CornerAdjustment{}
	}
	return model.PanelResults{
		WallID:            wall.ID,
		Panels:            panels,
		Joints:            joints,
		CornerAdjustments: own,
		PanelCount:        len(panels),
		OriginalLength:    adjusted.OriginalLength,
		AdjustedLength:    length,
		Metadata: model.ResultMetadata{
			Config:         cfg,
			ExclusionZones: zones,
			JointStrategy:  plan.Strategy,
			StartDelta:     adjusted.StartDelta,
			EndDelta:       adjusted.EndDelta,
			Violations:     violations,
			Warnings:       warnings,
		},
	}
}

// buildPanel creates the panel for one span of the adjusted wall.
func (d *Decomposer) buildPanel(w model.Wall, index int, span model.Span, elements []model.FramingElement, last bool) model.Panel {
	origin := w.Origin()
	dir := w.Direction()
	up := w.UpAxis().Scale(w.Height)

	bottomStart := origin.Add(dir.Scale(span.UStart))
	bottomEnd := origin.Add(dir.Scale(span.UEnd))

	length := span.Length()
	return model.Panel{
		ID:     fmt.Sprintf("%s-P%02d", w.ID, index+1),
		WallID: w.ID,
		Index:  index,
		UStart: span.UStart,
		UEnd:   span.UEnd,
		Length: length,
		Height: w.Height,
		Corners: [4]model.Point3D{
			bottomStart,
			bottomEnd,
			bottomEnd.Add(up),
			bottomStart.Add(up),
		},
		ElementIDs:       elementsInSpan(elements, span, last),
		EstimatedWeight:  length * w.Height * d.Config.WeightPerSqFt,
		AssemblySequence: index + 1,
	}
}

// classifyJoint types a joint by its distance to the wall ends and openings.
func classifyJoint(u, length float64, openings []model.Opening, cfg model.PanelConfig) model.JointType {
	if u <= cfg.MinJointToCorner+positionTolerance || u >= length-cfg.MinJointToCorner-positionTolerance {
		return model.JointCornerAdjacent
	}
	band := cfg.MinJointToOpening + openingJointMargin
	for _, o := range openings {
		if math.Abs(u-o.UStart) <= band || math.Abs(u-o.UEnd) <= band {
			return model.JointOpeningAdjacent
		}
	}
	return model.JointField
}

// elementsInSpan returns the IDs of elements inside [UStart, UEnd). The last
// span of a wall also takes elements sitting exactly on the wall end.
func elementsInSpan(elements []model.FramingElement, span model.Span, last bool) []string {
	ids := []string{}
	for _, e := range elements {
		if e.U < span.UStart-positionTolerance {
			continue
		}
		if e.U < span.UEnd-positionTolerance || (last && e.U <= span.UEnd+positionTolerance) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// nearbyStuds lists stud positions within one stud spacing of u.
func nearbyStuds(u float64, elements []model.FramingElement, spacing float64) []float64 {
	var studs []float64
	for _, e := range elements {
		if !strings.Contains(strings.ToLower(e.Type), "stud") {
			continue
		}
		if math.Abs(e.U-u) <= spacing+positionTolerance {
			studs = append(studs, e.U)
		}
	}
	sort.Float64s(studs)
	return studs
}

// shiftFraming moves element positions into the adjusted wall's U system.
func shiftFraming(framing []model.FramingElement, startDelta float64) []model.FramingElement {
	if startDelta == 0 {
		return framing
	}
	out := make([]model.FramingElement, len(framing))
	for i, e := range framing {
		e.U += startDelta
		out[i] = e
	}
	return out
}

// transportWarnings flags panels that exceed the shipping or height limits.
func transportWarnings(panels []model.Panel, cfg model.PanelConfig) []string {
	var warnings []string
	for _, p := range panels {
		if cfg.MaxTransportLength > 0 && p.Length > cfg.MaxTransportLength+positionTolerance {
			warnings = append(warnings, fmt.Sprintf("panel %s length %.2f ft exceeds max_transport_length %.2f ft", p.ID, p.Length, cfg.MaxTransportLength))
		}
		if cfg.MaxTransportWeight > 0 && p.EstimatedWeight > cfg.MaxTransportWeight {
			warnings = append(warnings, fmt.Sprintf("panel %s weight %.0f lbs exceeds max_transport_weight %.0f lbs", p.ID, p.EstimatedWeight, cfg.MaxTransportWeight))
		}
		if cfg.MaxPanelHeight > 0 && p.Height > cfg.MaxPanelHeight+positionTolerance {
			warnings = append(warnings, fmt.Sprintf("panel %s height %.2f ft exceeds max_panel_height %.2f ft", p.ID, p.Height, cfg.MaxPanelHeight))
		}
	}
	return warnings
}

func adjustmentsFor(wallID string, adjustments []model.CornerAdjustment) []model.CornerAdjustment {
	var own []model.CornerAdjustment
	for _, a := range adjustments {
		if a.WallID == wallID {
			own = append(own, a)
		}
	}
	return own
}
