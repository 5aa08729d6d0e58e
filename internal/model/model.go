package model

import (
	"errors"
	"fmt"
)

// WallEnd identifies one end of a wall.
type WallEnd string

const (
	EndStart WallEnd = "start"
	EndEnd   WallEnd = "end"
)

// Opening is a door, window, or other void cut through a wall.
type Opening struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`    // "door", "window", ...
	UStart float64 `json:"u_start"` // ft from wall start
	UEnd   float64 `json:"u_end"`   // ft from wall start
}

// Width returns the opening width along the wall.
func (o Opening) Width() float64 {
	return o.UEnd - o.UStart
}

// Wall is the canonical wall record consumed by the panelization engine.
// External record shapes are mapped onto it by the importer package.
type Wall struct {
	ID            string     `json:"id"`
	Length        float64    `json:"length"`         // ft, centerline
	Thickness     float64    `json:"thickness"`      // ft
	Height        float64    `json:"height"`         // ft
	BaseElevation float64    `json:"base_elevation"` // ft
	Start         Point3D    `json:"start_point"`
	End           Point3D    `json:"end_point"`
	Frame         LocalFrame `json:"local_frame"`
	Openings      []Opening  `json:"openings,omitempty"`
}

// Direction returns the unit vector pointing from the wall start to its end.
// It prefers the frame's U axis, then the endpoint delta, then +X.
func (w Wall) Direction() Point3D {
	if !w.Frame.UAxis.IsZero() {
		return w.Frame.UAxis.Normalize()
	}
	if d := w.End.Sub(w.Start); !d.IsZero() {
		return d.Normalize()
	}
	return Point3D{X: 1}
}

// UpAxis returns the unit vertical axis of the wall, defaulting to +Z.
func (w Wall) UpAxis() Point3D {
	if !w.Frame.VAxis.IsZero() {
		return w.Frame.VAxis.Normalize()
	}
	return Point3D{Z: 1}
}

// Origin returns the point U=0 is measured from.
func (w Wall) Origin() Point3D {
	if w.Frame.IsSet() {
		return w.Frame.Origin
	}
	return w.Start
}

// Endpoint returns the world point of the given wall end.
func (w Wall) Endpoint(end WallEnd) Point3D {
	if end == EndEnd {
		return w.End
	}
	return w.Start
}

// FramingElement is a read-only reference to a framing member produced
// elsewhere (stud, king stud, header...). Only its U position is used.
type FramingElement struct {
	ID   string  `json:"id"`
	Type string  `json:"type"`
	U    float64 `json:"u"` // ft from wall start
}

// WallEndpoint is a transient view of one wall end used during corner detection.
type WallEndpoint struct {
	WallID        string  `json:"wall_id"`
	End           WallEnd `json:"end"`
	Point         Point3D `json:"point"`
	WallLength    float64 `json:"wall_length"`
	WallThickness float64 `json:"wall_thickness"`
	Direction     Point3D `json:"direction"`
}

// WallCornerInfo records that a wall end meets another wall.
// One instance exists per wall per detected corner.
type WallCornerInfo struct {
	WallID              string  `json:"wall_id"`
	End                 WallEnd `json:"end"`
	Point               Point3D `json:"corner_point"`
	ConnectingWallID    string  `json:"connecting_wall_id"`
	ConnectingThickness float64 `json:"connecting_wall_thickness"`
	Angle               float64 `json:"angle"` // degrees
	WallLength          float64 `json:"wall_length"`
	WallThickness       float64 `json:"wall_thickness"`
}

// AdjustmentType is the way a wall end moves at a corner.
type AdjustmentType string

const (
	AdjustExtend AdjustmentType = "extend"
	AdjustRecede AdjustmentType = "recede"
)

// CornerAdjustment describes how far one wall end moves to resolve a corner.
type CornerAdjustment struct {
	WallID              string         `json:"wall_id"`
	End                 WallEnd        `json:"end"`
	Type                AdjustmentType `json:"adjustment_type"`
	Amount              float64        `json:"adjustment_amount"` // ft, always positive
	ConnectingWallID    string         `json:"connecting_wall_id"`
	ConnectingThickness float64        `json:"connecting_wall_thickness"`
}

// SignedAmount returns the length change this adjustment causes:
// positive for an extension, negative for a recession.
func (a CornerAdjustment) SignedAmount() float64 {
	if a.Type == AdjustRecede {
		return -a.Amount
	}
	return a.Amount
}

// ZoneType classifies an exclusion zone.
type ZoneType string

const (
	ZoneOpening     ZoneType = "opening"
	ZoneCornerStart ZoneType = "corner_start"
	ZoneCornerEnd   ZoneType = "corner_end"
	ZoneMerged      ZoneType = "merged"
)

// ErrInvalidZone is returned when an exclusion zone ends before it starts.
var ErrInvalidZone = errors.New("invalid exclusion zone")

// ExclusionZone is a U range along a wall where no joint may be placed.
type ExclusionZone struct {
	UStart    float64  `json:"u_start"`
	UEnd      float64  `json:"u_end"`
	Type      ZoneType `json:"zone_type"`
	ElementID string   `json:"element_id,omitempty"`
}

// NewExclusionZone builds a zone, rejecting ranges that end before they start.
func NewExclusionZone(uStart, uEnd float64, zoneType ZoneType, elementID string) (ExclusionZone, error) {
	if uEnd < uStart {
		return ExclusionZone{}, fmt.Errorf("%w: u_end %.4f < u_start %.4f", ErrInvalidZone, uEnd, uStart)
	}
	return ExclusionZone{UStart: uStart, UEnd: uEnd, Type: zoneType, ElementID: elementID}, nil
}

// Contains reports whether u lies within the zone, bounds included.
func (z ExclusionZone) Contains(u float64) bool {
	return u >= z.UStart && u <= z.UEnd
}

// ContainsStrict reports whether u lies strictly inside the zone.
func (z ExclusionZone) ContainsStrict(u float64) bool {
	return u > z.UStart && u < z.UEnd
}

// Width returns the zone's extent along the wall.
func (z ExclusionZone) Width() float64 {
	return z.UEnd - z.UStart
}

// Span is a half-open U range [UStart, UEnd) covered by one panel.
type Span struct {
	UStart float64 `json:"u_start"`
	UEnd   float64 `json:"u_end"`
}

// Length returns the span length.
func (s Span) Length() float64 {
	return s.UEnd - s.UStart
}

// Panel is a manufacturable wall segment bounded by wall ends and/or joints.
type Panel struct {
	ID               string     `json:"id"`
	WallID           string     `json:"wall_id"`
	Index            int        `json:"index"`
	UStart           float64    `json:"u_start"`
	UEnd             float64    `json:"u_end"`
	Length           float64    `json:"length"` // ft
	Height           float64    `json:"height"` // ft
	Corners          [4]Point3D `json:"corners"` // bottom-start, bottom-end, top-end, top-start
	ElementIDs       []string   `json:"element_ids"`
	EstimatedWeight  float64    `json:"estimated_weight"` // lbs
	AssemblySequence int        `json:"assembly_sequence"`
}

// Area returns the panel face area in square feet.
func (p Panel) Area() float64 {
	return p.Length * p.Height
}

// JointType classifies a joint by what it sits next to.
type JointType string

const (
	JointCornerAdjacent  JointType = "corner_adjacent"
	JointOpeningAdjacent JointType = "opening_adjacent"
	JointField           JointType = "field"
)

// Joint is the vertical seam between two adjacent panels.
type Joint struct {
	U            float64   `json:"u_coord"`
	Type         JointType `json:"joint_type"`
	LeftPanelID  string    `json:"left_panel_id"`
	RightPanelID string    `json:"right_panel_id"`
	NearbyStuds  []float64 `json:"nearby_studs,omitempty"`
}

// JointStrategy names the placement path that produced a joint set.
type JointStrategy string

const (
	StrategyNone          JointStrategy = "none"           // wall fits one panel
	StrategyOptimal       JointStrategy = "optimal"        // dynamic program
	StrategyEqualInterval JointStrategy = "equal_interval" // no usable candidates
	StrategyGreedy        JointStrategy = "greedy"         // DP infeasible, snapped placement
	StrategyGreedyForced  JointStrategy = "greedy_forced"  // at least one joint forced into place
)

// Degraded reports whether the strategy may have broken a placement rule.
func (s JointStrategy) Degraded() bool {
	switch s {
	case StrategyEqualInterval, StrategyGreedy, StrategyGreedyForced:
		return true
	default:
		return false
	}
}

// ResultMetadata carries the inputs and diagnostics of one wall decomposition.
type ResultMetadata struct {
	Config         PanelConfig     `json:"config"`
	ExclusionZones []ExclusionZone `json:"exclusion_zones"`
	JointStrategy  JointStrategy   `json:"joint_strategy"`
	StartDelta     float64         `json:"start_delta"`
	EndDelta       float64         `json:"end_delta"`
	Violations     []string        `json:"violations,omitempty"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// PanelResults is the full panelization output for one wall.
type PanelResults struct {
	WallID            string             `json:"wall_id"`
	Panels            []Panel            `json:"panels"`
	Joints            []Joint            `json:"joints"`
	CornerAdjustments []CornerAdjustment `json:"corner_adjustments"`
	PanelCount        int                `json:"total_panels"`
	OriginalLength    float64            `json:"original_length"`
	AdjustedLength    float64            `json:"adjusted_length"`
	Metadata          ResultMetadata     `json:"metadata"`
}

// TotalWeight returns the summed estimated weight of all panels.
func (r PanelResults) TotalWeight() float64 {
	var total float64
	for _, p := range r.Panels {
		total += p.EstimatedWeight
	}
	return total
}
