package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/WallPanel/internal/model"
)

const (
	// positionTolerance absorbs floating point noise when comparing U positions.
	positionTolerance = 1e-6
	// zoneMergeTolerance is the gap below which two exclusion zones touch.
	zoneMergeTolerance = 1e-3
	// maxSnapSteps bounds the greedy search for a valid stud in each direction.
	maxSnapSteps = 20
)

// FindExclusionZones returns the merged zones along the wall where no joint
// may be placed: each opening widened by MinJointToOpening and, when
// MinJointToCorner is positive, a zone at each wall end.
func FindExclusionZones(wall model.Wall, cfg model.PanelConfig) []model.ExclusionZone {
	length := wall.Length
	var zones []model.ExclusionZone

	for _, o := range wall.Openings {
		start := math.Max(0, o.UStart-cfg.MinJointToOpening)
		end := math.Min(length, o.UEnd+cfg.MinJointToOpening)
		z, err := model.NewExclusionZone(start, end, model.ZoneOpening, o.ID)
		if err != nil {
			// Opening lies entirely outside the wall
			continue
		}
		zones = append(zones, z)
	}

	if c := cfg.MinJointToCorner; c > 0 && length > 0 {
		zones = append(zones,
			model.ExclusionZone{UStart: 0, UEnd: math.Min(c, length), Type: model.ZoneCornerStart},
			model.ExclusionZone{UStart: math.Max(0, length-c), UEnd: length, Type: model.ZoneCornerEnd},
		)
	}

	return MergeExclusionZones(zones)
}

// MergeExclusionZones sorts zones by start and merges those that overlap or
// touch. A zone that absorbs another is tagged "merged".
func MergeExclusionZones(zones []model.ExclusionZone) []model.ExclusionZone {
	if len(zones) == 0 {
		return nil
	}
	sorted := append([]model.ExclusionZone(nil), zones...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].UStart != sorted[j].UStart {
			return sorted[i].UStart < sorted[j].UStart
		}
		return sorted[i].UEnd < sorted[j].UEnd
	})

	merged := []model.ExclusionZone{sorted[0]}
	for _, z := range sorted[1:] {
		last := &merged[len(merged)-1]
		if z.UStart <= last.UEnd+zoneMergeTolerance {
			last.UEnd = math.Max(last.UEnd, z.UEnd)
			last.Type = model.ZoneMerged
			last.ElementID = ""
			continue
		}
		merged = append(merged, z)
	}
	return merged
}

// JointPlan is a joint set together with the strategy that produced it.
type JointPlan struct {
	Joints   []float64           `json:"joints"`
	Strategy model.JointStrategy `json:"strategy"`
}

// FindOptimalJoints returns the joint U coordinates for a wall of the given
// length. See PlanJoints for the placement rules.
func FindOptimalJoints(wallLength float64, zones []model.ExclusionZone, cfg model.PanelConfig) []float64 {
	return PlanJoints(wallLength, zones, cfg).Joints
}

// PlanJoints finds the minimum number of joints such that every panel is at
// most MaxPanelLength, every panel but the last is at least MinPanelLength,
// and no joint lands in an exclusion zone. Candidates are stud-aligned when
// the config requires it. When no valid set exists it falls back to equal
// intervals or a greedy snapped placement and says so in the plan strategy.
func PlanJoints(wallLength float64, zones []model.ExclusionZone, cfg model.PanelConfig) JointPlan {
	if wallLength <= cfg.MaxPanelLength+positionTolerance {
		return JointPlan{Strategy: model.StrategyNone}
	}

	var valid []float64
	for _, u := range candidatePositions(wallLength, cfg) {
		if !inAnyZone(u, zones) {
			valid = append(valid, u)
		}
	}
	if len(valid) == 0 {
		return JointPlan{
			Joints:   equalIntervalJoints(wallLength, cfg.MaxPanelLength),
			Strategy: model.StrategyEqualInterval,
		}
	}

	positions := make([]float64, 0, len(valid)+2)
	positions = append(positions, 0)
	positions = append(positions, valid...)
	positions = append(positions, wallLength)

	if joints, ok := minimumJoints(positions, cfg.MinPanelLength, cfg.MaxPanelLength); ok {
		return JointPlan{Joints: joints, Strategy: model.StrategyOptimal}
	}

	joints, forced := greedyJoints(wallLength, zones, cfg)
	strategy := model.StrategyGreedy
	if forced {
		strategy = model.StrategyGreedyForced
	}
	return JointPlan{Joints: joints, Strategy: strategy}
}

// candidatePositions lists every grid position strictly between 0 and length.
// Stud-aligned configs use the stud spacing; otherwise a grid twice as dense.
func candidatePositions(length float64, cfg model.PanelConfig) []float64 {
	step := cfg.StudSpacing
	if !cfg.RequireStudAlignment {
		step = cfg.StudSpacing / 2
	}
	if step <= 0 {
		return nil
	}
	var out []float64
	for k := 1; ; k++ {
		u := float64(k) * step
		if u >= length-positionTolerance {
			break
		}
		out = append(out, u)
	}
	return out
}

func inAnyZone(u float64, zones []model.ExclusionZone) bool {
	for _, z := range zones {
		if z.Contains(u) {
			return true
		}
	}
	return false
}

// equalIntervalJoints splits length into the fewest equal panels no longer
// than maxLen. It ignores exclusion zones.
func equalIntervalJoints(length, maxLen float64) []float64 {
	if maxLen <= 0 {
		return nil
	}
	n := int(math.Ceil(length/maxLen - positionTolerance))
	var joints []float64
	for i := 1; i < n; i++ {
		joints = append(joints, length*float64(i)/float64(n))
	}
	return joints
}

// minimumJoints runs the dynamic program over the ordered positions, whose
// first and last entries are the wall ends. dp[i] is the fewest panels that
// reach positions[i]; ties keep the earliest predecessor. The final segment
// is exempt from the minimum length.
func minimumJoints(positions []float64, minLen, maxLen float64) ([]float64, bool) {
	const unreachable = math.MaxInt
	m := len(positions)
	dp := make([]int, m)
	parent := make([]int, m)
	for i := range dp {
		dp[i] = unreachable
		parent[i] = -1
	}
	dp[0] = 0

	for i := 1; i < m; i++ {
		last := i == m-1
		for j := 0; j < i; j++ {
			if dp[j] == unreachable {
				continue
			}
			seg := positions[i] - positions[j]
			if seg > maxLen+positionTolerance {
				continue
			}
			if !last && seg < minLen-positionTolerance {
				continue
			}
			if dp[j]+1 < dp[i] {
				dp[i] = dp[j] + 1
				parent[i] = j
			}
		}
	}

	if dp[m-1] == unreachable {
		return nil, false
	}

	var joints []float64
	for i := parent[m-1]; i > 0; i = parent[i] {
		joints = append(joints, positions[i])
	}
	// Backtracking walks right to left
	for l, r := 0, len(joints)-1; l < r; l, r = l+1, r-1 {
		joints[l], joints[r] = joints[r], joints[l]
	}
	return joints, true
}

// greedyJoints steps forward one max panel length at a time, snapping each
// joint to the nearest stud outside every exclusion zone. The second return
// value is true when some joint could not be snapped and was forced. Every
// joint lies strictly past the previous one and strictly inside the wall.
func greedyJoints(length float64, zones []model.ExclusionZone, cfg model.PanelConfig) ([]float64, bool) {
	minStep := math.Max(cfg.MaxPanelLength, cfg.StudSpacing)
	if minStep <= positionTolerance {
		return nil, true
	}

	var joints []float64
	forced := false
	cur := 0.0
	for length-cur > cfg.MaxPanelLength+positionTolerance {
		target := cur + cfg.MaxPanelLength
		u, ok := snapToStud(target, cur, length, zones, cfg.StudSpacing)
		if !ok {
			u = target
			forced = true
		}
		if u <= cur+positionTolerance {
			u = cur + minStep
			forced = true
		}
		if u >= length-positionTolerance {
			break
		}
		joints = append(joints, u)
		cur = u
	}
	return joints, forced
}

// snapToStud looks at the studs within maxSnapSteps of target, nearest
// first (the lower stud on a tie), for a position past cur that avoids all
// zones.
func snapToStud(target, cur, length float64, zones []model.ExclusionZone, spacing float64) (float64, bool) {
	if spacing <= 0 {
		return 0, false
	}
	base := math.Floor(target/spacing+positionTolerance) * spacing
	candidates := make([]float64, 0, 2*maxSnapSteps+2)
	for k := -maxSnapSteps; k <= maxSnapSteps+1; k++ {
		candidates = append(candidates, base+float64(k)*spacing)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return math.Abs(candidates[i]-target) < math.Abs(candidates[j]-target)-positionTolerance
	})

	for _, u := range candidates {
		if u <= cur+positionTolerance || u >= length-positionTolerance {
			continue
		}
		if inAnyZone(u, zones) {
			continue
		}
		return u, true
	}
	return 0, false
}

// GetPanelBoundaries converts joints into contiguous spans covering [0, length].
func GetPanelBoundaries(joints []float64, length float64) []model.Span {
	sorted := append([]float64(nil), joints...)
	sort.Float64s(sorted)

	spans := make([]model.Span, 0, len(sorted)+1)
	prev := 0.0
	for _, j := range sorted {
		spans = append(spans, model.Span{UStart: prev, UEnd: j})
		prev = j
	}
	spans = append(spans, model.Span{UStart: prev, UEnd: length})
	return spans
}

// ValidateJoints re-checks a joint set against the panel length rules and
// returns one message per violation. An empty result means the set is valid.
func ValidateJoints(joints []float64, length float64, cfg model.PanelConfig) []string {
	var violations []string
	for _, j := range joints {
		if j <= 0 || j >= length {
			violations = append(violations, fmt.Sprintf("joint at %.3f ft lies outside the wall (0 - %.3f ft)", j, length))
		}
	}

	spans := GetPanelBoundaries(joints, length)
	for i, s := range spans {
		l := s.Length()
		if l > cfg.MaxPanelLength+positionTolerance {
			violations = append(violations, fmt.Sprintf("panel %d (%.3f - %.3f ft) is %.3f ft long, exceeding max_panel_length %.3f ft",
				i+1, s.UStart, s.UEnd, l, cfg.MaxPanelLength))
		}
		if i < len(spans)-1 && l < cfg.MinPanelLength-positionTolerance {
			violations = append(violations, fmt.Sprintf("panel %d (%.3f - %.3f ft) is %.3f ft long, below min_panel_length %.3f ft",
				i+1, s.UStart, s.UEnd, l, cfg.MinPanelLength))
		}
	}
	return violations
}
