package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/WallPanel/internal/model"
)

// DetectWallCorners finds wall endpoints that coincide within tolerance.
// Every endpoint is compared against every endpoint of every other wall, so
// the cost is O(E²) in the number of endpoints. A corner is recorded once for
// each of the two walls involved.
func DetectWallCorners(walls []model.Wall, tolerance float64) []model.WallCornerInfo {
	endpoints := collectEndpoints(walls)

	var corners []model.WallCornerInfo
	for i := 0; i < len(endpoints); i++ {
		for j := i + 1; j < len(endpoints); j++ {
			a, b := endpoints[i], endpoints[j]
			if a.WallID == b.WallID {
				continue
			}
			if a.Point.DistanceTo(b.Point) > tolerance {
				continue
			}
			angle := angleBetween(a.Direction, b.Direction)
			corners = append(corners, cornerInfo(a, b, angle), cornerInfo(b, a, angle))
		}
	}
	return corners
}

// collectEndpoints builds the start and end WallEndpoint of every wall.
func collectEndpoints(walls []model.Wall) []model.WallEndpoint {
	endpoints := make([]model.WallEndpoint, 0, 2*len(walls))
	for _, w := range walls {
		dir := w.Direction()
		for _, end := range []model.WallEnd{model.EndStart, model.EndEnd} {
			endpoints = append(endpoints, model.WallEndpoint{
				WallID:        w.ID,
				End:           end,
				Point:         w.Endpoint(end),
				WallLength:    w.Length,
				WallThickness: w.Thickness,
				Direction:     dir,
			})
		}
	}
	return endpoints
}

func cornerInfo(self, other model.WallEndpoint, angle float64) model.WallCornerInfo {
	return model.WallCornerInfo{
		WallID:              self.WallID,
		End:                 self.End,
		Point:               self.Point,
		ConnectingWallID:    other.WallID,
		ConnectingThickness: other.WallThickness,
		Angle:               angle,
		WallLength:          self.WallLength,
		WallThickness:       self.WallThickness,
	}
}

// angleBetween returns the angle in degrees between two direction vectors,
// using the absolute dot product so the result ignores wall orientation.
func angleBetween(a, b model.Point3D) float64 {
	dot := math.Abs(a.Normalize().Dot(b.Normalize()))
	if dot > 1 {
		dot = 1
	}
	return math.Acos(dot) * 180 / math.Pi
}

// CornerGroup is the set of corner records sharing one location.
type CornerGroup struct {
	Point   model.Point3D
	Records []model.WallCornerInfo
}

// WallIDs returns the distinct walls meeting at the group, sorted.
func (g CornerGroup) WallIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range g.Records {
		if !seen[r.WallID] {
			seen[r.WallID] = true
			ids = append(ids, r.WallID)
		}
	}
	sort.Strings(ids)
	return ids
}

// IsMultiWay reports whether more than two walls meet at the group.
// Such corners are never adjusted.
func (g CornerGroup) IsMultiWay() bool {
	return len(g.WallIDs()) > 2
}

// GroupCorners clusters corner records whose points lie within tolerance of
// a group's first point. Groups keep detection order.
func GroupCorners(corners []model.WallCornerInfo, tolerance float64) []CornerGroup {
	var groups []CornerGroup
	for _, c := range corners {
		placed := false
		for i := range groups {
			if groups[i].Point.DistanceTo(c.Point) <= tolerance {
				groups[i].Records = append(groups[i].Records, c)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, CornerGroup{Point: c.Point, Records: []model.WallCornerInfo{c}})
		}
	}
	return groups
}

// CalculateCornerAdjustments resolves each two-wall corner into an extension
// of the primary wall and a recession of the secondary wall. Corners where
// three or more walls meet produce no adjustment.
func CalculateCornerAdjustments(corners []model.WallCornerInfo, priority model.CornerPriority, tolerance float64) []model.CornerAdjustment {
	var adjustments []model.CornerAdjustment
	for _, g := range GroupCorners(corners, tolerance) {
		records := uniqueWallEnds(g.Records)
		if len(records) != 2 || records[0].WallID == records[1].WallID {
			continue
		}

		primary, secondary := choosePrimary(records[0], records[1], priority)
		adjustments = append(adjustments,
			model.CornerAdjustment{
				WallID:              primary.WallID,
				End:                 primary.End,
				Type:                model.AdjustExtend,
				Amount:              secondary.WallThickness / 2,
				ConnectingWallID:    secondary.WallID,
				ConnectingThickness: secondary.WallThickness,
			},
			model.CornerAdjustment{
				WallID:              secondary.WallID,
				End:                 secondary.End,
				Type:                model.AdjustRecede,
				Amount:              primary.WallThickness / 2,
				ConnectingWallID:    primary.WallID,
				ConnectingThickness: primary.WallThickness,
			},
		)
	}
	return adjustments
}

// uniqueWallEnds keeps the first record for each (wall, end) pair.
func uniqueWallEnds(records []model.WallCornerInfo) []model.WallCornerInfo {
	type key struct {
		wall string
		end  model.WallEnd
	}
	seen := make(map[key]bool)
	var out []model.WallCornerInfo
	for _, r := range records {
		k := key{r.WallID, r.End}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// choosePrimary picks the extending wall. Unknown or unimplemented
// priorities keep detection order.
func choosePrimary(a, b model.WallCornerInfo, priority model.CornerPriority) (primary, secondary model.WallCornerInfo) {
	switch priority {
	case model.PriorityLongerWall:
		if b.WallLength > a.WallLength || (b.WallLength == a.WallLength && b.WallID < a.WallID) {
			return b, a
		}
		return a, b
	case model.PriorityAlternate:
		if b.WallID < a.WallID {
			return b, a
		}
		return a, b
	default:
		return a, b
	}
}

// AdjustedWall is a wall after corner adjustments, with the deltas that produced it.
type AdjustedWall struct {
	Wall           model.Wall `json:"wall"`
	OriginalLength float64    `json:"original_length"`
	AdjustedLength float64    `json:"adjusted_length"`
	StartDelta     float64    `json:"start_delta"` // ft, positive = extended
	EndDelta       float64    `json:"end_delta"`   // ft, positive = extended
}

// ApplyCornerAdjustments returns a copy of wall with its matching adjustments
// applied. Moved endpoints are translated along the wall direction. When the
// start moves, the frame origin moves with it and opening U spans shift by the
// same amount so openings stay put in world space.
func ApplyCornerAdjustments(wall model.Wall, adjustments []model.CornerAdjustment) AdjustedWall {
	startDelta, endDelta := endDeltas(wall.ID, adjustments)

	out := wall
	out.Length = math.Max(0, wall.Length+startDelta+endDelta)
	dir := wall.Direction()

	if startDelta != 0 {
		shift := dir.Scale(-startDelta)
		out.Start = wall.Start.Add(shift)
		if wall.Frame.IsSet() {
			out.Frame.Origin = wall.Frame.Origin.Add(shift)
		}
		out.Openings = make([]model.Opening, len(wall.Openings))
		for i, o := range wall.Openings {
			o.UStart += startDelta
			o.UEnd += startDelta
			out.Openings[i] = o
		}
	}
	if endDelta != 0 {
		out.End = wall.End.Add(dir.Scale(endDelta))
	}

	return AdjustedWall{
		Wall:           out,
		OriginalLength: wall.Length,
		AdjustedLength: out.Length,
		StartDelta:     startDelta,
		EndDelta:       endDelta,
	}
}

// endDeltas sums the signed adjustments that apply to each end of the wall.
func endDeltas(wallID string, adjustments []model.CornerAdjustment) (start, end float64) {
	for _, a := range adjustments {
		if a.WallID != wallID {
			continue
		}
		switch a.End {
		case model.EndStart:
			start += a.SignedAmount()
		case model.EndEnd:
			end += a.SignedAmount()
		}
	}
	return start, end
}

// GetAdjustedWallLength computes the adjusted length without copying the wall.
// It always agrees with ApplyCornerAdjustments.
func GetAdjustedWallLength(wall model.Wall, adjustments []model.CornerAdjustment) float64 {
	length := wall.Length
	for _, a := range adjustments {
		if a.WallID == wall.ID && (a.End == model.EndStart || a.End == model.EndEnd) {
			length += a.SignedAmount()
		}
	}
	return math.Max(0, length)
}
