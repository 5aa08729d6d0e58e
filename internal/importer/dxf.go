package importer

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/WallPanel/internal/model"
)

// WallDefaults supplies the attributes a DXF centerline does not carry.
type WallDefaults struct {
	Thickness float64 // ft
	Height    float64 // ft
	Scale     float64 // drawing units to feet, e.g. 1.0/12 for inch drawings
	IDPrefix  string
}

// DefaultWallDefaults returns 6" thick, 9 ft walls drawn in feet.
func DefaultWallDefaults() WallDefaults {
	return WallDefaults{Thickness: 0.5, Height: 9, Scale: 1, IDPrefix: "W"}
}

// minSegmentLength drops zero-length centerline segments (ft).
const minSegmentLength = 1e-6

// ImportDXF imports wall centerlines from a DXF file. Each LINE and each
// LWPOLYLINE segment becomes a wall numbered in drawing order; a closed
// polyline also contributes its closing segment.
func ImportDXF(path string, defaults WallDefaults) ImportResult {
	result := ImportResult{}
	if defaults.Scale <= 0 {
		defaults.Scale = 1
	}
	if defaults.IDPrefix == "" {
		defaults.IDPrefix = "W"
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	addWall := func(a, b []float64) {
		start := scaledPoint(a, defaults.Scale)
		end := scaledPoint(b, defaults.Scale)
		length := start.DistanceTo(end)
		id := fmt.Sprintf("%s%d", defaults.IDPrefix, len(result.Walls)+1)
		if length < minSegmentLength {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped zero-length segment at (%.3f, %.3f)", start.X, start.Y))
			return
		}
		result.Walls = append(result.Walls, model.Wall{
			ID:            id,
			Length:        length,
			Thickness:     defaults.Thickness,
			Height:        defaults.Height,
			BaseElevation: start.Z,
			Start:         start,
			End:           end,
		})
	}

	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			addWall(e.Start, e.End)

		case *entity.LwPolyline:
			n := len(e.Vertices)
			if n < 2 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			for i := 0; i+1 < n; i++ {
				addWall(e.Vertices[i], e.Vertices[i+1])
			}
			if e.Closed && n > 2 {
				addWall(e.Vertices[n-1], e.Vertices[0])
			}

		default:
			skipped++
		}
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}
	if len(result.Walls) == 0 {
		result.Errors = append(result.Errors, "No wall centerlines found in DXF file")
	}
	return result
}

// scaledPoint converts a DXF coordinate (2 or 3 components) to feet.
func scaledPoint(c []float64, scale float64) model.Point3D {
	var p model.Point3D
	if len(c) > 0 {
		p.X = c[0] * scale
	}
	if len(c) > 1 {
		p.Y = c[1] * scale
	}
	if len(c) > 2 {
		p.Z = c[2] * scale
	}
	return p
}
