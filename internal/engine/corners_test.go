package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/WallPanel/internal/model"
)

// wallBetween builds a wall between two points with a derived length.
func wallBetween(id string, start, end model.Point3D, thickness float64) model.Wall {
	return model.Wall{
		ID:        id,
		Length:    start.DistanceTo(end),
		Thickness: thickness,
		Height:    9,
		Start:     start,
		End:       end,
	}
}

func scenarioCWalls() []model.Wall {
	return []model.Wall{
		wallBetween("A", model.Point3D{}, model.Point3D{X: 20}, 0.5),
		wallBetween("B", model.Point3D{}, model.Point3D{Y: 10}, 0.5),
	}
}

// rectangleWalls returns four walls running counter-clockwise around a 30 x 20 rectangle.
func rectangleWalls() []model.Wall {
	return []model.Wall{
		wallBetween("S", model.Point3D{}, model.Point3D{X: 30}, 0.5),
		wallBetween("E", model.Point3D{X: 30}, model.Point3D{X: 30, Y: 20}, 0.5),
		wallBetween("N", model.Point3D{X: 30, Y: 20}, model.Point3D{Y: 20}, 0.5),
		wallBetween("W", model.Point3D{Y: 20}, model.Point3D{}, 0.5),
	}
}

func findAdjustment(t *testing.T, adjs []model.CornerAdjustment, wallID string, end model.WallEnd) model.CornerAdjustment {
	t.Helper()
	for _, a := range adjs {
		if a.WallID == wallID && a.End == end {
			return a
		}
	}
	t.Fatalf("no adjustment for wall %s at %s in %+v", wallID, end, adjs)
	return model.CornerAdjustment{}
}

func TestDetectWallCorners_ScenarioC(t *testing.T) {
	corners := DetectWallCorners(scenarioCWalls(), 0.01)

	require.Len(t, corners, 2)
	assert.Equal(t, "A", corners[0].WallID)
	assert.Equal(t, model.EndStart, corners[0].End)
	assert.Equal(t, "B", corners[0].ConnectingWallID)
	assert.Equal(t, 0.5, corners[0].ConnectingThickness)
	assert.InDelta(t, 90.0, corners[0].Angle, 1e-9)
	assert.Equal(t, 20.0, corners[0].WallLength)

	assert.Equal(t, "B", corners[1].WallID)
	assert.Equal(t, "A", corners[1].ConnectingWallID)
}

func TestDetectWallCorners_Tolerance(t *testing.T) {
	walls := []model.Wall{
		wallBetween("A", model.Point3D{}, model.Point3D{X: 20}, 0.5),
		wallBetween("B", model.Point3D{X: 0.005}, model.Point3D{X: 0.005, Y: 10}, 0.5),
	}

	assert.Len(t, DetectWallCorners(walls, 0.01), 2)
	assert.Empty(t, DetectWallCorners(walls, 0.001))
}

func TestDetectWallCorners_IgnoresSameWall(t *testing.T) {
	// A zero-length wall has coincident ends but is not a corner.
	walls := []model.Wall{wallBetween("A", model.Point3D{X: 5}, model.Point3D{X: 5}, 0.5)}
	assert.Empty(t, DetectWallCorners(walls, 0.01))
}

func TestCalculateCornerAdjustments_ScenarioC(t *testing.T) {
	corners := DetectWallCorners(scenarioCWalls(), 0.01)
	adjs := CalculateCornerAdjustments(corners, model.PriorityLongerWall, 0.01)

	require.Len(t, adjs, 2)

	a := findAdjustment(t, adjs, "A", model.EndStart)
	assert.Equal(t, model.AdjustExtend, a.Type)
	assert.Equal(t, 0.25, a.Amount)
	assert.Equal(t, "B", a.ConnectingWallID)

	b := findAdjustment(t, adjs, "B", model.EndStart)
	assert.Equal(t, model.AdjustRecede, b.Type)
	assert.Equal(t, 0.25, b.Amount)
	assert.Equal(t, "A", b.ConnectingWallID)
}

func TestCalculateCornerAdjustments_HalfThicknessRule(t *testing.T) {
	walls := []model.Wall{
		wallBetween("long", model.Point3D{}, model.Point3D{X: 30}, 0.75),
		wallBetween("short", model.Point3D{}, model.Point3D{Y: 8}, 0.5),
	}
	adjs := CalculateCornerAdjustments(DetectWallCorners(walls, 0.01), model.PriorityLongerWall, 0.01)

	extend := findAdjustment(t, adjs, "long", model.EndStart)
	recede := findAdjustment(t, adjs, "short", model.EndStart)
	assert.Equal(t, model.AdjustExtend, extend.Type)
	assert.Equal(t, 0.5/2, extend.Amount, "primary extends by half the secondary thickness")
	assert.Equal(t, model.AdjustRecede, recede.Type)
	assert.Equal(t, 0.75/2, recede.Amount, "secondary recedes by half the primary thickness")
}

func TestCalculateCornerAdjustments_AlternateUsesLowerID(t *testing.T) {
	walls := []model.Wall{
		wallBetween("B", model.Point3D{}, model.Point3D{X: 30}, 0.5),
		wallBetween("A", model.Point3D{}, model.Point3D{Y: 8}, 0.5),
	}
	corners := DetectWallCorners(walls, 0.01)

	adjs := CalculateCornerAdjustments(corners, model.PriorityAlternate, 0.01)
	assert.Equal(t, model.AdjustExtend, findAdjustment(t, adjs, "A", model.EndStart).Type)
	assert.Equal(t, model.AdjustRecede, findAdjustment(t, adjs, "B", model.EndStart).Type)

	adjs = CalculateCornerAdjustments(corners, model.PriorityLongerWall, 0.01)
	assert.Equal(t, model.AdjustExtend, findAdjustment(t, adjs, "B", model.EndStart).Type)
}

func TestCalculateCornerAdjustments_SpecifiedKeepsDetectionOrder(t *testing.T) {
	walls := []model.Wall{
		wallBetween("Z", model.Point3D{}, model.Point3D{X: 5}, 0.5),
		wallBetween("A", model.Point3D{}, model.Point3D{Y: 30}, 0.5),
	}
	adjs := CalculateCornerAdjustments(DetectWallCorners(walls, 0.01), model.PrioritySpecified, 0.01)

	assert.Equal(t, model.AdjustExtend, findAdjustment(t, adjs, "Z", model.EndStart).Type)
	assert.Equal(t, model.AdjustRecede, findAdjustment(t, adjs, "A", model.EndStart).Type)
}

func TestCalculateCornerAdjustments_SkipsMultiWayCorners(t *testing.T) {
	walls := []model.Wall{
		wallBetween("A", model.Point3D{}, model.Point3D{X: 20}, 0.5),
		wallBetween("B", model.Point3D{}, model.Point3D{Y: 10}, 0.5),
		wallBetween("C", model.Point3D{}, model.Point3D{X: -12}, 0.5),
	}
	corners := DetectWallCorners(walls, 0.01)
	require.Len(t, corners, 6)

	groups := GroupCorners(corners, 0.01)
	require.Len(t, groups, 1)
	assert.True(t, groups[0].IsMultiWay())
	assert.Equal(t, []string{"A", "B", "C"}, groups[0].WallIDs())

	assert.Empty(t, CalculateCornerAdjustments(corners, model.PriorityLongerWall, 0.01))
}

func TestCalculateCornerAdjustments_Rectangle(t *testing.T) {
	walls := rectangleWalls()
	adjs := CalculateCornerAdjustments(DetectWallCorners(walls, 0.01), model.PriorityLongerWall, 0.01)

	require.Len(t, adjs, 8)
	for _, id := range []string{"S", "N"} {
		assert.Equal(t, model.AdjustExtend, findAdjustment(t, adjs, id, model.EndStart).Type)
		assert.Equal(t, model.AdjustExtend, findAdjustment(t, adjs, id, model.EndEnd).Type)
	}
	for _, id := range []string{"E", "W"} {
		assert.Equal(t, model.AdjustRecede, findAdjustment(t, adjs, id, model.EndStart).Type)
		assert.Equal(t, model.AdjustRecede, findAdjustment(t, adjs, id, model.EndEnd).Type)
	}

	for _, w := range walls {
		got := ApplyCornerAdjustments(w, adjs)
		if w.ID == "S" || w.ID == "N" {
			assert.InDelta(t, 30.5, got.AdjustedLength, 1e-9)
		} else {
			assert.InDelta(t, 19.5, got.AdjustedLength, 1e-9)
		}
	}
}

func TestApplyCornerAdjustments_ScenarioC(t *testing.T) {
	walls := scenarioCWalls()
	adjs := CalculateCornerAdjustments(DetectWallCorners(walls, 0.01), model.PriorityLongerWall, 0.01)

	a := ApplyCornerAdjustments(walls[0], adjs)
	assert.Equal(t, 20.0, a.OriginalLength)
	assert.InDelta(t, 20.25, a.AdjustedLength, 1e-12)
	assert.Equal(t, 0.25, a.StartDelta)
	assert.Equal(t, 0.0, a.EndDelta)
	assert.InDelta(t, -0.25, a.Wall.Start.X, 1e-12)
	assert.Equal(t, model.Point3D{X: 20}, a.Wall.End, "untouched end does not move")

	b := ApplyCornerAdjustments(walls[1], adjs)
	assert.InDelta(t, 9.75, b.AdjustedLength, 1e-12)
	assert.Equal(t, -0.25, b.StartDelta)
	assert.InDelta(t, 0.25, b.Wall.Start.Y, 1e-12)
	assert.InDelta(t, 0.0, b.Wall.Start.X, 1e-12)
}

func TestApplyCornerAdjustments_ShiftsOpeningsAndFrame(t *testing.T) {
	wall := straightWall("A", 20, model.Opening{ID: "d", UStart: 5, UEnd: 8})
	wall.Frame = model.LocalFrame{UAxis: model.Point3D{X: 1}, VAxis: model.Point3D{Z: 1}}
	adjs := []model.CornerAdjustment{
		{WallID: "A", End: model.EndStart, Type: model.AdjustExtend, Amount: 0.25},
		{WallID: "other", End: model.EndStart, Type: model.AdjustExtend, Amount: 9},
	}

	got := ApplyCornerAdjustments(wall, adjs)

	assert.Equal(t, 5.25, got.Wall.Openings[0].UStart)
	assert.Equal(t, 8.25, got.Wall.Openings[0].UEnd)
	assert.Equal(t, -0.25, got.Wall.Frame.Origin.X)
	assert.Equal(t, 5.0, wall.Openings[0].UStart, "input wall must not be mutated")
}

func TestApplyCornerAdjustments_NoAdjustments(t *testing.T) {
	wall := straightWall("A", 20)
	got := ApplyCornerAdjustments(wall, nil)

	assert.Equal(t, wall, got.Wall)
	assert.Equal(t, 20.0, got.AdjustedLength)
	assert.Zero(t, got.StartDelta)
	assert.Zero(t, got.EndDelta)
}

func TestApplyAndGetAdjustedLengthAgree(t *testing.T) {
	cases := [][]model.CornerAdjustment{
		nil,
		{{WallID: "A", End: model.EndStart, Type: model.AdjustExtend, Amount: 0.25}},
		{{WallID: "A", End: model.EndEnd, Type: model.AdjustRecede, Amount: 0.1875}},
		{
			{WallID: "A", End: model.EndStart, Type: model.AdjustRecede, Amount: 0.3},
			{WallID: "A", End: model.EndEnd, Type: model.AdjustExtend, Amount: 0.45},
			{WallID: "B", End: model.EndEnd, Type: model.AdjustExtend, Amount: 5},
		},
		{
			{WallID: "A", End: model.EndStart, Type: model.AdjustExtend, Amount: 0.25},
			{WallID: "A", End: model.EndStart, Type: model.AdjustExtend, Amount: 0.25},
		},
	}

	wall := straightWall("A", 17.3)
	for i, adjs := range cases {
		applied := ApplyCornerAdjustments(wall, adjs)
		assert.InDelta(t, applied.AdjustedLength, GetAdjustedWallLength(wall, adjs), 1e-9, "case %d", i)
		assert.InDelta(t, applied.AdjustedLength, applied.Wall.Start.DistanceTo(applied.Wall.End), 1e-9, "case %d", i)
	}

	for _, w := range rectangleWalls() {
		adjs := CalculateCornerAdjustments(DetectWallCorners(rectangleWalls(), 0.01), model.PriorityLongerWall, 0.01)
		assert.InDelta(t, ApplyCornerAdjustments(w, adjs).AdjustedLength, GetAdjustedWallLength(w, adjs), 1e-9)
	}
}
