package engine

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/WallPanel/internal/model"
)

// DecomposeAllWalls detects corners across the whole wall set once, then
// decomposes each wall with its own adjustments. Framing elements are keyed
// by wall ID; walls without an entry are decomposed without tagging.
// Assembly sequence numbers run across all walls in input order.
func (d *Decomposer) DecomposeAllWalls(walls []model.Wall, framing map[string][]model.FramingElement) []model.PanelResults {
	byWall := d.CornerAdjustmentsByWall(walls)

	results := make([]model.PanelResults, len(walls))
	for i, w := range walls {
		results[i] = d.DecomposeWallToPanels(w, framing[w.ID], byWall[w.ID])
	}
	assignAssemblySequence(results)
	return results
}

// Run decomposes the wall set, spreading walls over d.Workers goroutines
// when Workers is positive.
func (d *Decomposer) Run(ctx context.Context, walls []model.Wall, framing map[string][]model.FramingElement) ([]model.PanelResults, error) {
	if d.Workers > 0 {
		return d.DecomposeAllWallsParallel(ctx, walls, framing, d.Workers)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.DecomposeAllWalls(walls, framing), nil
}

// DecomposeAllWallsParallel is DecomposeAllWalls with the per-wall step spread
// over at most workers goroutines (unlimited when workers <= 0). Results are
// in input order and identical to the sequential path.
func (d *Decomposer) DecomposeAllWallsParallel(ctx context.Context, walls []model.Wall, framing map[string][]model.FramingElement, workers int) ([]model.PanelResults, error) {
	byWall := d.CornerAdjustmentsByWall(walls)

	results := make([]model.PanelResults, len(walls))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, w := range walls {
		i, w := i, w
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = d.DecomposeWallToPanels(w, framing[w.ID], byWall[w.ID])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	assignAssemblySequence(results)
	return results, nil
}

// CornerAdjustmentsByWall runs corner detection and resolution over the wall
// set and groups the resulting adjustments by wall ID.
func (d *Decomposer) CornerAdjustmentsByWall(walls []model.Wall) map[string][]model.CornerAdjustment {
	corners := DetectWallCorners(walls, d.CornerTolerance)
	for _, g := range GroupCorners(corners, d.CornerTolerance) {
		if g.IsMultiWay() {
			d.logger.Debug("Skipping multi-wall corner",
				zap.Strings("walls", g.WallIDs()),
				zap.Float64("x", g.Point.X),
				zap.Float64("y", g.Point.Y),
				zap.Float64("z", g.Point.Z))
		}
	}

	byWall := make(map[string][]model.CornerAdjustment)
	for _, a := range CalculateCornerAdjustments(corners, d.Config.CornerPriority, d.CornerTolerance) {
		byWall[a.WallID] = append(byWall[a.WallID], a)
	}
	return byWall
}

// assignAssemblySequence numbers panels 1..n across all walls in order.
func assignAssemblySequence(results []model.PanelResults) {
	seq := 1
	for i := range results {
		for j := range results[i].Panels {
			results[i].Panels[j].AssemblySequence = seq
			seq++
		}
	}
}
