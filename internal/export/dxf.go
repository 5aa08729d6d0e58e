package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/WallPanel/internal/model"
)

// DXF layer names written by ExportDXF.
const (
	PanelsLayer = "PANELS"
	JointsLayer = "JOINTS"
)

// ExportDXF writes every panel outline in world coordinates on the PANELS
// layer (four LINE entities per panel) and one vertical LINE per joint on
// the JOINTS layer.
func ExportDXF(path string, results []model.PanelResults) error {
	if len(results) == 0 {
		return ErrNoResults
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(PanelsLayer, color.Cyan, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add %s layer: %w", PanelsLayer, err)
	}
	for _, r := range results {
		for _, p := range r.Panels {
			if err := panelOutline(d, p); err != nil {
				return fmt.Errorf("failed to draw panel %s: %w", p.ID, err)
			}
		}
	}

	if _, err := d.AddLayer(JointsLayer, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add %s layer: %w", JointsLayer, err)
	}
	for _, r := range results {
		panels := make(map[string]model.Panel, len(r.Panels))
		for _, p := range r.Panels {
			panels[p.ID] = p
		}
		for _, j := range r.Joints {
			left, ok := panels[j.LeftPanelID]
			if !ok {
				continue
			}
			// The joint runs up the end edge of its left panel.
			bottom, top := left.Corners[1], left.Corners[2]
			if _, err := d.Line(bottom.X, bottom.Y, bottom.Z, top.X, top.Y, top.Z); err != nil {
				return fmt.Errorf("failed to draw joint at %.3f on wall %s: %w", j.U, r.WallID, err)
			}
		}
	}

	return d.SaveAs(path)
}

// panelOutline draws the closed loop through a panel's four corners.
func panelOutline(d *drawing.Drawing, p model.Panel) error {
	for i := range p.Corners {
		a := p.Corners[i]
		b := p.Corners[(i+1)%len(p.Corners)]
		if _, err := d.Line(a.X, a.Y, a.Z, b.X, b.Y, b.Z); err != nil {
			return err
		}
	}
	return nil
}
