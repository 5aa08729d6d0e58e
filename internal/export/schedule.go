package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/WallPanel/internal/model"
)

// Sheet names written by ExportSchedule.
const (
	PanelsSheet = "Panels"
	JointsSheet = "Joints"
)

var panelHeaders = []interface{}{
	"Panel ID", "Wall ID", "Index", "U Start (ft)", "U End (ft)", "Length (ft)",
	"Height (ft)", "Weight (lbs)", "Assembly Seq", "Elements",
}

var jointHeaders = []interface{}{
	"Wall ID", "U (ft)", "Type", "Left Panel", "Right Panel", "Nearby Studs (ft)",
}

// ExportSchedule writes a panel schedule workbook with one row per panel on
// the Panels sheet and one row per joint on the Joints sheet.
func ExportSchedule(path string, results []model.PanelResults) error {
	if len(results) == 0 {
		return ErrNoResults
	}

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the panel sheet.
	if err := f.SetSheetName(f.GetSheetName(0), PanelsSheet); err != nil {
		return fmt.Errorf("failed to name panel sheet: %w", err)
	}
	if _, err := f.NewSheet(JointsSheet); err != nil {
		return fmt.Errorf("failed to create joint sheet: %w", err)
	}

	panelRows := [][]interface{}{panelHeaders}
	jointRows := [][]interface{}{jointHeaders}
	for _, r := range results {
		for _, p := range r.Panels {
			panelRows = append(panelRows, []interface{}{
				p.ID, p.WallID, p.Index, p.UStart, p.UEnd, p.Length,
				p.Height, p.EstimatedWeight, p.AssemblySequence, strings.Join(p.ElementIDs, ", "),
			})
		}
		for _, j := range r.Joints {
			jointRows = append(jointRows, []interface{}{
				r.WallID, j.U, string(j.Type), j.LeftPanelID, j.RightPanelID, formatStuds(j.NearbyStuds),
			})
		}
	}

	if err := writeRows(f, PanelsSheet, panelRows); err != nil {
		return err
	}
	if err := writeRows(f, JointsSheet, jointRows); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(PanelsSheet, 1, 1, style)
		_ = f.SetRowStyle(JointsSheet, 1, 1, style)
	}

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func formatStuds(studs []float64) string {
	parts := make([]string, len(studs))
	for i, s := range studs {
		parts[i] = fmt.Sprintf("%.3f", s)
	}
	return strings.Join(parts, ", ")
}
