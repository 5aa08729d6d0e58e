// Package export writes panelization results to shop drawings, label
// sheets, spreadsheets and CAD files.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/WallPanel/internal/model"
)

// ErrNoResults is returned when an exporter is handed nothing to write.
var ErrNoResults = errors.New("no panel results to export")

// panelColor represents an RGB fill for a panel in the elevation.
type panelColor struct {
	R, G, B int
}

var panelColors = []panelColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	// The elevation takes the top part of the page, the panel table the rest.
	elevationMaxHeight = 70.0
)

// ExportPDF generates a shop drawing set: one page per wall showing the
// panel elevation, no-joint zones, joint positions and a panel table,
// followed by a summary page.
func ExportPDF(path string, results []model.PanelResults) error {
	if len(results) == 0 {
		return ErrNoResults
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, r := range results {
		pdf.AddPage()
		renderWallPage(pdf, r)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, results)

	return pdf.OutputFileAndClose(path)
}

// renderWallPage draws a single wall's panelization on the current page.
func renderWallPage(pdf *fpdf.Fpdf, r model.PanelResults) {
	contentW := pageWidth - marginLeft - marginRight

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Wall %s: %d panel(s), %.2f ft", r.WallID, r.PanelCount, r.AdjustedLength)
	pdf.CellFormat(contentW, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Original length: %.3f ft | Adjusted: %.3f ft | Joints: %d | Strategy: %s | Weight: %.0f lbs",
		r.OriginalLength, r.AdjustedLength, len(r.Joints), r.Metadata.JointStrategy, r.TotalWeight())
	pdf.CellFormat(contentW, 5, stats, "", 0, "L", false, 0, "")

	height := wallHeight(r)
	if r.AdjustedLength <= 0 || height <= 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetXY(marginLeft, drawAreaTop)
		pdf.CellFormat(contentW, 6, "Wall has no panels to draw.", "", 0, "L", false, 0, "")
		return
	}

	// Scale the elevation to fit, leaving room for dimension text on the left.
	drawW := contentW - 10
	scale := math.Min(drawW/r.AdjustedLength, elevationMaxHeight/height)
	canvasW := r.AdjustedLength * scale
	canvasH := height * scale
	offsetX := marginLeft + 10 + (drawW-canvasW)/2
	offsetY := drawAreaTop

	for i, p := range r.Panels {
		col := panelColors[i%len(panelColors)]
		px := offsetX + p.UStart*scale
		pw := p.Length * scale
		ph := p.Height * scale
		py := offsetY + canvasH - ph

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(40, 40, 40)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		fontSize := labelFontSize(pw, ph)
		pdf.SetFont("Helvetica", "B", fontSize)
		pdf.SetTextColor(255, 255, 255)
		label := p.ID
		if pdf.GetStringWidth(label) < pw-2 {
			pdf.SetXY(px, py+ph/2-3)
			pdf.CellFormat(pw, 3.5, label, "", 2, "C", false, 0, "")
			pdf.SetFont("Helvetica", "", fontSize-1)
			pdf.CellFormat(pw, 3.5, fmt.Sprintf("%.2f ft", p.Length), "", 0, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)

	drawExclusionZones(pdf, r.Metadata.ExclusionZones, scale, offsetX, offsetY, canvasH)
	drawJointMarkers(pdf, r.Joints, scale, offsetX, offsetY, canvasH)
	drawDimensionAnnotations(pdf, r.AdjustedLength, height, offsetX, offsetY, canvasW, canvasH)

	drawPanelTable(pdf, r, offsetY+canvasH+12)
}

// wallHeight returns the tallest panel height, used as the elevation height.
func wallHeight(r model.PanelResults) float64 {
	var h float64
	for _, p := range r.Panels {
		h = math.Max(h, p.Height)
	}
	return h
}

// drawExclusionZones overlays a hatch on every U range where joints are forbidden.
func drawExclusionZones(pdf *fpdf.Fpdf, zones []model.ExclusionZone, scale, offsetX, offsetY, canvasH float64) {
	for _, z := range zones {
		zx := offsetX + z.UStart*scale
		zw := z.Width() * scale
		if zw <= 0 {
			continue
		}
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.SetDashPattern([]float64{1, 1}, 0)
		pdf.Rect(zx, offsetY, zw, canvasH, "D")
		pdf.SetDashPattern([]float64{}, 0)

		drawHatchPattern(pdf, zx, offsetY, zw, canvasH)

		if zw > 12 {
			pdf.SetFont("Helvetica", "B", 6)
			pdf.SetTextColor(180, 0, 0)
			labelW := pdf.GetStringWidth("NO JOINT")
			pdf.SetXY(zx+(zw-labelW)/2, offsetY+1)
			pdf.CellFormat(labelW, 4, "NO JOINT", "", 0, "C", false, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle to indicate exclusion zones.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawJointMarkers draws a heavy vertical line and a U callout at every joint.
func drawJointMarkers(pdf *fpdf.Fpdf, joints []model.Joint, scale, offsetX, offsetY, canvasH float64) {
	pdf.SetFont("Helvetica", "", 6)
	for _, j := range joints {
		x := offsetX + j.U*scale
		if j.Type == model.JointField {
			pdf.SetDrawColor(0, 0, 0)
		} else {
			pdf.SetDrawColor(230, 120, 0)
		}
		pdf.SetLineWidth(0.8)
		pdf.Line(x, offsetY-2, x, offsetY+canvasH+2)

		label := fmt.Sprintf("%.2f'", j.U)
		w := pdf.GetStringWidth(label)
		pdf.SetXY(x-w/2, offsetY-6)
		pdf.CellFormat(w, 3, label, "", 0, "C", false, 0, "")
	}
}

// drawDimensionAnnotations adds length and height labels outside the elevation.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, length, height, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.3f ft", length)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+3)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.2f ft", height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPanelTable lists every panel of the wall below the elevation.
func drawPanelTable(pdf *fpdf.Fpdf, r model.PanelResults, y float64) {
	colWidths := []float64{30, 25, 25, 25, 25, 30, 25, 40}
	headers := []string{"Panel", "U Start", "U End", "Length", "Height", "Weight", "Seq", "Elements"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 5, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 5

	pdf.SetFont("Helvetica", "", 8)
	for i, p := range r.Panels {
		if y > pageHeight-marginBottom-10 {
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(100, 5, fmt.Sprintf("... %d more panel(s)", len(r.Panels)-i), "", 0, "L", false, 0, "")
			y += 5
			break
		}
		row := []string{
			p.ID,
			fmt.Sprintf("%.3f", p.UStart),
			fmt.Sprintf("%.3f", p.UEnd),
			fmt.Sprintf("%.3f ft", p.Length),
			fmt.Sprintf("%.2f ft", p.Height),
			fmt.Sprintf("%.0f lbs", p.EstimatedWeight),
			fmt.Sprintf("%d", p.AssemblySequence),
			fmt.Sprintf("%d", len(p.ElementIDs)),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 5, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 5
	}

	notes := append(append([]string{}, r.Metadata.Violations...), r.Metadata.Warnings...)
	if len(notes) > 0 {
		y += 3
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetTextColor(200, 0, 0)
		for _, n := range notes {
			if y > pageHeight-marginBottom {
				break
			}
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "! "+n, "", 0, "L", false, 0, "")
			y += 4
		}
		pdf.SetTextColor(0, 0, 0)
	}
}

// renderSummaryPage draws the final page with totals across all walls.
func renderSummaryPage(pdf *fpdf.Fpdf, results []model.PanelResults) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Panelization Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	cfg := results[0].Metadata.Config
	est := model.CalculateShipmentEstimate(allPanels(results), cfg)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Walls", fmt.Sprintf("%d", len(results))},
		{"Total Panels", fmt.Sprintf("%d", est.PanelCount)},
		{"Total Joints", fmt.Sprintf("%d", countJoints(results))},
		{"Total Area", fmt.Sprintf("%.1f sq ft", est.TotalArea)},
		{"Total Weight", fmt.Sprintf("%.0f lbs", est.TotalWeight)},
		{"Heaviest Panel", fmt.Sprintf("%.0f lbs", est.HeaviestPanel)},
		{"Longest Panel", fmt.Sprintf("%.2f ft", est.LongestPanel)},
		{"Truckloads (by weight)", fmt.Sprintf("%d", est.LoadsByWeight)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Wall Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{30, 35, 35, 25, 25, 40, 40}
	headers := []string{"Wall", "Original", "Adjusted", "Panels", "Joints", "Strategy", "Weight"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, r := range results {
		if y > pageHeight-marginBottom-12 {
			pdf.AddPage()
			y = marginTop
		}
		rowData := []string{
			r.WallID,
			fmt.Sprintf("%.3f ft", r.OriginalLength),
			fmt.Sprintf("%.3f ft", r.AdjustedLength),
			fmt.Sprintf("%d", r.PanelCount),
			fmt.Sprintf("%d", len(r.Joints)),
			string(r.Metadata.JointStrategy),
			fmt.Sprintf("%.0f lbs", r.TotalWeight()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if flagged := len(est.OversizePanelIDs) + len(est.OverweightIDs); flagged > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Transport Limits Exceeded", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, id := range est.OversizePanelIDs {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s is longer than %.1f ft", id, cfg.MaxTransportLength), "", 0, "L", false, 0, "")
			y += 5
		}
		for _, id := range est.OverweightIDs {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s is heavier than %.0f lbs", id, cfg.MaxTransportWeight), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by WallPanel - Wall Panelization", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// allPanels flattens the panels of every wall in result order.
func allPanels(results []model.PanelResults) []model.Panel {
	var panels []model.Panel
	for _, r := range results {
		panels = append(panels, r.Panels...)
	}
	return panels
}

// countJoints returns the total number of joints across all walls.
func countJoints(results []model.PanelResults) int {
	total := 0
	for _, r := range results {
		total += len(r.Joints)
	}
	return total
}
