package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/WallPanel/internal/model"
)

// PanelLabelInfo holds the data encoded into each panel label's QR code.
type PanelLabelInfo struct {
	PanelID          string  `json:"panel_id"`
	WallID           string  `json:"wall_id"`
	Index            int     `json:"index"`
	Length           float64 `json:"length_ft"`
	Height           float64 `json:"height_ft"`
	Weight           float64 `json:"weight_lbs"`
	AssemblySequence int     `json:"sequence"`
	UStart           float64 `json:"u_start"`
	UEnd             float64 `json:"u_end"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per panel, in
// assembly order of the results. Labels are laid out on a standard label
// sheet (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, results []model.PanelResults) error {
	labels := CollectLabelInfos(results)
	if len(labels) == 0 {
		return ErrNoResults
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PanelID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info PanelLabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Panel IDs are unique within a result set.
	imgName := "qr_" + info.PanelID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncateToWidth(pdf, info.PanelID, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.2f x %.2f ft, %.0f lbs", info.Length, info.Height, info.Weight)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pos := fmt.Sprintf("Wall %s @ %.2f-%.2f ft", info.WallID, info.UStart, info.UEnd)
	pdf.CellFormat(textW, 3, truncateToWidth(pdf, pos, textW), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetTextColor(150, 100, 0)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Sequence #%d", info.AssemblySequence), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// truncateToWidth shortens s with an ellipsis until it fits in w at the current font.
func truncateToWidth(pdf *fpdf.Fpdf, s string, w float64) string {
	if pdf.GetStringWidth(s) <= w {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > w {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectLabelInfos extracts one label per panel, walls in result order and
// panels in wall order.
func CollectLabelInfos(results []model.PanelResults) []PanelLabelInfo {
	var labels []PanelLabelInfo
	for _, r := range results {
		for _, p := range r.Panels {
			labels = append(labels, PanelLabelInfo{
				PanelID:          p.ID,
				WallID:           p.WallID,
				Index:            p.Index,
				Length:           p.Length,
				Height:           p.Height,
				Weight:           p.EstimatedWeight,
				AssemblySequence: p.AssemblySequence,
				UStart:           p.UStart,
				UEnd:             p.UEnd,
			})
		}
	}
	return labels
}
