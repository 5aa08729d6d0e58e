package export

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestExportSchedule_Sheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")

	if err := ExportSchedule(path, buildTestResults()); err != nil {
		t.Fatalf("ExportSchedule returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{PanelsSheet, JointsSheet}, f.GetSheetList()); diff != "" {
		t.Errorf("sheet list mismatch (-want +got):\n%s", diff)
	}

	panelRows, err := f.GetRows(PanelsSheet)
	if err != nil {
		t.Fatalf("failed to read panel rows: %v", err)
	}
	if len(panelRows) != 4 {
		t.Fatalf("expected header + 3 panel rows, got %d", len(panelRows))
	}
	if panelRows[0][0] != "Panel ID" || panelRows[0][9] != "Elements" {
		t.Errorf("unexpected header %v", panelRows[0])
	}
	var ids []string
	for _, row := range panelRows[1:] {
		ids = append(ids, row[0])
	}
	if diff := cmp.Diff([]string{"W1-P01", "W1-P02", "W2-P01"}, ids); diff != "" {
		t.Errorf("panel order mismatch (-want +got):\n%s", diff)
	}
	if panelRows[1][1] != "W1" || panelRows[1][5] != "12" || panelRows[1][9] != "W1-S1" {
		t.Errorf("unexpected first panel row %v", panelRows[1])
	}

	jointRows, err := f.GetRows(JointsSheet)
	if err != nil {
		t.Fatalf("failed to read joint rows: %v", err)
	}
	if len(jointRows) != 2 {
		t.Fatalf("expected header + 1 joint row, got %d", len(jointRows))
	}
	want := []string{"W1", "12", "field", "W1-P01", "W1-P02", "12.000, 12.500"}
	if diff := cmp.Diff(want, jointRows[1]); diff != "" {
		t.Errorf("joint row mismatch (-want +got):\n%s", diff)
	}
}

func TestExportSchedule_EmptyResult(t *testing.T) {
	if err := ExportSchedule(filepath.Join(t.TempDir(), "x.xlsx"), nil); !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestFormatStuds(t *testing.T) {
	if got := formatStuds(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := formatStuds([]float64{1.3333333, 2}); got != "1.333, 2.000" {
		t.Errorf("unexpected %q", got)
	}
}
