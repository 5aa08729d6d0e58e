package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/WallPanel/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := map[rune]string{
		',':  "ID,Length,Height\nW1,20,9\nW2,12,9\n",
		';':  "ID;Length;Height\nW1;20;9\nW2;12;9\n",
		'\t': "ID\tLength\tHeight\nW1\t20\t9\nW2\t12\t9\n",
		'|':  "ID|Length|Height\nW1|20|9\nW2|12|9\n",
	}
	for want, data := range tests {
		if got := DetectCSVDelimiter([]byte(data)); got != want {
			t.Errorf("expected %q delimiter, got %q", want, got)
		}
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Wall ID", "Length", "Thickness", "Height", "Openings"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := map[string]int{"id": 0, "length": 1, "thickness": 2, "height": 3, "openings": 4}
	for key, idx := range want {
		if mapping[key] != idx {
			t.Errorf("expected %s at %d, got %d", key, idx, mapping[key])
		}
	}
}

func TestDetectColumns_AliasesAndCase(t *testing.T) {
	row := []string{"MARK", " x1 ", "Y1", "X2", "y2", "Thk", "H"}
	mapping, isHeader := DetectColumns(row)
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping["id"] != 0 || mapping["start_x"] != 1 || mapping["end_y"] != 4 || mapping["thickness"] != 5 || mapping["height"] != 6 {
		t.Errorf("unexpected mapping %v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	if _, isHeader := DetectColumns([]string{"W1", "20", "9"}); isHeader {
		t.Error("data row should not be detected as header")
	}
}

// ─── ParseOpenings Tests ───────────────────────────────────

func TestParseOpenings(t *testing.T) {
	openings, problems := ParseOpenings("door:3-6; Window:10.5-14 ;D9=door:20-23", "W1")
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if len(openings) != 3 {
		t.Fatalf("expected 3 openings, got %d", len(openings))
	}
	if openings[0] != (model.Opening{ID: "W1-O1", Type: "door", UStart: 3, UEnd: 6}) {
		t.Errorf("unexpected first opening %+v", openings[0])
	}
	if openings[1].Type != "window" || openings[1].UStart != 10.5 || openings[1].UEnd != 14 {
		t.Errorf("unexpected second opening %+v", openings[1])
	}
	if openings[2].ID != "D9" {
		t.Errorf("expected named opening D9, got %s", openings[2].ID)
	}
}

func TestParseOpenings_Invalid(t *testing.T) {
	openings, problems := ParseOpenings("door:6-3;window;vent:a-b;4-5", "W1")
	if len(openings) != 1 || openings[0].Type != "opening" {
		t.Errorf("expected only the untyped 4-5 opening, got %+v", openings)
	}
	if len(problems) != 3 {
		t.Errorf("expected 3 problems, got %v", problems)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestImportCSV_LengthSchedule(t *testing.T) {
	path := writeTempFile(t, "walls.csv",
		"ID,Length,Thickness,Height,Openings\n"+
			"W1,50,0.5,9,door:10-13;window:30-34\n"+
			"W2,20,0.5,9,\n"+
			"\n")

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Walls) != 2 {
		t.Fatalf("expected 2 walls, got %d", len(result.Walls))
	}
	w1 := result.Walls[0]
	if w1.ID != "W1" || w1.Length != 50 || w1.Thickness != 0.5 || w1.Height != 9 {
		t.Errorf("unexpected wall %+v", w1)
	}
	if w1.End != (model.Point3D{X: 50}) {
		t.Errorf("expected end derived along +X, got %+v", w1.End)
	}
	if len(w1.Openings) != 2 {
		t.Errorf("expected 2 openings, got %d", len(w1.Openings))
	}
	if len(result.Walls[1].Openings) != 0 {
		t.Errorf("expected no openings on W2")
	}
}

func TestImportCSV_EndpointSchedule(t *testing.T) {
	path := writeTempFile(t, "walls.csv",
		"Wall;Start X;Start Y;End X;End Y;Thickness;Height\n"+
			"A;0;0;20;0;0.5;9\n"+
			"B;0;0;0;10;0.5;9\n")

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Walls) != 2 {
		t.Fatalf("expected 2 walls, got %d", len(result.Walls))
	}
	if result.Walls[0].Length != 20 || result.Walls[1].Length != 10 {
		t.Errorf("expected lengths derived from endpoints, got %f and %f", result.Walls[0].Length, result.Walls[1].Length)
	}
	if result.Walls[1].End != (model.Point3D{Y: 10}) {
		t.Errorf("unexpected end point %+v", result.Walls[1].End)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected semicolon warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_RowErrors(t *testing.T) {
	path := writeTempFile(t, "walls.csv",
		"ID,Length,Height\n"+
			"W1,20,9\n"+
			",12,9\n"+
			"W1,14,9\n"+
			"W3,abc,9\n"+
			"W4,-5,9\n")

	result := ImportCSV(path)

	if len(result.Walls) != 1 {
		t.Errorf("expected 1 wall, got %d", len(result.Walls))
	}
	if len(result.Errors) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Line 3") || !strings.Contains(result.Errors[0], "Missing wall ID") {
		t.Errorf("unexpected error: %s", result.Errors[0])
	}
	if !strings.Contains(result.Errors[1], "Duplicate") {
		t.Errorf("unexpected error: %s", result.Errors[1])
	}
}

func TestImportCSV_MissingRequiredColumns(t *testing.T) {
	path := writeTempFile(t, "walls.csv", "Height,Thickness\n9,0.5\n")

	result := ImportCSV(path)

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Required columns") {
		t.Errorf("expected required column error, got %v", result.Errors)
	}
}

func TestImportCSV_NoHeader(t *testing.T) {
	path := writeTempFile(t, "walls.csv", "W1,20,9\n")

	result := ImportCSV(path)

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Header row not found") {
		t.Errorf("expected header error, got %v", result.Errors)
	}
}

func TestImportCSV_EmptyAndMissingFile(t *testing.T) {
	result := ImportCSV(writeTempFile(t, "empty.csv", "  \n"))
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected empty file error, got %v", result.Errors)
	}

	result = ImportCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Cannot open file") {
		t.Errorf("expected open error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("ID|Length\nW1|12.5\n"), '|')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Walls) != 1 || result.Walls[0].Length != 12.5 {
		t.Errorf("unexpected walls %+v", result.Walls)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "walls.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to create cell reference: %v", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("failed to set row: %v", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Wall ID", "Length", "Thickness", "Height", "Elevation", "Openings"},
		{"N1", 30.5, 0.5, 9, 10, "window:4-8"},
		{"N2", 19.5, 0.5, 9, 10, ""},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Walls) != 2 {
		t.Fatalf("expected 2 walls, got %d", len(result.Walls))
	}
	w := result.Walls[0]
	if w.ID != "N1" || w.Length != 30.5 || w.BaseElevation != 10 {
		t.Errorf("unexpected wall %+v", w)
	}
	if len(w.Openings) != 1 || w.Openings[0].UEnd != 8 {
		t.Errorf("unexpected openings %+v", w.Openings)
	}
}

func TestImportExcel_InvalidFile(t *testing.T) {
	path := writeTempFile(t, "bad.xlsx", "not an excel file")

	result := ImportExcel(path)

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Cannot open Excel file") {
		t.Errorf("expected open error, got %v", result.Errors)
	}
}
