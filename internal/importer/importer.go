// Package importer reads wall schedules and framing data from CSV, Excel,
// JSON and DXF sources and normalizes them into model records. Column and
// field names are matched case-insensitively against known aliases.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/WallPanel/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Walls    []model.Wall
	Framing  map[string][]model.FramingElement
	Errors   []string
	Warnings []string
}

// scheduleAliases maps wall record keys to their accepted column headers (all lowercase).
var scheduleAliases = map[string][]string{
	"id":             {"id", "wall id", "wall_id", "wall", "name", "label", "mark"},
	"length":         {"length", "len", "wall length", "wall_length", "l"},
	"thickness":      {"thickness", "thk", "wall thickness", "wall_thickness", "width", "t"},
	"height":         {"height", "h", "wall height", "wall_height"},
	"base_elevation": {"base_elevation", "base elevation", "elevation", "elev", "level"},
	"start_x":        {"start_x", "start x", "x1", "sx"},
	"start_y":        {"start_y", "start y", "y1", "sy"},
	"start_z":        {"start_z", "start z", "z1", "sz"},
	"end_x":          {"end_x", "end x", "x2", "ex"},
	"end_y":          {"end_y", "end y", "y2", "ey"},
	"end_z":          {"end_z", "end z", "z2", "ez"},
	"openings":       {"openings", "opening", "doors/windows", "voids"},
}

// ColumnMapping maps wall record keys to their column indices.
type ColumnMapping map[string]int

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent multi-column split wins.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}

		consistent := 0
		for _, row := range records {
			if len(row) == len(records[0]) {
				consistent++
			}
		}
		if score := consistent*10 + len(records[0]); score > bestScore {
			best, bestScore = delim, score
		}
	}
	return best
}

// DetectColumns examines a header row and returns the column of every
// recognized wall field. The boolean is false when no cell matches a known
// header.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{}
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for key, aliases := range scheduleAliases {
			if _, taken := mapping[key]; taken {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					mapping[key] = i
					break
				}
			}
		}
	}
	return mapping, len(mapping) > 0
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int, ok bool) string {
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ParseOpenings parses the schedule openings column. Entries are separated
// by ';' and written as "type:start-end", e.g. "door:3-6;window:10.5-14".
// An optional "id=" prefix names the opening.
func ParseOpenings(s, wallID string) ([]model.Opening, []string) {
	var openings []model.Opening
	var problems []string
	for i, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		o := model.Opening{ID: fmt.Sprintf("%s-O%d", wallID, i+1)}
		if id, rest, found := strings.Cut(entry, "="); found {
			o.ID = strings.TrimSpace(id)
			entry = strings.TrimSpace(rest)
		}
		typ, span, found := strings.Cut(entry, ":")
		if !found {
			typ, span = "opening", entry
		}
		o.Type = strings.ToLower(strings.TrimSpace(typ))

		startStr, endStr, found := strings.Cut(span, "-")
		start, err1 := strconv.ParseFloat(strings.TrimSpace(startStr), 64)
		end, err2 := strconv.ParseFloat(strings.TrimSpace(endStr), 64)
		if !found || err1 != nil || err2 != nil || end < start {
			problems = append(problems, fmt.Sprintf("invalid opening '%s'", entry))
			continue
		}
		o.UStart, o.UEnd = start, end
		openings = append(openings, o)
	}
	return openings, problems
}

// rowRecord builds the generic wall record for one schedule row so that
// schedule rows and JSON records share NormalizeWallRecord.
func rowRecord(row []string, mapping ColumnMapping) map[string]any {
	rec := map[string]any{}
	for _, key := range []string{"id", "length", "thickness", "height", "base_elevation"} {
		idx, ok := mapping[key]
		if v := getCell(row, idx, ok); v != "" {
			rec[key] = v
		}
	}
	for _, end := range []string{"start", "end"} {
		pt := map[string]any{}
		for _, axis := range []string{"x", "y", "z"} {
			idx, ok := mapping[end+"_"+axis]
			if v := getCell(row, idx, ok); v != "" {
				pt[axis] = v
			}
		}
		if len(pt) > 0 {
			rec[end+"_point"] = pt
		}
	}
	return rec
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a wall schedule from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	result = ImportCSVFromReader(bytes.NewReader(data), delimiter)
	result.Warnings = append(warnings, result.Warnings...)
	return result
}

// ImportCSVFromReader imports a wall schedule from a CSV reader with a
// specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line")
}

// ImportExcel imports a wall schedule from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row")
}

// importFromRows is the shared import logic for both CSV and Excel data.
// The first row must be a header naming at least an id column and either a
// length column or end point columns.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}

	mapping, hasHeader := DetectColumns(rows[0])
	if !hasHeader {
		result.Errors = append(result.Errors, "Header row not found: expected columns such as ID, Length, Thickness, Height")
		return result
	}
	var missing []string
	if _, ok := mapping["id"]; !ok {
		missing = append(missing, "ID")
	}
	_, hasLength := mapping["length"]
	_, hasEndX := mapping["end_x"]
	if !hasLength && !hasEndX {
		missing = append(missing, "Length (or End X/Y)")
	}
	if len(missing) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
		return result
	}

	seen := make(map[string]bool)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		wall, warnings := NormalizeWallRecord(rowRecord(row, mapping))
		if wall.ID == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing wall ID", rowLabel))
			continue
		}
		if seen[wall.ID] {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate wall ID '%s'", rowLabel, wall.ID))
			continue
		}
		if wall.Length <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Wall '%s' has no positive length", rowLabel, wall.ID))
			continue
		}
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", rowLabel, w))
		}

		idx, ok := mapping["openings"]
		if cell := getCell(row, idx, ok); cell != "" {
			openings, problems := ParseOpenings(cell, wall.ID)
			wall.Openings = openings
			for _, p := range problems {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", rowLabel, p))
			}
		}

		seen[wall.ID] = true
		result.Walls = append(result.Walls, wall)
	}

	return result
}
