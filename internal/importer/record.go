package importer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/WallPanel/internal/model"
)

// Accepted keys for each canonical wall field, in lookup order.
var (
	wallIDKeys        = []string{"id", "wall_id", "name"}
	wallLengthKeys    = []string{"length", "wall_length"}
	wallThicknessKeys = []string{"thickness", "wall_thickness", "width"}
	wallHeightKeys    = []string{"height", "wall_height"}
	wallBaseKeys      = []string{"base_elevation", "elevation"}
	wallStartKeys     = []string{"start_point", "start"}
	wallEndKeys       = []string{"end_point", "end"}
	wallFrameKeys     = []string{"local_frame", "frame"}
	wallOpeningKeys   = []string{"openings"}

	frameOriginKeys = []string{"origin"}
	frameUKeys      = []string{"u_axis", "x_axis", "length_direction"}
	frameVKeys      = []string{"v_axis", "z_axis", "up"}
	frameWKeys      = []string{"w_axis", "y_axis", "thickness_direction"}

	openingIDKeys    = []string{"id", "opening_id", "name"}
	openingTypeKeys  = []string{"type", "opening_type"}
	openingStartKeys = []string{"u_start", "start"}
	openingEndKeys   = []string{"u_end", "end"}

	framingIDKeys   = []string{"id", "element_id", "name"}
	framingTypeKeys = []string{"type", "element_type", "member_type"}
	framingUKeys    = []string{"u", "u_coord", "u_position", "position"}
	framingWallKeys = []string{"wall_id", "wall"}
)

// lookup returns the first present value among keys, matching case-insensitively.
func lookup(rec map[string]any, keys ...string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, k, true
		}
	}
	// Alias order wins, then sorted record keys, so a record holding keys
	// that differ only by case always resolves the same way.
	names := make([]string, 0, len(rec))
	for k, v := range rec {
		if v != nil {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	for _, want := range keys {
		for _, k := range names {
			if strings.EqualFold(strings.TrimSpace(k), want) {
				return rec[k], k, true
			}
		}
	}
	return nil, "", false
}

// stringField reads a string-like value. Numbers are formatted without a trailing ".0".
func stringField(rec map[string]any, keys ...string) string {
	v, _, ok := lookup(rec, keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case fmt.Stringer:
		return strings.TrimSpace(s.String())
	default:
		if f, ok := model.ToFloat(v); ok {
			return fmt.Sprintf("%g", f)
		}
		return fmt.Sprintf("%v", v)
	}
}

// floatField reads a numeric value. A present but unparseable value yields
// zero and a warning.
func floatField(rec map[string]any, label string, warnings *[]string, keys ...string) (float64, bool) {
	v, key, ok := lookup(rec, keys...)
	if !ok {
		return 0, false
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return 0, false
	}
	f, ok := model.ToFloat(v)
	if !ok {
		*warnings = append(*warnings, fmt.Sprintf("%s: invalid %s %v, using 0", label, key, v))
		return 0, false
	}
	return f, true
}

// parsePoint accepts [x, y] / [x, y, z] arrays and {x, y, z} objects.
func parsePoint(v any) (model.Point3D, bool) {
	switch p := v.(type) {
	case model.Point3D:
		return p, true
	case []float64:
		return pointFromSlice(len(p), func(i int) (float64, bool) { return p[i], true })
	case []any:
		return pointFromSlice(len(p), func(i int) (float64, bool) { return model.ToFloat(p[i]) })
	case map[string]any:
		var pt model.Point3D
		var ok bool
		for _, axis := range []struct {
			key string
			dst *float64
		}{{"x", &pt.X}, {"y", &pt.Y}, {"z", &pt.Z}} {
			raw, _, present := lookup(p, axis.key)
			if !present {
				continue
			}
			f, valid := model.ToFloat(raw)
			if !valid {
				return model.Point3D{}, false
			}
			*axis.dst = f
			ok = true
		}
		return pt, ok
	default:
		return model.Point3D{}, false
	}
}

func pointFromSlice(n int, at func(int) (float64, bool)) (model.Point3D, bool) {
	if n < 2 || n > 3 {
		return model.Point3D{}, false
	}
	coords := [3]float64{}
	for i := 0; i < n; i++ {
		f, ok := at(i)
		if !ok {
			return model.Point3D{}, false
		}
		coords[i] = f
	}
	return model.Point3D{X: coords[0], Y: coords[1], Z: coords[2]}, true
}

// pointField reads a point, warning when the value is present but malformed.
func pointField(rec map[string]any, label string, warnings *[]string, keys ...string) (model.Point3D, bool) {
	v, key, ok := lookup(rec, keys...)
	if !ok {
		return model.Point3D{}, false
	}
	p, ok := parsePoint(v)
	if !ok {
		*warnings = append(*warnings, fmt.Sprintf("%s: invalid %s %v, using origin", label, key, v))
		return model.Point3D{}, false
	}
	return p, true
}

func asRecord(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// NormalizeWallRecord maps an external wall record onto model.Wall. Field
// aliases are resolved, points may be arrays or objects, and a missing
// length is derived from the endpoints. Malformed values fall back to zero
// or identity defaults and are reported as warnings.
func NormalizeWallRecord(rec map[string]any) (model.Wall, []string) {
	var warnings []string
	w := model.Wall{ID: stringField(rec, wallIDKeys...)}
	label := "wall"
	if w.ID != "" {
		label = fmt.Sprintf("wall %s", w.ID)
	} else {
		warnings = append(warnings, "wall record has no id")
	}

	length, hasLength := floatField(rec, label, &warnings, wallLengthKeys...)
	w.Thickness, _ = floatField(rec, label, &warnings, wallThicknessKeys...)
	w.Height, _ = floatField(rec, label, &warnings, wallHeightKeys...)
	w.BaseElevation, _ = floatField(rec, label, &warnings, wallBaseKeys...)

	start, hasStart := pointField(rec, label, &warnings, wallStartKeys...)
	end, hasEnd := pointField(rec, label, &warnings, wallEndKeys...)
	w.Start = start
	w.End = end

	if raw, key, ok := lookup(rec, wallFrameKeys...); ok {
		frameRec, isRecord := asRecord(raw)
		if isRecord {
			w.Frame = normalizeFrame(frameRec, label, &warnings)
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: invalid %s, ignoring", label, key))
		}
	}

	switch {
	case hasLength && length < 0:
		warnings = append(warnings, fmt.Sprintf("%s: negative length %g, using 0", label, length))
		length = 0
	case !hasLength && hasEnd:
		length = start.DistanceTo(end)
	case !hasLength:
		warnings = append(warnings, fmt.Sprintf("%s: no length or end point", label))
	}
	w.Length = length

	if !hasEnd && length > 0 {
		w.End = w.Start.Add(w.Direction().Scale(length))
	}
	if !hasStart && !hasEnd && w.Frame.IsSet() {
		w.Start = w.Frame.Origin
		w.End = w.Start.Add(w.Direction().Scale(length))
	}

	if raw, _, ok := lookup(rec, wallOpeningKeys...); ok {
		w.Openings = normalizeOpenings(raw, w.ID, label, &warnings)
	}

	return w, warnings
}

func normalizeFrame(rec map[string]any, label string, warnings *[]string) model.LocalFrame {
	var f model.LocalFrame
	f.Origin, _ = pointField(rec, label+" frame", warnings, frameOriginKeys...)
	f.UAxis, _ = pointField(rec, label+" frame", warnings, frameUKeys...)
	f.VAxis, _ = pointField(rec, label+" frame", warnings, frameVKeys...)
	f.WAxis, _ = pointField(rec, label+" frame", warnings, frameWKeys...)
	return f
}

func normalizeOpenings(raw any, wallID, label string, warnings *[]string) []model.Opening {
	items, ok := raw.([]any)
	if !ok {
		*warnings = append(*warnings, fmt.Sprintf("%s: openings must be a list", label))
		return nil
	}

	var openings []model.Opening
	for i, item := range items {
		rec, ok := asRecord(item)
		if !ok {
			*warnings = append(*warnings, fmt.Sprintf("%s: opening %d is not an object, skipping", label, i+1))
			continue
		}
		o := model.Opening{
			ID:   stringField(rec, openingIDKeys...),
			Type: strings.ToLower(stringField(rec, openingTypeKeys...)),
		}
		if o.ID == "" {
			o.ID = fmt.Sprintf("%s-O%d", wallID, i+1)
		}
		olabel := fmt.Sprintf("%s opening %s", label, o.ID)
		o.UStart, _ = floatField(rec, olabel, warnings, openingStartKeys...)
		end, hasEnd := floatField(rec, olabel, warnings, openingEndKeys...)
		if !hasEnd {
			if width, ok := floatField(rec, olabel, warnings, "width"); ok {
				end, hasEnd = o.UStart+width, true
			}
		}
		if !hasEnd || end < o.UStart {
			*warnings = append(*warnings, fmt.Sprintf("%s: no valid end, skipping", olabel))
			continue
		}
		o.UEnd = end
		openings = append(openings, o)
	}
	return openings
}

// NormalizeFramingRecord maps an external framing record onto
// model.FramingElement and returns the wall it belongs to, if given.
func NormalizeFramingRecord(rec map[string]any) (model.FramingElement, string, []string) {
	var warnings []string
	e := model.FramingElement{
		ID:   stringField(rec, framingIDKeys...),
		Type: strings.ToLower(stringField(rec, framingTypeKeys...)),
	}
	label := "framing element"
	if e.ID == "" {
		warnings = append(warnings, "framing record has no id")
	} else {
		label = fmt.Sprintf("framing element %s", e.ID)
	}
	u, ok := floatField(rec, label, &warnings, framingUKeys...)
	if !ok {
		warnings = append(warnings, fmt.Sprintf("%s: no u position, using 0", label))
	}
	e.U = u
	return e, stringField(rec, framingWallKeys...), warnings
}

// decodeRecords accepts either a JSON array of objects or an object holding
// such an array under key.
func decodeRecords(data []byte, key string) ([]any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse JSON: %w", err)
	}
	switch d := doc.(type) {
	case []any:
		return d, nil
	case map[string]any:
		if items, ok := d[key].([]any); ok {
			return items, nil
		}
		return nil, fmt.Errorf("JSON object has no %q list", key)
	default:
		return nil, fmt.Errorf("expected a JSON array or object, got %T", doc)
	}
}

// ParseWallsJSON decodes wall records from JSON. Walls without an id are
// numbered W1, W2, ... in input order.
func ParseWallsJSON(data []byte) ImportResult {
	result := ImportResult{}
	items, err := decodeRecords(data, "walls")
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	seen := make(map[string]bool)
	for i, item := range items {
		rec, ok := asRecord(item)
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("Record %d: not an object", i+1))
			continue
		}
		wall, warnings := NormalizeWallRecord(rec)
		if wall.ID == "" {
			wall.ID = fmt.Sprintf("W%d", i+1)
		}
		if seen[wall.ID] {
			result.Errors = append(result.Errors, fmt.Sprintf("Record %d: duplicate wall id %s", i+1, wall.ID))
			continue
		}
		seen[wall.ID] = true
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Record %d: %s", i+1, w))
		}
		result.Walls = append(result.Walls, wall)
	}
	return result
}

// ParseFramingJSON decodes framing records. The input is either an object
// keyed by wall id whose values are element lists, or a flat list of
// elements each carrying a wall_id.
func ParseFramingJSON(data []byte) ImportResult {
	result := ImportResult{Framing: map[string][]model.FramingElement{}}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot parse JSON: %v", err))
		return result
	}

	add := func(wallID string, item any, label string) {
		rec, ok := asRecord(item)
		if !ok {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: not an object", label))
			return
		}
		e, recWall, warnings := NormalizeFramingRecord(rec)
		if wallID == "" {
			wallID = recWall
		}
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", label, w))
		}
		if wallID == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: no wall_id", label))
			return
		}
		result.Framing[wallID] = append(result.Framing[wallID], e)
	}

	switch d := doc.(type) {
	case []any:
		for i, item := range d {
			add("", item, fmt.Sprintf("Record %d", i+1))
		}
	case map[string]any:
		for wallID, raw := range d {
			items, ok := raw.([]any)
			if !ok {
				result.Errors = append(result.Errors, fmt.Sprintf("wall %s: framing must be a list", wallID))
				continue
			}
			for i, item := range items {
				add(wallID, item, fmt.Sprintf("wall %s element %d", wallID, i+1))
			}
		}
	default:
		result.Errors = append(result.Errors, fmt.Sprintf("expected a JSON array or object, got %T", doc))
	}
	return result
}
