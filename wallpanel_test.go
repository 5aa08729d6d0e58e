package wallpanel_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wallpanel "github.com/piwi3910/WallPanel"
)

// lShapedWalls returns a 20 ft wall along +X and a 10 ft wall along +Y
// meeting at the origin.
func lShapedWalls() []wallpanel.Wall {
	return []wallpanel.Wall{
		{ID: "A", Length: 20, Thickness: 0.5, Height: 9, End: wallpanel.Point3D{X: 20}},
		{ID: "B", Length: 10, Thickness: 0.5, Height: 9, End: wallpanel.Point3D{Y: 10}},
	}
}

func TestDecomposeThroughPublicAPI(t *testing.T) {
	d, err := wallpanel.New(wallpanel.DefaultPanelConfig(), wallpanel.WithWorkers(2))
	require.NoError(t, err)

	results := d.DecomposeAllWalls(lShapedWalls(), nil)

	require.Len(t, results, 2)
	assert.InDelta(t, 20.25, results[0].AdjustedLength, 1e-12)
	assert.InDelta(t, 9.75, results[1].AdjustedLength, 1e-12)

	data, err := wallpanel.SerializeBatchResults(results)
	require.NoError(t, err)
	back, err := wallpanel.DeserializeBatchResults(data)
	require.NoError(t, err)
	if diff := cmp.Diff(results, back, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := wallpanel.DefaultPanelConfig()
	cfg.MinPanelLength = cfg.MaxPanelLength + 1

	_, err := wallpanel.New(cfg)

	var cfgErr *wallpanel.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Len(t, cfgErr.Violations, 1)
}

func TestSaveAndExportThroughPublicAPI(t *testing.T) {
	d, err := wallpanel.New(wallpanel.DefaultPanelConfig())
	require.NoError(t, err)
	results := d.DecomposeAllWalls(lShapedWalls(), nil)
	dir := t.TempDir()

	require.NoError(t, wallpanel.SaveResults(filepath.Join(dir, "results.json"), results))
	loaded, err := wallpanel.LoadResults(filepath.Join(dir, "results.json"))
	require.NoError(t, err)
	assert.Len(t, loaded, 2)

	require.NoError(t, wallpanel.ExportSchedule(filepath.Join(dir, "schedule.xlsx"), results))
	require.NoError(t, wallpanel.ExportDXF(filepath.Join(dir, "panels.dxf"), results))
}

func Example() {
	d, err := wallpanel.New(wallpanel.DefaultPanelConfig())
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, r := range d.DecomposeAllWalls(lShapedWalls(), nil) {
		fmt.Printf("%s: %.2f ft, %d panel(s)\n", r.WallID, r.AdjustedLength, r.PanelCount)
	}
	// Output:
	// A: 20.25 ft, 1 panel(s)
	// B: 9.75 ft, 1 panel(s)
}
