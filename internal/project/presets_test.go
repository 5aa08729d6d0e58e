package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/WallPanel/internal/model"
)

func customPresets() []CustomPreset {
	tall := model.Commercial()
	tall.MaxPanelHeight = 16
	light := model.Residential16OC()
	light.WeightPerSqFt = 9
	return []CustomPreset{
		{Name: "tall_commercial", Description: "16 ft storefront walls", Config: tall},
		{Name: "light_residential", Config: light},
	}
}

func TestSaveAndLoadCustomPresets(t *testing.T) {
	for _, name := range []string{"presets.json", "presets.yaml"} {
		path := filepath.Join(t.TempDir(), "sub", name)
		presets := customPresets()

		if err := SaveCustomPresets(path, presets); err != nil {
			t.Fatalf("SaveCustomPresets(%s) failed: %v", name, err)
		}
		loaded, err := LoadCustomPresets(path)
		if err != nil {
			t.Fatalf("LoadCustomPresets(%s) failed: %v", name, err)
		}
		if len(loaded) != 2 {
			t.Fatalf("expected 2 presets, got %d", len(loaded))
		}
		if loaded[0] != presets[0] || loaded[1] != presets[1] {
			t.Errorf("loaded presets differ: %+v", loaded)
		}
	}
}

func TestLoadCustomPresetsMissingFile(t *testing.T) {
	presets, err := LoadCustomPresets(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if presets == nil || len(presets) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", presets)
	}
}

func TestLoadCustomPresetsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCustomPresets(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadCustomPresetsRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")
	content := `[{"name": "broken", "config": {"max_panel_length": 0}}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCustomPresets(path); err == nil {
		t.Error("expected error for invalid preset config")
	}
}

func TestSaveCustomPresetsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.json")

	unnamed := []CustomPreset{{Name: "  ", Config: model.DefaultPanelConfig()}}
	if err := SaveCustomPresets(path, unnamed); err == nil {
		t.Error("expected error for unnamed preset")
	}

	shadow := []CustomPreset{{Name: "Commercial", Config: model.DefaultPanelConfig()}}
	if err := SaveCustomPresets(path, shadow); err == nil {
		t.Error("expected error for preset shadowing a built-in")
	}

	bad := model.DefaultPanelConfig()
	bad.StudSpacing = -1
	if err := SaveCustomPresets(path, []CustomPreset{{Name: "bad", Config: bad}}); err == nil {
		t.Error("expected error for invalid config")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("nothing should have been written")
	}
}

func TestResolvePreset(t *testing.T) {
	custom := customPresets()

	cfg, ok := ResolvePreset("residential_24oc", custom)
	if !ok || cfg != model.Residential24OC() {
		t.Errorf("expected built-in preset, got %+v (%v)", cfg, ok)
	}

	cfg, ok = ResolvePreset("Tall_Commercial", custom)
	if !ok || cfg.MaxPanelHeight != 16 {
		t.Errorf("expected custom preset, got %+v (%v)", cfg, ok)
	}

	if _, ok := ResolvePreset("unknown", custom); ok {
		t.Error("expected unknown preset to be unresolved")
	}
}

func TestExportAndImportPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.json")
	preset := customPresets()[0]

	if err := ExportPreset(path, preset); err != nil {
		t.Fatalf("ExportPreset failed: %v", err)
	}
	got, err := ImportPreset(path)
	if err != nil {
		t.Fatalf("ImportPreset failed: %v", err)
	}
	if got != preset {
		t.Errorf("expected %+v, got %+v", preset, got)
	}
}

func TestImportPresetNoName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noname.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportPreset(path); err == nil {
		t.Error("expected error for preset without a name")
	}
}
