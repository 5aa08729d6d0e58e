package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/WallPanel/internal/model"
)

// SerializePanelResults encodes one wall's results as indented JSON with
// stable snake_case keys.
func SerializePanelResults(r model.PanelResults) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results for wall %q: %w", r.WallID, err)
	}
	return data, nil
}

// DeserializePanelResults decodes the output of SerializePanelResults.
func DeserializePanelResults(data []byte) (model.PanelResults, error) {
	var r model.PanelResults
	if err := json.Unmarshal(data, &r); err != nil {
		return model.PanelResults{}, fmt.Errorf("failed to parse panel results: %w", err)
	}
	if err := checkResults(r); err != nil {
		return model.PanelResults{}, err
	}
	return r, nil
}

// SerializeBatchResults encodes the results of a whole wall set as a JSON array.
func SerializeBatchResults(results []model.PanelResults) ([]byte, error) {
	if results == nil {
		results = []model.PanelResults{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch results: %w", err)
	}
	return data, nil
}

// DeserializeBatchResults decodes the output of SerializeBatchResults.
func DeserializeBatchResults(data []byte) ([]model.PanelResults, error) {
	var results []model.PanelResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse batch results: %w", err)
	}
	for i, r := range results {
		if err := checkResults(r); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}
	if results == nil {
		results = []model.PanelResults{}
	}
	return results, nil
}

// SaveResults writes batch results to path, creating parent directories.
func SaveResults(path string, results []model.PanelResults) error {
	data, err := SerializeBatchResults(results)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}

// LoadResults reads batch results written by SaveResults.
func LoadResults(path string) ([]model.PanelResults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	return DeserializeBatchResults(data)
}

// checkResults rejects documents whose panel count disagrees with the panel list.
func checkResults(r model.PanelResults) error {
	if r.WallID == "" {
		return fmt.Errorf("invalid panel results: missing wall_id")
	}
	if r.PanelCount != len(r.Panels) {
		return fmt.Errorf("invalid panel results for wall %q: total_panels is %d but %d panels are listed",
			r.WallID, r.PanelCount, len(r.Panels))
	}
	return nil
}
