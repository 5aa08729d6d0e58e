package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/WallPanel/internal/model"
)

// BatchVersion is the document format version written by SaveBatch.
const BatchVersion = "1.0.0"

// BatchDocument bundles one panelization run: the config, the input walls
// and framing, and the results produced from them.
type BatchDocument struct {
	ID        string                            `json:"batch_id"`
	Version   string                            `json:"version"`
	CreatedAt string                            `json:"created_at"`
	Config    model.PanelConfig                 `json:"config"`
	Walls     []model.Wall                      `json:"walls"`
	Framing   map[string][]model.FramingElement `json:"framing,omitempty"`
	Results   []model.PanelResults              `json:"results"`
}

// NewBatchDocument stamps a new document with a random ID and the current time.
func NewBatchDocument(cfg model.PanelConfig, walls []model.Wall, framing map[string][]model.FramingElement, results []model.PanelResults) BatchDocument {
	if walls == nil {
		walls = []model.Wall{}
	}
	if results == nil {
		results = []model.PanelResults{}
	}
	return BatchDocument{
		ID:        uuid.NewString(),
		Version:   BatchVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    cfg,
		Walls:     walls,
		Framing:   framing,
		Results:   results,
	}
}

// SaveBatch writes a batch document to a single JSON file at the specified path.
func SaveBatch(path string, doc BatchDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batch document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create batch directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write batch file: %w", err)
	}
	return nil
}

// LoadBatch reads a batch document and checks its envelope and results.
func LoadBatch(path string) (BatchDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BatchDocument{}, fmt.Errorf("failed to read batch file: %w", err)
	}
	var doc BatchDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return BatchDocument{}, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if doc.Version == "" {
		return BatchDocument{}, fmt.Errorf("invalid batch file: missing version field")
	}
	if _, err := uuid.Parse(doc.ID); err != nil {
		return BatchDocument{}, fmt.Errorf("invalid batch file: bad batch_id %q: %w", doc.ID, err)
	}
	for i, r := range doc.Results {
		if err := checkResults(r); err != nil {
			return BatchDocument{}, fmt.Errorf("invalid batch file: result %d: %w", i, err)
		}
	}
	if doc.Walls == nil {
		doc.Walls = []model.Wall{}
	}
	if doc.Results == nil {
		doc.Results = []model.PanelResults{}
	}
	return doc, nil
}
