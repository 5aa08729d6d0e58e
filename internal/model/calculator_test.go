package model

import (
	"math"
	"testing"
)

func testPanels() []Panel {
	return []Panel{
		{ID: "A-P01", Length: 24, Height: 9, EstimatedWeight: 2592},
		{ID: "A-P02", Length: 12, Height: 9, EstimatedWeight: 1296},
		{ID: "B-P01", Length: 20, Height: 9, EstimatedWeight: 2160},
	}
}

func TestCalculateShipmentEstimateBasic(t *testing.T) {
	est := CalculateShipmentEstimate(testPanels(), DefaultPanelConfig())

	if est.PanelCount != 3 {
		t.Errorf("expected 3 panels, got %d", est.PanelCount)
	}
	if math.Abs(est.TotalArea-504) > 1e-9 {
		t.Errorf("expected total area 504, got %f", est.TotalArea)
	}
	if math.Abs(est.TotalWeight-6048) > 1e-9 {
		t.Errorf("expected total weight 6048, got %f", est.TotalWeight)
	}
	if est.HeaviestPanel != 2592 {
		t.Errorf("expected heaviest 2592, got %f", est.HeaviestPanel)
	}
	if est.LongestPanel != 24 {
		t.Errorf("expected longest 24, got %f", est.LongestPanel)
	}
	if est.LoadsByWeight != 1 {
		t.Errorf("expected 1 load, got %d", est.LoadsByWeight)
	}
	if len(est.OversizePanelIDs) != 0 || len(est.OverweightIDs) != 0 {
		t.Errorf("expected no oversize or overweight panels, got %v %v", est.OversizePanelIDs, est.OverweightIDs)
	}
}

func TestCalculateShipmentEstimateLimits(t *testing.T) {
	cfg := DefaultPanelConfig()
	cfg.MaxTransportWeight = 2500
	cfg.MaxTransportLength = 22

	est := CalculateShipmentEstimate(testPanels(), cfg)

	// 6048 / 2500 rounds up to 3 loads
	if est.LoadsByWeight != 3 {
		t.Errorf("expected 3 loads, got %d", est.LoadsByWeight)
	}
	if len(est.OversizePanelIDs) != 1 || est.OversizePanelIDs[0] != "A-P01" {
		t.Errorf("expected A-P01 oversize, got %v", est.OversizePanelIDs)
	}
	if len(est.OverweightIDs) != 1 || est.OverweightIDs[0] != "A-P01" {
		t.Errorf("expected A-P01 overweight, got %v", est.OverweightIDs)
	}
}

func TestCalculateShipmentEstimateEmpty(t *testing.T) {
	est := CalculateShipmentEstimate(nil, DefaultPanelConfig())
	if est.PanelCount != 0 || est.LoadsByWeight != 0 || est.TotalWeight != 0 {
		t.Errorf("expected empty estimate, got %+v", est)
	}
}
