package model

import "math"

// ShipmentEstimate holds the results of a transport calculation for a panel set.
type ShipmentEstimate struct {
	PanelCount       int      `json:"panel_count"`
	TotalArea        float64  `json:"total_area"`         // sq ft
	TotalWeight      float64  `json:"total_weight"`       // lbs
	HeaviestPanel    float64  `json:"heaviest_panel"`     // lbs
	LongestPanel     float64  `json:"longest_panel"`      // ft
	LoadsByWeight    int      `json:"loads_by_weight"`    // ceil(total weight / max transport weight)
	OversizePanelIDs []string `json:"oversize_panel_ids"` // longer than max transport length
	OverweightIDs    []string `json:"overweight_ids"`     // heavier than max transport weight on their own
}

// CalculateShipmentEstimate totals a panel set against the transport limits in cfg.
func CalculateShipmentEstimate(panels []Panel, cfg PanelConfig) ShipmentEstimate {
	est := ShipmentEstimate{PanelCount: len(panels)}
	for _, p := range panels {
		est.TotalArea += p.Area()
		est.TotalWeight += p.EstimatedWeight
		if p.EstimatedWeight > est.HeaviestPanel {
			est.HeaviestPanel = p.EstimatedWeight
		}
		if p.Length > est.LongestPanel {
			est.LongestPanel = p.Length
		}
		if cfg.MaxTransportLength > 0 && p.Length > cfg.MaxTransportLength+lengthTolerance {
			est.OversizePanelIDs = append(est.OversizePanelIDs, p.ID)
		}
		if cfg.MaxTransportWeight > 0 && p.EstimatedWeight > cfg.MaxTransportWeight {
			est.OverweightIDs = append(est.OverweightIDs, p.ID)
		}
	}

	if cfg.MaxTransportWeight > 0 && est.TotalWeight > 0 {
		est.LoadsByWeight = int(math.Ceil(est.TotalWeight / cfg.MaxTransportWeight))
	}
	return est
}

// lengthTolerance absorbs floating point noise when comparing lengths in feet.
const lengthTolerance = 1e-6
