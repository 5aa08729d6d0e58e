package engine

import (
	"fmt"

	"github.com/piwi3910/WallPanel/internal/model"
)

// ComparisonScenario defines a named config to compare.
type ComparisonScenario struct {
	Name   string
	Config model.PanelConfig
}

// ComparisonResult holds the decomposition and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario       ComparisonScenario
	Results        []model.PanelResults
	PanelCount     int
	JointCount     int
	TotalWeight    float64
	ViolationCount int
	DegradedWalls  int
	Err            error // set when the scenario config is invalid
}

// CompareScenarios decomposes the same wall set under each scenario and
// returns the results in scenario order. This enables side-by-side comparison
// of panel rules (stud spacing, alignment, corner priority, ...). A scenario
// whose config fails validation is reported through Err with no results.
func CompareScenarios(scenarios []ComparisonScenario, walls []model.Wall, framing map[string][]model.FramingElement, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		d, err := New(scenario.Config, opts...)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}
		wallResults := d.DecomposeAllWalls(walls, framing)

		cr := ComparisonResult{Scenario: scenario, Results: wallResults}
		for _, r := range wallResults {
			cr.PanelCount += r.PanelCount
			cr.JointCount += len(r.Joints)
			cr.TotalWeight += r.TotalWeight()
			cr.ViolationCount += len(r.Metadata.Violations)
			if r.Metadata.JointStrategy.Degraded() {
				cr.DegradedWalls++
			}
		}
		results = append(results, cr)
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current config, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base model.PanelConfig) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:   "Current Config",
			Config: base,
		},
	}

	// Scenario: the other common stud spacing
	alt := base
	if base.StudSpacing == 2.0 {
		alt.StudSpacing = 16.0 / 12.0
	} else {
		alt.StudSpacing = 2.0
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:   fmt.Sprintf("Studs %.0f\" OC", alt.StudSpacing*12),
		Config: alt,
	})

	// Scenario: joints free of the stud grid
	if base.RequireStudAlignment {
		free := base
		free.RequireStudAlignment = false
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "No Stud Alignment",
			Config: free,
		})
	}

	// Scenario: the other implemented corner priority
	corner := base
	if base.CornerPriority == model.PriorityAlternate {
		corner.CornerPriority = model.PriorityLongerWall
		scenarios = append(scenarios, ComparisonScenario{Name: "Longer Wall Extends", Config: corner})
	} else {
		corner.CornerPriority = model.PriorityAlternate
		scenarios = append(scenarios, ComparisonScenario{Name: "Alternate Corners", Config: corner})
	}

	return scenarios
}
