// Package configprocessor provides shared configuration processing utilities.
package configprocessor

import (
	"fmt"
	"strings"

	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
)

// BaselineInfo represents the shape of the configured baseline dataset
type BaselineInfo struct {
	Months       []string
	InflowCount  int
	OutflowCount int
	NetFlowCount int
	ProjectNames []string
}

// ScenarioInfo represents scenario configuration information
type ScenarioInfo struct {
	Name        string
	Active      bool
	Custom      bool
	Type        string
	Description string
	ProjectName string
}

// Processor handles configuration processing and validation
type Processor struct{}

// NewProcessor creates a new configuration processor
func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateConfiguration validates the configuration and returns warnings
func (p *Processor) ValidateConfiguration(baseline BaselineInfo, scenarios []ScenarioInfo) []string {
	var warnings []string

	months := len(baseline.Months)
	if months == 0 {
		warnings = append(warnings, "Baseline has no monthly data; every scenario will fail")
	}

	// Short series read as zero for the missing months.
	series := []struct {
		name  string
		count int
	}{
		{"inflows", baseline.InflowCount},
		{"outflows", baseline.OutflowCount},
		{"netFlow", baseline.NetFlowCount},
	}
	for _, s := range series {
		if months > 0 && s.count != months {
			warnings = append(warnings, fmt.Sprintf("Baseline %s has %d values for %d months", s.name, s.count, months))
		}
	}

	seen := make(map[string]bool, months)
	for _, month := range baseline.Months {
		if seen[month] {
			warnings = append(warnings, fmt.Sprintf("Baseline month '%s' appears more than once", month))
		}
		seen[month] = true
	}

	projects := make(map[string]bool, len(baseline.ProjectNames))
	for _, name := range baseline.ProjectNames {
		projects[name] = true
	}

	names := make(map[string]bool, len(scenarios))
	for _, info := range scenarios {
		if names[info.Name] {
			warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once", info.Name))
		}
		names[info.Name] = true

		if !info.Active {
			continue // Skip inactive scenarios
		}

		if info.Custom {
			if strings.TrimSpace(info.Description) == "" {
				warnings = append(warnings, fmt.Sprintf("Custom scenario '%s' has an empty description", info.Name))
			}
			continue
		}

		switch {
		case info.Type == "":
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has no scenario_type", info.Name))
		case !scenario.Type(info.Type).Known():
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has unknown type '%s' and will be simulated as custom", info.Name, info.Type))
		case info.Type == constants.ScenarioTypeProjectDelay && !projects[info.ProjectName]:
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' delays project '%s' which is not in the baseline; a generic impact will be applied", info.Name, info.ProjectName))
		}
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
