// Package dataset defines the normalized baseline financial dataset that the
// scenario engine consumes, along with the derived aggregate view used as the
// "original" side of every simulation.
package dataset

import (
	"errors"
	"slices"
	"strings"

	"github.com/MahendraD2/CashFlowManagement/pkg/mathutil"
)

// ErrMissingBaseline indicates the baseline has no monthly series to simulate against.
var ErrMissingBaseline = errors.New("baseline dataset has no monthly data")

// Baseline is the normalized dataset extracted from an uploaded document.
// Series are aligned by index to Months.
type Baseline struct {
	Months        []string  `json:"months" yaml:"months" mapstructure:"months"`
	Inflows       []float64 `json:"inflows" yaml:"inflows" mapstructure:"inflows"`
	Outflows      []float64 `json:"outflows" yaml:"outflows" mapstructure:"outflows"`
	NetFlow       []float64 `json:"netFlow" yaml:"netFlow" mapstructure:"netFlow"`
	TotalRevenue  float64   `json:"totalRevenue,omitempty" yaml:"totalRevenue,omitempty" mapstructure:"totalRevenue"`
	TotalExpenses float64   `json:"totalExpenses,omitempty" yaml:"totalExpenses,omitempty" mapstructure:"totalExpenses"`
	NetProfit     float64   `json:"netProfit,omitempty" yaml:"netProfit,omitempty" mapstructure:"netProfit"`
	Projects      []Project `json:"projects,omitempty" yaml:"projects,omitempty" mapstructure:"projects"`
}

// Project is a single project profitability record.
type Project struct {
	Name         string  `json:"name" yaml:"name" mapstructure:"name"`
	TotalRevenue float64 `json:"totalRevenue" yaml:"totalRevenue" mapstructure:"totalRevenue"`
	TotalCosts   float64 `json:"totalCosts" yaml:"totalCosts" mapstructure:"totalCosts"`
	Status       string  `json:"status" yaml:"status" mapstructure:"status"`
}

// StatusClass groups free-text project statuses.
type StatusClass int

const (
	StatusOther StatusClass = iota
	StatusComplete
	StatusInProgress
)

// StatusClass classifies the project status by case-insensitive substring.
// "complete" takes precedence over "progress".
func (p Project) StatusClass() StatusClass {
	status := strings.ToLower(p.Status)
	switch {
	case strings.Contains(status, "complete"):
		return StatusComplete
	case strings.Contains(status, "progress"):
		return StatusInProgress
	default:
		return StatusOther
	}
}

// Validate reports ErrMissingBaseline when there are no months.
func (b *Baseline) Validate() error {
	if b == nil || len(b.Months) == 0 {
		return ErrMissingBaseline
	}
	return nil
}

// Len returns the number of periods.
func (b *Baseline) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Months)
}

// Inflow returns the inflow for period i, or zero if the series is short.
func (b *Baseline) Inflow(i int) float64 {
	return mathutil.At(b.Inflows, i)
}

// Outflow returns the outflow for period i, or zero if the series is short.
func (b *Baseline) Outflow(i int) float64 {
	return mathutil.At(b.Outflows, i)
}

// FindProject looks up a project by exact name.
func (b *Baseline) FindProject(name string) (Project, bool) {
	for _, project := range b.Projects {
		if project.Name == name {
			return project, true
		}
	}
	return Project{}, false
}

// Clone returns a deep copy of the baseline.
func (b *Baseline) Clone() *Baseline {
	if b == nil {
		return nil
	}
	clone := *b
	clone.Months = slices.Clone(b.Months)
	clone.Inflows = slices.Clone(b.Inflows)
	clone.Outflows = slices.Clone(b.Outflows)
	clone.NetFlow = slices.Clone(b.NetFlow)
	clone.Projects = slices.Clone(b.Projects)
	return &clone
}

// Snapshot derives the aggregate view of the baseline: the net-flow series
// aligned to Months and the summed totals. The per-month NetFlow is taken as
// authoritative; it is not recomputed from inflows and outflows.
func (b *Baseline) Snapshot() Snapshot {
	values := make([]float64, len(b.Months))
	for i := range values {
		values[i] = mathutil.At(b.NetFlow, i)
	}
	return Snapshot{
		Months:        slices.Clone(b.Months),
		Values:        values,
		TotalRevenue:  mathutil.Sum(b.Inflows),
		TotalExpenses: mathutil.Sum(b.Outflows),
		NetProfit:     mathutil.Sum(b.NetFlow),
	}
}
