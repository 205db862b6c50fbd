package dataset

import (
	"slices"

	"github.com/MahendraD2/CashFlowManagement/pkg/mathutil"
)

// Snapshot holds a monthly net cash-flow series with its aggregate totals. It is
// the shape of both the original and modified sides of a simulation.
type Snapshot struct {
	Months        []string  `json:"months"`
	Values        []float64 `json:"values"`
	TotalRevenue  float64   `json:"totalRevenue"`
	TotalExpenses float64   `json:"totalExpenses"`
	NetProfit     float64   `json:"netProfit"`
}

// Clone returns an independent copy.
func (s Snapshot) Clone() Snapshot {
	s.Months = slices.Clone(s.Months)
	s.Values = slices.Clone(s.Values)
	return s
}

// CashFlow sums the monthly series.
func (s Snapshot) CashFlow() float64 {
	return mathutil.Sum(s.Values)
}
