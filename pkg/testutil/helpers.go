// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
)

// FindByName returns a pointer to the first element whose name matches, or
// nil if none does.
func FindByName[T any](items []T, name string, nameOf func(T) string) *T {
	for i := range items {
		if nameOf(items[i]) == name {
			return &items[i]
		}
	}
	return nil
}

// SampleBaseline returns a six month dataset with two projects. Every call
// returns a fresh copy.
func SampleBaseline() *dataset.Baseline {
	return &dataset.Baseline{
		Months:   []string{"Jan 2025", "Feb 2025", "Mar 2025", "Apr 2025", "May 2025", "Jun 2025"},
		Inflows:  []float64{12000, 15000, 11000, 18000, 16000, 14000},
		Outflows: []float64{9000, 9500, 10000, 11000, 9800, 10200},
		NetFlow:  []float64{3000, 5500, 1000, 7000, 6200, 3800},
		Projects: []dataset.Project{
			{Name: "Website Redesign", TotalRevenue: 25000, TotalCosts: 14000, Status: "In Progress"},
			{Name: "Mobile App", TotalRevenue: 40000, TotalCosts: 30000, Status: "Completed"},
			{Name: "Data Platform", TotalRevenue: 60000, TotalCosts: 45000, Status: "Planned"},
		},
	}
}

// FlatBaseline returns a dataset where every month has the same inflow and
// outflow.
func FlatBaseline(months int, inflow, outflow float64) *dataset.Baseline {
	b := &dataset.Baseline{
		Months:   make([]string, months),
		Inflows:  make([]float64, months),
		Outflows: make([]float64, months),
		NetFlow:  make([]float64, months),
	}
	for i := 0; i < months; i++ {
		b.Months[i] = monthLabel(i)
		b.Inflows[i] = inflow
		b.Outflows[i] = outflow
		b.NetFlow[i] = inflow - outflow
	}
	return b
}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func monthLabel(i int) string {
	return monthNames[i%12]
}
