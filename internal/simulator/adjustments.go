package simulator

import (
	"math"

	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
	"github.com/MahendraD2/CashFlowManagement/pkg/mathutil"
	"go.uber.org/zap"
)

// distribute adds amount across the series in proportion to each month's
// share of reference, then charges upfront against month 0.
func distribute(values []float64, reference func(int) float64, referenceTotal, amount, upfront float64) {
	denominator := mathutil.NonZeroDenominator(referenceTotal)
	for i := range values {
		values[i] += amount * (reference(i) / denominator)
	}
	if len(values) > 0 {
		values[0] -= upfront
	}
}

// clampPercentage bounds cost_reduction and revenue_increase percentages.
func clampPercentage(pct float64) float64 {
	return mathutil.Clamp(pct, constants.MinAdjustmentPercentage, constants.MaxAdjustmentPercentage)
}

func (s *Simulator) applyCostReduction(b *dataset.Baseline, v scenario.CostReduction, p *Projection) {
	pct := clampPercentage(v.ReductionPercentage)
	fraction := mathutil.Fraction(pct)

	totalReduction := p.Original.TotalExpenses * fraction
	implementationCost := totalReduction * math.Min(0.2, fraction)

	p.Modified.TotalExpenses = p.Original.TotalExpenses * (1 - fraction)
	distribute(p.Modified.Values, b.Outflow, mathutil.Sum(b.Outflows), totalReduction, implementationCost)
	p.Modified.NetProfit = mathutil.Sum(p.Modified.Values)

	s.logger.Debug("cost reduction applied",
		zap.String("op", "simulator.applyCostReduction"),
		zap.Float64("requestedPercentage", v.ReductionPercentage),
		zap.Float64("appliedPercentage", pct),
		zap.Float64("expenseSavings", totalReduction),
		zap.Float64("implementationCost", implementationCost),
		zap.Float64("netSavings", totalReduction-implementationCost),
	)
}

func (s *Simulator) applyRevenueIncrease(b *dataset.Baseline, v scenario.RevenueIncrease, p *Projection) {
	pct := clampPercentage(v.IncreasePercentage)
	fraction := mathutil.Fraction(pct)

	totalIncrease := p.Original.TotalRevenue * fraction
	marketingCost := totalIncrease * math.Min(0.3, fraction)

	p.Modified.TotalRevenue = p.Original.TotalRevenue * (1 + fraction)
	p.Modified.TotalExpenses = p.Original.TotalExpenses + marketingCost
	distribute(p.Modified.Values, b.Inflow, mathutil.Sum(b.Inflows), totalIncrease, marketingCost)
	p.Modified.NetProfit = mathutil.Sum(p.Modified.Values)

	s.logger.Debug("revenue increase applied",
		zap.String("op", "simulator.applyRevenueIncrease"),
		zap.Float64("requestedPercentage", v.IncreasePercentage),
		zap.Float64("appliedPercentage", pct),
		zap.Float64("revenueIncrease", totalIncrease),
		zap.Float64("marketingCost", marketingCost),
		zap.Float64("netIncrease", totalIncrease-marketingCost),
	)
}
