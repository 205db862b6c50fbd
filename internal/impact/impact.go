// Package impact summarizes the difference between an original and a modified
// projection and classifies how risky the change is.
package impact

import (
	"math"

	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
	"github.com/MahendraD2/CashFlowManagement/pkg/mathutil"
)

// Summary holds the signed, whole-unit deltas between the modified and the
// original projection, plus the risk classification.
type Summary struct {
	RevenueImpact          float64 `json:"revenueImpact" yaml:"revenueImpact"`
	ExpenseImpact          float64 `json:"expenseImpact" yaml:"expenseImpact"`
	CashFlowImpact         float64 `json:"cashFlowImpact" yaml:"cashFlowImpact"`
	ProfitImpact           float64 `json:"profitImpact" yaml:"profitImpact"`
	ProfitImpactPercentage float64 `json:"profitImpactPercentage" yaml:"profitImpactPercentage"`
	RiskLevel              string  `json:"riskLevel" yaml:"riskLevel"`
}

// Summarize computes the impact summary. Risk is classified from the
// unrounded profit delta.
func Summarize(original, modified dataset.Snapshot, variant scenario.Variant) Summary {
	profitImpact := modified.NetProfit - original.NetProfit
	pct := ProfitImpactPercentage(original.NetProfit, profitImpact)

	return Summary{
		RevenueImpact:          mathutil.RoundWhole(modified.TotalRevenue - original.TotalRevenue),
		ExpenseImpact:          mathutil.RoundWhole(modified.TotalExpenses - original.TotalExpenses),
		CashFlowImpact:         mathutil.RoundWhole(modified.CashFlow() - original.CashFlow()),
		ProfitImpact:           mathutil.RoundWhole(profitImpact),
		ProfitImpactPercentage: pct,
		RiskLevel:              ClassifyRisk(variant, profitImpact, pct),
	}
}

// ProfitImpactPercentage is |profitImpact| as a percentage of |netProfit|, or
// zero when the original profit is too small to be meaningful.
func ProfitImpactPercentage(originalNetProfit, profitImpact float64) float64 {
	absProfit := math.Abs(originalNetProfit)
	if absProfit <= constants.MinProfitForPercentage {
		return 0
	}
	return mathutil.CalculatePercentage(math.Abs(profitImpact), absProfit)
}

// ClassifyRisk derives the risk level. Rules are layered and later rules win:
// the favorable or unfavorable base rule first, then the per-type overrides.
func ClassifyRisk(variant scenario.Variant, profitImpact, pct float64) string {
	var risk string

	switch variant.(type) {
	case scenario.RevenueIncrease, scenario.CostReduction:
		switch {
		case pct > 50:
			risk = constants.RiskHigh
		case pct > 25:
			risk = constants.RiskMedium
		default:
			risk = constants.RiskLow
		}
	default:
		absImpact := math.Abs(profitImpact)
		switch {
		case profitImpact >= 0:
			risk = constants.RiskLow
		case pct > 25 || absImpact > 50000:
			risk = constants.RiskHigh
		case pct > 10 || absImpact > 20000:
			risk = constants.RiskMedium
		default:
			risk = constants.RiskLow
		}
	}

	switch v := variant.(type) {
	case scenario.CostReduction:
		risk = thresholdRisk(pct > 45, constants.RiskMedium)
	case scenario.RevenueIncrease:
		risk = thresholdRisk(pct > 40, constants.RiskMedium)
	case scenario.PaymentDelay:
		switch {
		case v.DelayDays >= 60:
			risk = constants.RiskHigh
		case v.DelayDays >= 30:
			risk = constants.RiskMedium
		}
	case scenario.ProjectDelay:
		switch {
		case v.DelayMonths >= 3:
			risk = constants.RiskHigh
		case v.DelayMonths >= 2:
			risk = constants.RiskMedium
		}
	}

	return risk
}

func thresholdRisk(above bool, level string) string {
	if above {
		return level
	}
	return constants.RiskLow
}
