package simulator

import (
	"math"

	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/MahendraD2/CashFlowManagement/pkg/mathutil"
	"go.uber.org/zap"
)

// ProjectDelayFactors returns the share of project revenue that slips and the
// share by which project costs grow, by project status.
func ProjectDelayFactors(status dataset.StatusClass, delayMonths float64) (revenueDelay, costIncrease float64) {
	switch status {
	case dataset.StatusComplete:
		revenueDelay, costIncrease = 0.05, 0.02
	case dataset.StatusInProgress:
		revenueDelay = 0.15 + delayMonths*0.05
		costIncrease = 0.10 + delayMonths*0.03
	default:
		revenueDelay = 0.10 + delayMonths*0.03
		costIncrease = 0.05 + delayMonths*0.02
	}
	return math.Min(0.5, revenueDelay), math.Min(0.3, costIncrease)
}

// frontLoadWeight weights early months more heavily: 2x for the first three
// months, 1.5x for the next three.
func frontLoadWeight(i int) float64 {
	switch {
	case i < 3:
		return 2
	case i < 6:
		return 1.5
	default:
		return 1
	}
}

func (s *Simulator) applyProjectDelay(b *dataset.Baseline, v scenario.ProjectDelay, p *Projection) {
	values := p.Modified.Values
	monthsCount := float64(len(values))

	project, found := b.FindProject(v.ProjectName)
	if !found {
		genericImpact := p.Original.NetProfit * 0.05 * v.DelayMonths / 6
		perMonth := genericImpact / monthsCount
		for i := range values {
			values[i] -= perMonth
		}
		p.Modified.NetProfit = mathutil.Sum(values)

		warning := &UnknownProjectWarning{ProjectName: v.ProjectName}
		p.Warnings = append(p.Warnings, warning)
		s.logger.Warn("project not found, applying generic delay impact",
			zap.String("op", "simulator.applyProjectDelay"),
			zap.String("project", v.ProjectName),
			zap.Float64("delayMonths", v.DelayMonths),
			zap.Float64("genericImpact", genericImpact),
		)
		return
	}

	revenueDelay, costIncrease := ProjectDelayFactors(project.StatusClass(), v.DelayMonths)
	delayedRevenue := project.TotalRevenue * revenueDelay
	increasedCosts := project.TotalCosts * costIncrease
	totalImpact := delayedRevenue + increasedCosts

	for i := range values {
		values[i] -= (totalImpact / monthsCount) * frontLoadWeight(i)
	}

	p.Modified.TotalRevenue = p.Original.TotalRevenue - delayedRevenue
	p.Modified.TotalExpenses = p.Original.TotalExpenses + increasedCosts
	p.Modified.NetProfit = mathutil.Sum(values)

	s.logger.Debug("project delay applied",
		zap.String("op", "simulator.applyProjectDelay"),
		zap.String("project", project.Name),
		zap.String("status", project.Status),
		zap.Float64("delayMonths", v.DelayMonths),
		zap.Float64("revenueDelayFactor", revenueDelay),
		zap.Float64("costIncreaseFactor", costIncrease),
		zap.Float64("delayedRevenue", delayedRevenue),
		zap.Float64("increasedCosts", increasedCosts),
	)
}
