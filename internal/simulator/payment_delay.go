package simulator

import (
	"math"

	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
	"github.com/MahendraD2/CashFlowManagement/pkg/mathutil"
	"go.uber.org/zap"
)

// PaymentDelayFactors are the derived inputs of the payment delay model.
type PaymentDelayFactors struct {
	DelayMonths       int
	DelayPercentage   float64
	LossPercentage    float64
	FinancingPerMonth float64
}

// PaymentDelayModel derives the delay factors for a delay in days. Negative
// and NaN delays are treated as no delay; delays are capped at
// constants.MaxPaymentDelayDays.
func PaymentDelayModel(delayDays float64) PaymentDelayFactors {
	if math.IsNaN(delayDays) || delayDays < 0 {
		delayDays = 0
	}
	delayDays = math.Min(delayDays, constants.MaxPaymentDelayDays)
	delayMonths := int(math.Ceil(delayDays / constants.DaysPerMonth))
	return PaymentDelayFactors{
		DelayMonths:       delayMonths,
		DelayPercentage:   math.Min(0.7, 0.3+float64(delayMonths)*0.05),
		LossPercentage:    math.Min(0.2, 0.05+float64(delayMonths)*0.01),
		FinancingPerMonth: 0.005,
	}
}

// applyPaymentDelay moves a share of each month's inflow delayMonths later.
// Part of every delayed amount is lost on recovery; amounts that would land
// past the last month are lost entirely. Delayed receipts also carry a
// financing cost proportional to total inflows.
func (s *Simulator) applyPaymentDelay(b *dataset.Baseline, v scenario.PaymentDelay, p *Projection) {
	f := PaymentDelayModel(v.DelayDays)
	values := p.Modified.Values

	if f.DelayMonths == 0 {
		p.Modified.NetProfit = mathutil.Sum(values)
		s.logger.Debug("payment delay shorter than one period, no effect",
			zap.String("op", "simulator.applyPaymentDelay"),
			zap.Float64("delayDays", v.DelayDays),
		)
		return
	}

	totalDelayed := 0.0
	totalLost := 0.0
	for i := range values {
		delayed := b.Inflow(i) * f.DelayPercentage
		lost := delayed * f.LossPercentage
		recovered := delayed - lost

		values[i] -= delayed
		totalDelayed += delayed
		totalLost += lost

		if target := i + f.DelayMonths; target >= 0 && target < len(values) {
			values[target] += recovered
		} else {
			totalLost += recovered
		}
	}

	financialCost := mathutil.Sum(b.Inflows) * f.FinancingPerMonth * float64(f.DelayMonths)

	p.Modified.TotalRevenue = p.Original.TotalRevenue - totalLost
	p.Modified.TotalExpenses = p.Original.TotalExpenses + financialCost
	p.Modified.NetProfit = mathutil.Sum(values) - financialCost

	s.logger.Debug("payment delay applied",
		zap.String("op", "simulator.applyPaymentDelay"),
		zap.Float64("delayDays", v.DelayDays),
		zap.Int("delayMonths", f.DelayMonths),
		zap.Float64("delayPercentage", f.DelayPercentage),
		zap.Float64("lossPercentage", f.LossPercentage),
		zap.Float64("totalDelayed", totalDelayed),
		zap.Float64("totalLost", totalLost),
		zap.Float64("financialCost", financialCost),
	)
}
