package simulator

import (
	"strings"

	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/MahendraD2/CashFlowManagement/pkg/mathutil"
	"go.uber.org/zap"
)

// ImpactType is the direction inferred from a custom description.
type ImpactType string

// Magnitude is the size inferred from a custom description.
type Magnitude string

const (
	ImpactPositive ImpactType = "positive"
	ImpactNegative ImpactType = "negative"
	ImpactNeutral  ImpactType = "neutral"

	MagnitudeSmall  Magnitude = "small"
	MagnitudeMedium Magnitude = "medium"
	MagnitudeLarge  Magnitude = "large"
)

var (
	positiveKeywords = []string{"increase", "growth", "improve"}
	negativeKeywords = []string{"decrease", "reduce", "cut", "loss", "delay"}
	largeKeywords    = []string{"significant", "major", "large", "substantial"}
	smallKeywords    = []string{"minor", "small", "slight"}
)

// ClassifyDescription infers direction and magnitude from keywords. Positive
// keywords are checked before negative ones, large before small.
func ClassifyDescription(description string) (ImpactType, Magnitude) {
	lower := strings.ToLower(description)

	impactType := ImpactNeutral
	switch {
	case containsAny(lower, positiveKeywords):
		impactType = ImpactPositive
	case containsAny(lower, negativeKeywords):
		impactType = ImpactNegative
	}

	magnitude := MagnitudeMedium
	switch {
	case containsAny(lower, largeKeywords):
		magnitude = MagnitudeLarge
	case containsAny(lower, smallKeywords):
		magnitude = MagnitudeSmall
	}

	return impactType, magnitude
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

var magnitudeFactors = map[Magnitude]float64{
	MagnitudeSmall:  0.05,
	MagnitudeMedium: 0.10,
	MagnitudeLarge:  0.20,
}

// impactFactor maps a classification to a revenue factor. Neutral scenarios
// draw a factor uniformly from [-0.03, 0.03).
func (s *Simulator) impactFactor(impactType ImpactType, magnitude Magnitude) float64 {
	switch impactType {
	case ImpactPositive:
		return magnitudeFactors[magnitude]
	case ImpactNegative:
		return -magnitudeFactors[magnitude]
	default:
		return s.random.Float64()*0.06 - 0.03
	}
}

// applyCustom moves revenue by the impact factor and expenses by half of it in
// the opposite direction.
func (s *Simulator) applyCustom(b *dataset.Baseline, v scenario.Custom, p *Projection) {
	impactType, magnitude := ClassifyDescription(v.Description)
	factor := s.impactFactor(impactType, magnitude)
	expenseFactor := factor * -0.5

	revenueImpact := p.Original.TotalRevenue * factor
	expenseImpact := p.Original.TotalExpenses * expenseFactor

	values := p.Modified.Values
	for i := range values {
		values[i] += b.Inflow(i)*factor - b.Outflow(i)*expenseFactor
	}

	p.Modified.TotalRevenue = p.Original.TotalRevenue + revenueImpact
	p.Modified.TotalExpenses = p.Original.TotalExpenses + expenseImpact
	p.Modified.NetProfit = mathutil.Sum(values)

	s.logger.Debug("custom scenario applied",
		zap.String("op", "simulator.applyCustom"),
		zap.String("description", v.Description),
		zap.String("impactType", string(impactType)),
		zap.String("magnitude", string(magnitude)),
		zap.Float64("impactFactor", factor),
		zap.Float64("revenueImpact", revenueImpact),
		zap.Float64("expenseImpact", expenseImpact),
	)
}
