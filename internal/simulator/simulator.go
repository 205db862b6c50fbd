// Package simulator applies scenario transforms to a baseline dataset and
// produces the modified monthly cash-flow projection.
//
// A Simulator holds no mutable state besides its randomness source, so a single
// instance may serve concurrent callers. The baseline passed to Simulate is
// never modified; every branch works on a fresh copy of the monthly series.
package simulator

import (
	"errors"
	"fmt"

	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"go.uber.org/zap"
)

// ErrUnknownProject is matched by UnknownProjectWarning.
var ErrUnknownProject = errors.New("project not found")

// UnknownProjectWarning is attached to a projection when a project delay
// names a project that is not in the dataset. The simulation still completes
// using the generic delay model.
type UnknownProjectWarning struct {
	ProjectName string
}

func (w *UnknownProjectWarning) Error() string {
	return fmt.Sprintf("project %q not found in dataset, applied generic delay impact", w.ProjectName)
}

// Is reports whether target is ErrUnknownProject.
func (w *UnknownProjectWarning) Is(target error) bool {
	return target == ErrUnknownProject
}

// Projection is the outcome of a simulation: the untouched original view and
// the scenario-adjusted view of the same baseline.
type Projection struct {
	Variant  scenario.Variant
	Original dataset.Snapshot
	Modified dataset.Snapshot
	Warnings []error
}

// Simulator computes scenario projections.
type Simulator struct {
	logger *zap.Logger
	random Random
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithRandom sets the randomness source used by neutral custom scenarios.
func WithRandom(r Random) Option {
	return func(s *Simulator) {
		if r != nil {
			s.random = r
		}
	}
}

// New creates a simulator. If logger is nil a no-op logger is used.
func New(logger *zap.Logger, opts ...Option) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Simulator{logger: logger, random: defaultRandom{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate decodes the scenario Spec and applies it to the baseline.
func (s *Simulator) Simulate(baseline *dataset.Baseline, spec scenario.Spec) (*Projection, error) {
	variant, err := spec.Variant()
	if err != nil {
		return nil, fmt.Errorf("simulate %s: %w", spec.Type, err)
	}

	return s.SimulateVariant(baseline, variant)
}

// SimulateVariant applies an already decoded variant to the baseline.
func (s *Simulator) SimulateVariant(baseline *dataset.Baseline, variant scenario.Variant) (*Projection, error) {
	if variant == nil {
		return nil, fmt.Errorf("simulate: %w: no scenario variant", scenario.ErrMissingSelection)
	}
	if err := baseline.Validate(); err != nil {
		return nil, fmt.Errorf("simulate %s: %w", variant.Type(), err)
	}

	original := baseline.Snapshot()
	p := &Projection{
		Variant:  variant,
		Original: original,
		Modified: original.Clone(),
	}

	switch v := variant.(type) {
	case scenario.PaymentDelay:
		s.applyPaymentDelay(baseline, v, p)
	case scenario.CostReduction:
		s.applyCostReduction(baseline, v, p)
	case scenario.RevenueIncrease:
		s.applyRevenueIncrease(baseline, v, p)
	case scenario.ProjectDelay:
		s.applyProjectDelay(baseline, v, p)
	case scenario.Custom:
		s.applyCustom(baseline, v, p)
	default:
		return nil, fmt.Errorf("unsupported scenario variant %T", variant)
	}

	s.logger.Debug("scenario simulated",
		zap.String("op", "simulator.SimulateVariant"),
		zap.String("type", string(variant.Type())),
		zap.Float64("originalNetProfit", p.Original.NetProfit),
		zap.Float64("modifiedNetProfit", p.Modified.NetProfit),
		zap.Int("warnings", len(p.Warnings)),
	)

	return p, nil
}

// Deterministic reports whether simulating the variant always yields the same
// projection. Only custom scenarios classified as neutral draw random numbers.
func Deterministic(v scenario.Variant) bool {
	custom, ok := v.(scenario.Custom)
	if !ok {
		return true
	}
	impactType, _ := ClassifyDescription(custom.Description)
	return impactType != ImpactNeutral
}
