// Package analysis ties the scenario engine together: it resolves a selection
// into a scenario spec, simulates it against a baseline and summarizes the
// impact.
package analysis

import (
	"fmt"

	"github.com/MahendraD2/CashFlowManagement/internal/config"
	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/impact"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/MahendraD2/CashFlowManagement/internal/simulator"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result holds everything produced by one scenario run.
type Result struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Spec        scenario.Spec    `json:"spec"`
	Description string           `json:"description"`
	Original    dataset.Snapshot `json:"original"`
	Modified    dataset.Snapshot `json:"modified"`
	Impact      impact.Summary   `json:"impact"`
	Warnings    []string         `json:"warnings,omitempty"`
}

// Analyze resolves the selection and runs it against the baseline.
func Analyze(logger *zap.Logger, sim *simulator.Simulator, baseline *dataset.Baseline, selection scenario.Selection) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	spec, err := scenario.Resolve(selection)
	if err != nil {
		return nil, err
	}

	return AnalyzeSpec(logger, sim, baseline, spec)
}

// AnalyzeSpec runs an already resolved spec against the baseline.
func AnalyzeSpec(logger *zap.Logger, sim *simulator.Simulator, baseline *dataset.Baseline, spec scenario.Spec) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	projection, err := sim.Simulate(baseline, spec)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ID:          uuid.NewString(),
		Name:        spec.DisplayDescription(),
		Spec:        spec,
		Description: spec.DisplayDescription(),
		Original:    projection.Original,
		Modified:    projection.Modified,
		Impact:      impact.Summarize(projection.Original, projection.Modified, projection.Variant),
	}
	for _, w := range projection.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	logger.Info("scenario analyzed",
		zap.String("op", "analysis.AnalyzeSpec"),
		zap.String("id", result.ID),
		zap.String("type", string(projection.Variant.Type())),
		zap.Float64("profitImpact", result.Impact.ProfitImpact),
		zap.String("riskLevel", result.Impact.RiskLevel),
	)

	return result, nil
}

// NewSimulator builds a simulator from the simulation settings. A zero seed
// keeps the default unseeded randomness.
func NewSimulator(logger *zap.Logger, settings config.SimulationConfig) *simulator.Simulator {
	var opts []simulator.Option
	if settings.Seed != 0 {
		opts = append(opts, simulator.WithRandom(simulator.NewSeededRandom(settings.Seed)))
	}
	return simulator.New(logger, opts...)
}

// RunConfiguration analyzes every active scenario in the configuration against
// its baseline, in order. It stops at the first failing scenario and returns
// the results gathered so far.
func RunConfiguration(logger *zap.Logger, conf *config.Configuration) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sim := NewSimulator(logger, conf.Simulation)

	var results []Result
	for _, s := range conf.Scenarios {
		if !s.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", s.Name),
				zap.String("op", "analysis.RunConfiguration"),
			)
			continue
		}

		result, err := Analyze(logger, sim, &conf.Baseline, s.Selection())
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		if s.Name != "" {
			result.Name = s.Name
		}
		results = append(results, *result)
	}

	return results, nil
}
