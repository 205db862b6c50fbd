package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MahendraD2/CashFlowManagement/internal/cache"
	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/MahendraD2/CashFlowManagement/internal/simulator"
	"github.com/MahendraD2/CashFlowManagement/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service runs single scenarios on behalf of API callers, caching
// deterministic results and saving every run.
type Service struct {
	logger *zap.Logger
	sim    *simulator.Simulator
	cache  cache.CacheRepository
	store  store.Store
	now    func() time.Time
}

// NewService creates a Service. Nil cache or store disables that feature.
func NewService(logger *zap.Logger, sim *simulator.Simulator, c cache.CacheRepository, s store.Store) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, sim: sim, cache: c, store: s, now: time.Now}
}

// Run resolves and simulates a selection. Cache and store failures are logged
// and never fail the run.
func (s *Service) Run(ctx context.Context, baseline *dataset.Baseline, selection scenario.Selection, name string) (*Result, bool, error) {
	spec, err := scenario.Resolve(selection)
	if err != nil {
		return nil, false, err
	}

	result, cached := s.lookup(ctx, baseline, spec)
	if result == nil {
		result, err = AnalyzeSpec(s.logger, s.sim, baseline, spec)
		if err != nil {
			return nil, false, err
		}
		s.remember(ctx, baseline, spec, result)
	}

	// Every run gets its own identity, even when served from cache.
	result.ID = uuid.NewString()
	if name != "" {
		result.Name = name
	}

	s.save(ctx, result)
	return result, cached, nil
}

// Saved lists saved runs, newest first.
func (s *Service) Saved(ctx context.Context, limit int) ([]store.Record, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx, limit)
}

// SavedRun returns one saved run. Without a store every lookup reports
// store.ErrNotFound.
func (s *Service) SavedRun(ctx context.Context, id uuid.UUID) (store.Record, error) {
	if s.store == nil {
		return store.Record{}, store.ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// cacheable reports whether results for spec can be reused. Neutral custom
// scenarios draw random numbers and are never cached.
func (s *Service) cacheable(spec scenario.Spec) bool {
	if s.cache == nil {
		return false
	}
	variant, err := spec.Variant()
	return err == nil && simulator.Deterministic(variant)
}

func (s *Service) lookup(ctx context.Context, baseline *dataset.Baseline, spec scenario.Spec) (*Result, bool) {
	if !s.cacheable(spec) {
		return nil, false
	}

	key, err := cache.Key(baseline, spec)
	if err != nil {
		return nil, false
	}

	payload, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache lookup failed",
			zap.String("op", "analysis.Service.lookup"),
			zap.Error(err),
		)
		return nil, false
	}
	if !hit {
		return nil, false
	}

	var result Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		s.logger.Warn("discarding unreadable cache entry",
			zap.String("op", "analysis.Service.lookup"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}

	s.logger.Debug("simulation served from cache",
		zap.String("op", "analysis.Service.lookup"),
		zap.String("key", key),
	)
	return &result, true
}

func (s *Service) remember(ctx context.Context, baseline *dataset.Baseline, spec scenario.Spec, result *Result) {
	if !s.cacheable(spec) {
		return
	}

	key, err := cache.Key(baseline, spec)
	if err != nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(payload)); err != nil {
		s.logger.Warn("cache store failed",
			zap.String("op", "analysis.Service.remember"),
			zap.Error(err),
		)
	}
}

func (s *Service) save(ctx context.Context, result *Result) {
	if s.store == nil {
		return
	}

	id, err := uuid.Parse(result.ID)
	if err != nil {
		return
	}
	record := store.Record{
		ID:        id,
		Name:      result.Name,
		Spec:      result.Spec,
		Impact:    result.Impact,
		CreatedAt: s.now(),
	}
	if err := s.store.Save(ctx, record); err != nil {
		s.logger.Warn(fmt.Sprintf("failed to save run %s", result.ID),
			zap.String("op", "analysis.Service.save"),
			zap.Error(err),
		)
	}
}
