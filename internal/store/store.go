// Package store persists saved simulation runs.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/MahendraD2/CashFlowManagement/internal/impact"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no saved run has the requested ID.
var ErrNotFound = errors.New("saved run not found")

// Record is a saved simulation run.
type Record struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Spec      scenario.Spec  `json:"spec"`
	Impact    impact.Summary `json:"impact"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Store saves and lists simulation runs.
type Store interface {
	Save(ctx context.Context, record Record) error
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	// List returns up to limit records, newest first. A limit of 0 means no limit.
	List(ctx context.Context, limit int) ([]Record, error)
}

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, ErrNotFound
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	records := slices.Clone(s.records)
	s.mu.RUnlock()

	// Stable so equal timestamps keep reverse insertion order.
	slices.Reverse(records)
	slices.SortStableFunc(records, func(a, b Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
