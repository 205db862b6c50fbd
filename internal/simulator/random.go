package simulator

import (
	"math/rand/v2"
	"sync"
)

// Random supplies uniformly distributed values in [0, 1).
type Random interface {
	Float64() float64
}

type defaultRandom struct{}

func (defaultRandom) Float64() float64 {
	return rand.Float64()
}

type seededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandom returns a reproducible source that is safe for concurrent use.
func NewSeededRandom(seed uint64) Random {
	return &seededRandom{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (r *seededRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// FixedRandom always returns the same value. Useful for tests.
type FixedRandom float64

func (f FixedRandom) Float64() float64 {
	return float64(f)
}
