package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/internal/scenario"
	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
)

func testBaseline() *dataset.Baseline {
	return &dataset.Baseline{
		Months:   []string{"Jan", "Feb"},
		Inflows:  []float64{1000, 2000},
		Outflows: []float64{500, 500},
		NetFlow:  []float64{500, 1500},
	}
}

func TestKey(t *testing.T) {
	spec := scenario.Spec{
		Type:        scenario.TypeCostReduction,
		Parameters:  scenario.Parameters{"reduction_percentage": 20, "note": "x"},
		Description: "Cut costs",
	}

	key, err := Key(testBaseline(), spec)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	if !strings.HasPrefix(key, constants.DefaultCacheKeyPrefix) {
		t.Errorf("Key() = %q, expected prefix %q", key, constants.DefaultCacheKeyPrefix)
	}

	again, _ := Key(testBaseline(), scenario.Spec{
		Type:        scenario.TypeCostReduction,
		Parameters:  scenario.Parameters{"note": "x", "reduction_percentage": 20},
		Description: "Cut costs",
	})
	if again != key {
		t.Errorf("Key() not stable across map order: %q vs %q", key, again)
	}

	tests := []struct {
		name     string
		baseline *dataset.Baseline
		spec     scenario.Spec
	}{
		{
			name:     "Different parameter",
			baseline: testBaseline(),
			spec: scenario.Spec{
				Type:        scenario.TypeCostReduction,
				Parameters:  scenario.Parameters{"reduction_percentage": 25, "note": "x"},
				Description: "Cut costs",
			},
		},
		{
			name: "Different baseline",
			baseline: &dataset.Baseline{
				Months:  []string{"Jan"},
				NetFlow: []float64{1},
			},
			spec: spec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := Key(tt.baseline, tt.spec)
			if err != nil {
				t.Fatalf("Key() error = %v", err)
			}
			if other == key {
				t.Errorf("Key() collision for different inputs: %q", other)
			}
		})
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if _, ok, err := c.Get(ctx, "missing"); ok || err != nil {
		t.Errorf("Get(missing) = (_, %v, %v), expected miss", ok, err)
	}

	if err := c.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	val, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || val != "v2" {
		t.Errorf("Get(k) = (%q, %v, %v), expected (v2, true, nil)", val, ok, err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", c.Len())
	}
}
