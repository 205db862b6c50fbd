package scenario

import (
	"errors"
	"reflect"
	"testing"

	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
)

func TestSpecVariant(t *testing.T) {
	tests := []struct {
		name     string
		spec     Spec
		expected Variant
	}{
		{
			name:     "Payment delay default",
			spec:     Spec{Type: TypePaymentDelay},
			expected: PaymentDelay{DelayDays: 30},
		},
		{
			name:     "Payment delay explicit zero is kept",
			spec:     Spec{Type: TypePaymentDelay, Parameters: Parameters{"delay_days": 0}},
			expected: PaymentDelay{DelayDays: 0},
		},
		{
			name:     "Payment delay from string",
			spec:     Spec{Type: TypePaymentDelay, Parameters: Parameters{"delay_days": "45"}},
			expected: PaymentDelay{DelayDays: 45},
		},
		{
			name:     "Cost reduction default",
			spec:     Spec{Type: TypeCostReduction, Parameters: Parameters{}},
			expected: CostReduction{ReductionPercentage: 10},
		},
		{
			name:     "Cost reduction explicit",
			spec:     Spec{Type: TypeCostReduction, Parameters: Parameters{"reduction_percentage": 20.0}},
			expected: CostReduction{ReductionPercentage: 20},
		},
		{
			name:     "Revenue increase default",
			spec:     Spec{Type: TypeRevenueIncrease},
			expected: RevenueIncrease{IncreasePercentage: 15},
		},
		{
			name: "Project delay",
			spec: Spec{Type: TypeProjectDelay, Parameters: Parameters{
				"project_name": "Alpha", "delay_months": 3,
			}},
			expected: ProjectDelay{ProjectName: "Alpha", DelayMonths: 3},
		},
		{
			name:     "Project delay default months",
			spec:     Spec{Type: TypeProjectDelay, Parameters: Parameters{"project_name": "Alpha"}},
			expected: ProjectDelay{ProjectName: "Alpha", DelayMonths: 2},
		},
		{
			name:     "Custom uses description",
			spec:     Spec{Type: TypeCustom, Description: "major growth", Parameters: Parameters{"custom_description": "ignored"}},
			expected: Custom{Description: "major growth"},
		},
		{
			name:     "Custom falls back to parameter",
			spec:     Spec{Type: TypeCustom, Parameters: Parameters{"custom_description": "slight loss"}},
			expected: Custom{Description: "slight loss"},
		},
		{
			name:     "Unknown type decodes to custom",
			spec:     Spec{Type: "cost_increase", Description: "increase costs"},
			expected: Custom{Description: "increase costs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Variant()
			if err != nil {
				t.Fatalf("Variant() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Variant() = %#v, expected %#v", got, tt.expected)
			}
		})
	}
}

func TestSpecVariantInvalidParameter(t *testing.T) {
	spec := Spec{Type: TypeCostReduction, Parameters: Parameters{"reduction_percentage": "a lot"}}
	if _, err := spec.Variant(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Variant() error = %v, expected ErrInvalidParameter", err)
	}
}

func TestDisplayDescription(t *testing.T) {
	if got := (Spec{Type: TypePaymentDelay}).DisplayDescription(); got != "Scenario: payment_delay" {
		t.Errorf("DisplayDescription() = %q", got)
	}
	if got := (Spec{Type: TypePaymentDelay, Description: "late"}).DisplayDescription(); got != "late" {
		t.Errorf("DisplayDescription() = %q", got)
	}
}

func TestTypeKnown(t *testing.T) {
	for _, typ := range []Type{TypePaymentDelay, TypeCostReduction, TypeRevenueIncrease, TypeProjectDelay, TypeCustom} {
		if !typ.Known() {
			t.Errorf("%s should be known", typ)
		}
	}
	if Type("revenue_decrease").Known() {
		t.Error("revenue_decrease should not be known")
	}
}

func TestResolveCustom(t *testing.T) {
	spec, err := Resolve(Selection{Custom: true, Text: "Minor cost cut"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	expected := Spec{
		Type:        TypeCustom,
		Parameters:  Parameters{constants.ParamCustomDescription: "Minor cost cut"},
		Description: "Minor cost cut",
	}
	if !reflect.DeepEqual(spec, expected) {
		t.Errorf("Resolve() = %#v, expected %#v", spec, expected)
	}
}

func TestResolveMissingSelection(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
	}{
		{"Empty custom text", Selection{Custom: true, Text: ""}},
		{"Whitespace custom text", Selection{Custom: true, Text: "  \t\n"}},
		{"No predefined", Selection{}},
		{"Predefined without type", Selection{Predefined: &Predefined{Name: "x", Parameters: Parameters{"delay_days": 30}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.sel); !errors.Is(err, ErrMissingSelection) {
				t.Errorf("Resolve() error = %v, expected ErrMissingSelection", err)
			}
		})
	}
}

func TestResolvePredefined(t *testing.T) {
	predefined := &Predefined{
		ID:          "payment-delay-30",
		Name:        "Delayed Payment",
		Description: "Impact of clients delaying payments by 30 days",
		Parameters:  Parameters{"scenario_type": "payment_delay", "delay_days": 30},
	}

	spec, err := Resolve(Selection{Predefined: predefined})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if spec.Type != TypePaymentDelay {
		t.Errorf("Type = %q, expected payment_delay", spec.Type)
	}
	if _, ok := spec.Parameters["scenario_type"]; ok {
		t.Error("scenario_type should not be copied into parameters")
	}
	if spec.Parameters["delay_days"] != 30 {
		t.Errorf("delay_days = %v, expected 30", spec.Parameters["delay_days"])
	}
	if spec.Description != predefined.Description {
		t.Errorf("Description = %q", spec.Description)
	}
	if _, ok := predefined.Parameters["scenario_type"]; !ok {
		t.Error("Resolve mutated the predefined parameters")
	}
}

func TestPredefinedCatalog(t *testing.T) {
	b := &dataset.Baseline{
		Months: []string{"Jan"},
		Projects: []dataset.Project{
			{Name: "Website Redesign"},
			{Name: ""},
			{Name: "Mobile App"},
			{Name: "Data Platform"},
		},
	}

	catalog := PredefinedCatalog(b)
	if len(catalog) != 5 {
		t.Fatalf("len(catalog) = %d, expected 5", len(catalog))
	}

	entry, ok := FindPredefined(catalog, "project-delay-website-redesign")
	if !ok {
		t.Fatal("expected a project delay entry for Website Redesign")
	}
	if entry.Name != "Website Redesign Delay" {
		t.Errorf("Name = %q", entry.Name)
	}

	spec, err := Resolve(Selection{Predefined: &entry})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	v, err := spec.Variant()
	if err != nil {
		t.Fatalf("Variant() error = %v", err)
	}
	if !reflect.DeepEqual(v, ProjectDelay{ProjectName: "Website Redesign", DelayMonths: 2}) {
		t.Errorf("Variant() = %#v", v)
	}

	if _, ok := FindPredefined(catalog, "project-delay-data-platform"); ok {
		t.Error("catalog should include at most two project scenarios")
	}
	if got := len(PredefinedCatalog(nil)); got != 3 {
		t.Errorf("len(PredefinedCatalog(nil)) = %d, expected 3", got)
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Website Redesign": "website-redesign",
		"  Q3 -- Launch! ": "q3-launch",
		"ERP":              "erp",
		"!!!":              "project",
	}
	for in, want := range tests {
		if got := slug(in); got != want {
			t.Errorf("slug(%q) = %q, expected %q", in, got, want)
		}
	}
}

// TestPredefinedCatalogUniqueIDs checks that project names which slug to the
// same ID still get distinct, resolvable entries.
func TestPredefinedCatalogUniqueIDs(t *testing.T) {
	b := &dataset.Baseline{
		Months: []string{"Jan"},
		Projects: []dataset.Project{
			{Name: "A B"},
			{Name: "A-B"},
		},
	}

	catalog := PredefinedCatalog(b)
	ids := make(map[string]bool, len(catalog))
	for _, p := range catalog {
		if ids[p.ID] {
			t.Errorf("duplicate catalog ID %q", p.ID)
		}
		ids[p.ID] = true
	}

	tests := map[string]string{
		"project-delay-a-b":   "A B",
		"project-delay-a-b-2": "A-B",
	}
	for id, project := range tests {
		entry, ok := FindPredefined(catalog, id)
		if !ok {
			t.Errorf("FindPredefined(%q) found nothing", id)
			continue
		}
		if got := entry.Parameters["project_name"]; got != project {
			t.Errorf("%s: project_name = %v, expected %q", id, got, project)
		}
	}
}
