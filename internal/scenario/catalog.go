package scenario

import (
	"fmt"
	"strings"

	"github.com/MahendraD2/CashFlowManagement/internal/dataset"
	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
)

// PredefinedCatalog lists the built-in scenarios for a dataset: payment delay,
// cost reduction and revenue increase, followed by a delay scenario for each
// of the first projects in the dataset.
func PredefinedCatalog(b *dataset.Baseline) []Predefined {
	catalog := []Predefined{
		{
			ID:          "payment-delay-30",
			Name:        "Delayed Payment",
			Description: "Impact of clients delaying payments by 30 days",
			Parameters: Parameters{
				constants.ParamScenarioType: constants.ScenarioTypePaymentDelay,
				constants.ParamDelayDays:    30,
			},
		},
		{
			ID:          "cost-reduction-10",
			Name:        "Cost Reduction",
			Description: "Impact of reducing operational costs by 10%",
			Parameters: Parameters{
				constants.ParamScenarioType:        constants.ScenarioTypeCostReduction,
				constants.ParamReductionPercentage: 10,
			},
		},
		{
			ID:          "revenue-increase-15",
			Name:        "Revenue Increase",
			Description: "Impact of increasing revenue by 15%",
			Parameters: Parameters{
				constants.ParamScenarioType:       constants.ScenarioTypeRevenueIncrease,
				constants.ParamIncreasePercentage: 15,
			},
		},
	}

	if b == nil {
		return catalog
	}

	used := make(map[string]bool, len(catalog)+constants.MaxPredefinedProjectScenarios)
	for _, p := range catalog {
		used[p.ID] = true
	}

	added := 0
	for _, project := range b.Projects {
		if added == constants.MaxPredefinedProjectScenarios {
			break
		}
		if strings.TrimSpace(project.Name) == "" {
			continue
		}
		catalog = append(catalog, Predefined{
			ID:          uniqueID(used, "project-delay-"+slug(project.Name)),
			Name:        fmt.Sprintf("%s Delay", project.Name),
			Description: fmt.Sprintf("Impact of delaying %s by 2 months", project.Name),
			Parameters: Parameters{
				constants.ParamScenarioType: constants.ScenarioTypeProjectDelay,
				constants.ParamProjectName:  project.Name,
				constants.ParamDelayMonths:  2,
			},
		})
		added++
	}

	return catalog
}

// FindPredefined returns the catalog entry with the given ID.
func FindPredefined(catalog []Predefined, id string) (Predefined, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Predefined{}, false
}

// uniqueID claims base in used, appending -2, -3, ... when it is taken.
func uniqueID(used map[string]bool, base string) string {
	id := base
	for n := 2; used[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	used[id] = true
	return id
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	if s := strings.TrimSuffix(b.String(), "-"); s != "" {
		return s
	}
	return "project"
}
