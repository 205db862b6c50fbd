// Package scenario defines scenario requests, their strongly typed
// variants, and the resolver that turns a user selection into a Spec.
package scenario

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
	"github.com/spf13/cast"
)

var (
	// ErrMissingSelection is returned when no predefined scenario is selected
	// or the custom scenario text is blank.
	ErrMissingSelection = errors.New("no scenario selected")

	// ErrInvalidParameter is returned when a scenario parameter cannot be decoded.
	ErrInvalidParameter = errors.New("invalid scenario parameter")
)

// Type identifies a scenario family.
type Type string

const (
	TypePaymentDelay    Type = constants.ScenarioTypePaymentDelay
	TypeCostReduction   Type = constants.ScenarioTypeCostReduction
	TypeRevenueIncrease Type = constants.ScenarioTypeRevenueIncrease
	TypeProjectDelay    Type = constants.ScenarioTypeProjectDelay
	TypeCustom          Type = constants.ScenarioTypeCustom
)

// Known reports whether t is one of the recognized scenario types.
func (t Type) Known() bool {
	switch t {
	case TypePaymentDelay, TypeCostReduction, TypeRevenueIncrease, TypeProjectDelay, TypeCustom:
		return true
	}
	return false
}

// Parameters holds the type-specific scenario parameters as received.
type Parameters map[string]interface{}

// Spec is a resolved scenario request. A Spec is treated as immutable.
type Spec struct {
	Type        Type       `json:"type" yaml:"type"`
	Parameters  Parameters `json:"parameters" yaml:"parameters"`
	Description string     `json:"description" yaml:"description"`
}

// DisplayDescription returns the description, or "Scenario: <type>" when blank.
func (s Spec) DisplayDescription() string {
	if strings.TrimSpace(s.Description) != "" {
		return s.Description
	}
	return fmt.Sprintf("Scenario: %s", s.Type)
}

// Variant is the decoded, strongly typed form of a Spec. The concrete types
// are PaymentDelay, CostReduction, RevenueIncrease, ProjectDelay and Custom.
type Variant interface {
	Type() Type
	isVariant()
}

// PaymentDelay pushes a share of each month's inflows into later months.
type PaymentDelay struct {
	DelayDays float64
}

// CostReduction cuts total expenses by a percentage.
type CostReduction struct {
	ReductionPercentage float64
}

// RevenueIncrease grows total revenue by a percentage.
type RevenueIncrease struct {
	IncreasePercentage float64
}

// ProjectDelay slips a named project by a number of months.
type ProjectDelay struct {
	ProjectName string
	DelayMonths float64
}

// Custom is driven entirely by keywords in its free-text description.
type Custom struct {
	Description string
}

func (PaymentDelay) Type() Type    { return TypePaymentDelay }
func (CostReduction) Type() Type   { return TypeCostReduction }
func (RevenueIncrease) Type() Type { return TypeRevenueIncrease }
func (ProjectDelay) Type() Type    { return TypeProjectDelay }
func (Custom) Type() Type          { return TypeCustom }

func (PaymentDelay) isVariant()    {}
func (CostReduction) isVariant()   {}
func (RevenueIncrease) isVariant() {}
func (ProjectDelay) isVariant()    {}
func (Custom) isVariant()          {}

// Variant decodes the Spec into its typed form. Defaults apply only to absent
// parameters. Any type outside the known set decodes to Custom.
func (s Spec) Variant() (Variant, error) {
	switch s.Type {
	case TypePaymentDelay:
		days, err := s.Parameters.floatParam(constants.ParamDelayDays, constants.DefaultDelayDays)
		if err != nil {
			return nil, err
		}
		return PaymentDelay{DelayDays: days}, nil
	case TypeCostReduction:
		pct, err := s.Parameters.floatParam(constants.ParamReductionPercentage, constants.DefaultReductionPercentage)
		if err != nil {
			return nil, err
		}
		return CostReduction{ReductionPercentage: pct}, nil
	case TypeRevenueIncrease:
		pct, err := s.Parameters.floatParam(constants.ParamIncreasePercentage, constants.DefaultIncreasePercentage)
		if err != nil {
			return nil, err
		}
		return RevenueIncrease{IncreasePercentage: pct}, nil
	case TypeProjectDelay:
		name, err := s.Parameters.stringParam(constants.ParamProjectName)
		if err != nil {
			return nil, err
		}
		months, err := s.Parameters.floatParam(constants.ParamDelayMonths, constants.DefaultProjectDelayMonths)
		if err != nil {
			return nil, err
		}
		return ProjectDelay{ProjectName: name, DelayMonths: months}, nil
	default:
		description := s.Description
		if strings.TrimSpace(description) == "" {
			description, _ = s.Parameters.stringParam(constants.ParamCustomDescription)
		}
		return Custom{Description: description}, nil
	}
}

func (p Parameters) floatParam(key string, def float64) (float64, error) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return def, nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidParameter, key, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s: %v is not a finite number", ErrInvalidParameter, key, v)
	}
	return v, nil
}

func (p Parameters) stringParam(key string) (string, error) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return "", nil
	}
	v, err := cast.ToStringE(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidParameter, key, err)
	}
	return v, nil
}
