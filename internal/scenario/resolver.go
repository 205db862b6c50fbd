package scenario

import (
	"fmt"
	"strings"

	"github.com/MahendraD2/CashFlowManagement/pkg/constants"
	"github.com/spf13/cast"
)

// Predefined is a catalog scenario. Parameters carries scenario_type alongside
// the type-specific values.
type Predefined struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Parameters  Parameters `json:"parameters" yaml:"parameters"`
}

// Selection is what the user picked: either free text in custom mode or a
// predefined scenario.
type Selection struct {
	Custom     bool        `json:"custom"`
	Text       string      `json:"text,omitempty"`
	Predefined *Predefined `json:"predefined,omitempty"`
}

// Resolve normalizes a selection into a Spec.
func Resolve(sel Selection) (Spec, error) {
	if sel.Custom {
		text := strings.TrimSpace(sel.Text)
		if text == "" {
			return Spec{}, fmt.Errorf("%w: custom scenario text is empty", ErrMissingSelection)
		}
		return Spec{
			Type:        TypeCustom,
			Parameters:  Parameters{constants.ParamCustomDescription: sel.Text},
			Description: sel.Text,
		}, nil
	}

	if sel.Predefined == nil {
		return Spec{}, fmt.Errorf("%w: no predefined scenario selected", ErrMissingSelection)
	}

	rawType, ok := sel.Predefined.Parameters[constants.ParamScenarioType]
	if !ok {
		return Spec{}, fmt.Errorf("%w: scenario %q has no %s", ErrMissingSelection,
			sel.Predefined.Name, constants.ParamScenarioType)
	}
	scenarioType, err := cast.ToStringE(rawType)
	if err != nil || strings.TrimSpace(scenarioType) == "" {
		return Spec{}, fmt.Errorf("%w: scenario %q has an invalid %s", ErrMissingSelection,
			sel.Predefined.Name, constants.ParamScenarioType)
	}

	params := make(Parameters, len(sel.Predefined.Parameters))
	for key, value := range sel.Predefined.Parameters {
		if key == constants.ParamScenarioType {
			continue
		}
		params[key] = value
	}

	return Spec{
		Type:        Type(strings.TrimSpace(scenarioType)),
		Parameters:  params,
		Description: sel.Predefined.Description,
	}, nil
}
