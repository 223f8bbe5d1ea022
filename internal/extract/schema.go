// Package extract turns free-text user replies into the structured values a
// collection session needs, using AI extraction with a bounded retry loop and
// a deterministic positional fallback.
package extract

import (
	"fmt"
	"strings"

	"github.com/orgpilot/orgpilot/internal/core"
)

// Kind classifies the shape a dataType's value must have.
type Kind int

const (
	// KindList is a non-empty sequence of strings.
	KindList Kind = iota
	// KindText is a single non-empty string.
	KindText
	// KindFields is an object whose named sub-fields must all be present.
	KindFields
)

// Schema is the declarative shape contract for one dataType. The same table
// drives AI-output validation and positional fallback mapping, so the two can
// never disagree about field names or order.
type Schema struct {
	Kind     Kind
	Fields   []string // canonical order, KindFields only
	MaxItems int      // KindList only
}

// Schemas maps each strategy dataType to its shape contract.
var Schemas = map[core.DataType]Schema{
	core.DataOrganizationProblems: {Kind: KindList, MaxItems: 3},
	core.DataUserStrategy:         {Kind: KindFields, Fields: []string{"targetSegments", "growthPlans"}},
	core.DataValueProposition:     {Kind: KindText},
	core.DataSolutionStrategy:     {Kind: KindFields, Fields: []string{"solution", "distributionStrategy"}},
	core.DataManagementStrategy:   {Kind: KindText},
	core.DataBusinessOutcomes:     {Kind: KindFields, Fields: []string{"revenueTargets", "timeToHire", "retentionGoals"}},
	core.DataCostStructure:        {Kind: KindFields, Fields: []string{"budgetPerDepartment", "headcountCaps"}},
	core.DataPeopleStrategy:       {Kind: KindFields, Fields: []string{"criticalRoles", "skillPriorities", "benchStrength"}},
}

// Validate checks that v matches the shape contract for dataType.
func Validate(dataType core.DataType, v any) error {
	schema, ok := Schemas[dataType]
	if !ok {
		return core.WrapError(core.ErrUnknownDataType, fmt.Errorf("%s", dataType))
	}
	if v == nil {
		return core.WrapError(core.ErrValidationFailed,
			fmt.Errorf("no data was extracted for %s", dataType))
	}

	switch schema.Kind {
	case KindList:
		items, ok := toStringList(v)
		if !ok || len(items) == 0 {
			return core.WrapError(core.ErrValidationFailed,
				fmt.Errorf("%s requires a non-empty list", dataType))
		}
	case KindText:
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return core.WrapError(core.ErrValidationFailed,
				fmt.Errorf("%s requires a non-empty string", dataType))
		}
	case KindFields:
		m, ok := v.(map[string]any)
		if !ok {
			return core.WrapError(core.ErrValidationFailed,
				fmt.Errorf("%s requires an object", dataType))
		}
		for _, field := range schema.Fields {
			fv, present := m[field]
			if !present {
				return core.WrapError(core.ErrValidationFailed,
					fmt.Errorf("%s is missing %s", dataType, field))
			}
			if s, isStr := fv.(string); isStr && strings.TrimSpace(s) == "" {
				return core.WrapError(core.ErrValidationFailed,
					fmt.Errorf("%s has empty %s", dataType, field))
			}
			if fv == nil {
				return core.WrapError(core.ErrValidationFailed,
					fmt.Errorf("%s has null %s", dataType, field))
			}
		}
	}
	return nil
}

// toStringList accepts []string or a []any of strings.
func toStringList(v any) ([]string, bool) {
	switch items := v.(type) {
	case []string:
		return items, true
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out, true
	default:
		return nil, false
	}
}
