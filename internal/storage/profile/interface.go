// internal/storage/profile/interface.go
package profile

import (
	"context"
	"fmt"

	"github.com/orgpilot/orgpilot/internal/core"
)

// Store defines the persistence interface for organization and strategy
// records. All writes are idempotent-safe for retry; the store serializes
// writes per user record, so callers need no locking of their own.
type Store interface {
	// Organization returns the user's profile, ErrProfileNotFound if absent.
	Organization(ctx context.Context, userID string) (*core.OrganizationProfile, error)

	// SaveOrganizationField upserts a single profile field, creating the
	// profile on first write.
	SaveOrganizationField(ctx context.Context, userID string, dataType core.DataType, value string) error

	// AddDepartment appends a department. A duplicate name (compared
	// case-insensitively) returns ErrAlreadyExists.
	AddDepartment(ctx context.Context, userID string, dept core.Department) error

	// Strategy returns the user's business strategy, ErrProfileNotFound if absent.
	Strategy(ctx context.Context, userID string) (*core.BusinessStrategy, error)

	// SaveStrategySection upserts one of the eight strategy sections from a
	// dynamically typed extracted value.
	SaveStrategySection(ctx context.Context, userID string, dataType core.DataType, value any) error
}

// setOrganizationField applies a field write to a profile in place.
func setOrganizationField(p *core.OrganizationProfile, dataType core.DataType, value string) error {
	switch dataType {
	case core.DataOrganizationName:
		p.Name = value
	case core.DataIndustry:
		p.Industry = value
	case core.DataCompanySize:
		p.CompanySize = value
	case core.DataCEOName:
		p.CEOName = value
	case core.DataCEOEmail:
		p.CEOEmail = value
	default:
		return core.WrapError(core.ErrUnknownDataType, fmt.Errorf("%s is not an organization field", dataType))
	}
	return nil
}

// setStrategySection applies an extracted value to a strategy in place.
// Values arrive shaped by the extraction schema: a string list, a string, or
// a map of named sub-fields.
func setStrategySection(s *core.BusinessStrategy, dataType core.DataType, value any) error {
	switch dataType {
	case core.DataOrganizationProblems:
		items, ok := stringList(value)
		if !ok {
			return badShape(dataType)
		}
		if len(items) > 3 {
			items = items[:3]
		}
		s.OrganizationProblems = items

	case core.DataValueProposition:
		v, ok := value.(string)
		if !ok {
			return badShape(dataType)
		}
		s.ValueProposition = v

	case core.DataManagementStrategy:
		v, ok := value.(string)
		if !ok {
			return badShape(dataType)
		}
		s.ManagementStrategy = v

	case core.DataUserStrategy:
		m, ok := value.(map[string]any)
		if !ok {
			return badShape(dataType)
		}
		s.UserStrategy = &core.UserStrategy{
			TargetSegments: str(m["targetSegments"]),
			GrowthPlans:    str(m["growthPlans"]),
		}

	case core.DataSolutionStrategy:
		m, ok := value.(map[string]any)
		if !ok {
			return badShape(dataType)
		}
		s.SolutionStrategy = &core.SolutionStrategy{
			Solution:             str(m["solution"]),
			DistributionStrategy: str(m["distributionStrategy"]),
		}

	case core.DataBusinessOutcomes:
		m, ok := value.(map[string]any)
		if !ok {
			return badShape(dataType)
		}
		s.BusinessOutcomes = &core.BusinessOutcomes{
			RevenueTargets: str(m["revenueTargets"]),
			TimeToHire:     str(m["timeToHire"]),
			RetentionGoals: str(m["retentionGoals"]),
		}

	case core.DataCostStructure:
		m, ok := value.(map[string]any)
		if !ok {
			return badShape(dataType)
		}
		s.CostStructure = &core.CostStructure{
			BudgetPerDepartment: str(m["budgetPerDepartment"]),
			HeadcountCaps:       str(m["headcountCaps"]),
		}

	case core.DataPeopleStrategy:
		m, ok := value.(map[string]any)
		if !ok {
			return badShape(dataType)
		}
		s.PeopleStrategy = &core.PeopleStrategy{
			CriticalRoles:   str(m["criticalRoles"]),
			SkillPriorities: str(m["skillPriorities"]),
			BenchStrength:   str(m["benchStrength"]),
		}

	default:
		return core.WrapError(core.ErrUnknownDataType, fmt.Errorf("%s is not a strategy section", dataType))
	}
	return nil
}

func badShape(dataType core.DataType) error {
	return core.WrapError(core.ErrValidationFailed, fmt.Errorf("wrong value shape for %s", dataType))
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func stringList(v any) ([]string, bool) {
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
			out = append(out, s)
		}
		return out, true
	case string:
		return []string{items}, true
	default:
		return nil, false
	}
}
