// internal/collect/questions.go
package collect

import (
	"github.com/orgpilot/orgpilot/internal/core"
)

// questions holds the canned prompt for each collectable dataType.
var questions = map[core.DataType]string{
	core.DataOrganizationName: "I need some information about your company before I can assist you. What is the name of your organization?",
	core.DataIndustry:         "What industry does your company operate in? (e.g., Healthcare, Finance, IT, etc.)",
	core.DataCompanySize:      "How many employees does your company have? Please select a range: 150-300, 300-450, 450-600, 600-850, 850-1000, or 1000+",
	core.DataCEOName:          "Who is the CEO of your company?",
	core.DataCEOEmail:         "What is the email address of your CEO?",
	core.DataDepartments:      "Let's add a department to your organization. What is the name of a department in your company?",

	core.DataOrganizationProblems: "What are the top 3 organizational problems your company is facing right now?",
	core.DataUserStrategy:         "Who are your target segments, and how do you plan to grow?",
	core.DataValueProposition:     "What makes your company different? What is your unique value proposition?",
	core.DataSolutionStrategy:     "What solution do you offer, and how do you market and roll out initiatives?",
	core.DataManagementStrategy:   "What tools, processes, and governance structures does your company rely on?",
	core.DataBusinessOutcomes:     "What are your revenue targets, time-to-hire goals, and retention objectives?",
	core.DataCostStructure:        "What is your budget per department, and do you have headcount caps?",
	core.DataPeopleStrategy:       "What are your critical roles, skill priorities, and bench strength plans?",
}

// QuestionFor returns the canned question text for a dataType.
func QuestionFor(dataType core.DataType) string {
	if q, ok := questions[dataType]; ok {
		return q
	}
	return "I need more information about your company. What would you like to tell me?"
}

// MissingOrgFields returns the organization dataTypes not yet filled, in
// collection order. A nil profile means everything is missing.
func MissingOrgFields(org *core.OrganizationProfile) []core.DataType {
	var missing []core.DataType
	for _, dt := range core.OrgDataTypes {
		if org == nil {
			missing = append(missing, dt)
			continue
		}
		switch dt {
		case core.DataOrganizationName:
			if org.Name == "" {
				missing = append(missing, dt)
			}
		case core.DataIndustry:
			if org.Industry == "" {
				missing = append(missing, dt)
			}
		case core.DataCompanySize:
			if org.CompanySize == "" {
				missing = append(missing, dt)
			}
		case core.DataCEOName:
			if org.CEOName == "" {
				missing = append(missing, dt)
			}
		case core.DataCEOEmail:
			if org.CEOEmail == "" {
				missing = append(missing, dt)
			}
		case core.DataDepartments:
			if len(org.Departments) == 0 {
				missing = append(missing, dt)
			}
		}
	}
	return missing
}

// MissingStrategyFields returns the strategy sections not yet filled, in
// collection order.
func MissingStrategyFields(s *core.BusinessStrategy) []core.DataType {
	var missing []core.DataType
	for _, dt := range core.StrategyDataTypes {
		if s == nil {
			missing = append(missing, dt)
			continue
		}
		filled := false
		switch dt {
		case core.DataOrganizationProblems:
			filled = len(s.OrganizationProblems) > 0
		case core.DataUserStrategy:
			filled = s.UserStrategy != nil && s.UserStrategy.TargetSegments != "" && s.UserStrategy.GrowthPlans != ""
		case core.DataValueProposition:
			filled = s.ValueProposition != ""
		case core.DataSolutionStrategy:
			filled = s.SolutionStrategy != nil && s.SolutionStrategy.Solution != "" && s.SolutionStrategy.DistributionStrategy != ""
		case core.DataManagementStrategy:
			filled = s.ManagementStrategy != ""
		case core.DataBusinessOutcomes:
			filled = s.BusinessOutcomes != nil && s.BusinessOutcomes.RevenueTargets != "" &&
				s.BusinessOutcomes.TimeToHire != "" && s.BusinessOutcomes.RetentionGoals != ""
		case core.DataCostStructure:
			filled = s.CostStructure != nil && s.CostStructure.BudgetPerDepartment != "" && s.CostStructure.HeadcountCaps != ""
		case core.DataPeopleStrategy:
			filled = s.PeopleStrategy != nil && s.PeopleStrategy.CriticalRoles != "" &&
				s.PeopleStrategy.SkillPriorities != "" && s.PeopleStrategy.BenchStrength != ""
		}
		if !filled {
			missing = append(missing, dt)
		}
	}
	return missing
}

// isOrgDataType reports whether dt is an organization field.
func isOrgDataType(dt core.DataType) bool {
	for _, t := range core.OrgDataTypes {
		if t == dt {
			return true
		}
	}
	return false
}

// isStrategyDataType reports whether dt is a strategy section.
func isStrategyDataType(dt core.DataType) bool {
	_, ok := questions[dt]
	if !ok {
		return false
	}
	for _, t := range core.StrategyDataTypes {
		if t == dt {
			return true
		}
	}
	return false
}
