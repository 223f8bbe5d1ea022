// internal/core/types.go
package core

import "strings"

// DataType names a structured field a collection session can ask about.
type DataType string

// Organization fields, asked in this order.
const (
	DataOrganizationName DataType = "organizationName"
	DataIndustry         DataType = "industry"
	DataCompanySize      DataType = "companySize"
	DataCEOName          DataType = "ceoName"
	DataCEOEmail         DataType = "ceoEmail"
	DataDepartments      DataType = "departments"
)

// Business-strategy sections, asked after the organization fields.
const (
	DataOrganizationProblems DataType = "organizationProblems"
	DataUserStrategy         DataType = "userStrategy"
	DataValueProposition     DataType = "valueProposition"
	DataSolutionStrategy     DataType = "solutionStrategy"
	DataManagementStrategy   DataType = "managementStrategy"
	DataBusinessOutcomes     DataType = "businessOutcomes"
	DataCostStructure        DataType = "costStructure"
	DataPeopleStrategy       DataType = "peopleStrategy"
)

// DataRetry is the marker used by the parser's fallback next-question.
const DataRetry DataType = "retry"

// OrgDataTypes is the canonical collection order for organization fields.
var OrgDataTypes = []DataType{
	DataOrganizationName,
	DataIndustry,
	DataCompanySize,
	DataCEOName,
	DataCEOEmail,
	DataDepartments,
}

// StrategyDataTypes is the canonical collection order for strategy sections.
var StrategyDataTypes = []DataType{
	DataOrganizationProblems,
	DataUserStrategy,
	DataValueProposition,
	DataSolutionStrategy,
	DataManagementStrategy,
	DataBusinessOutcomes,
	DataCostStructure,
	DataPeopleStrategy,
}

// CompanySizeBrackets are the accepted employee-count ranges.
var CompanySizeBrackets = []string{
	"150-300", "300-450", "450-600", "600-850", "850-1000", "1000+",
}

// Department is a department within an organization profile.
type Department struct {
	Name      string `json:"name"`
	HeadName  string `json:"headName"`
	HeadEmail string `json:"headEmail"`
	Role      string `json:"role"`
	ReportsTo string `json:"reportsTo"`
}

// OrganizationProfile holds the structural data for one user's company.
// Exactly one profile exists per user; department names are unique
// case-insensitively within a profile.
type OrganizationProfile struct {
	UserID      string       `json:"userId"`
	Name        string       `json:"name"`
	Industry    string       `json:"industry"`
	CompanySize string       `json:"companySize"`
	CEOName     string       `json:"ceoName"`
	CEOEmail    string       `json:"ceoEmail"`
	Departments []Department `json:"departments"`
}

// HasDepartment reports whether a department with the given name exists,
// compared case-insensitively.
func (p *OrganizationProfile) HasDepartment(name string) bool {
	for _, d := range p.Departments {
		if strings.EqualFold(d.Name, name) {
			return true
		}
	}
	return false
}

// UserStrategy captures target segments and growth plans.
type UserStrategy struct {
	TargetSegments string `json:"targetSegments"`
	GrowthPlans    string `json:"growthPlans"`
}

// SolutionStrategy captures the offering and how it is distributed.
type SolutionStrategy struct {
	Solution             string `json:"solution"`
	DistributionStrategy string `json:"distributionStrategy"`
}

// BusinessOutcomes captures revenue, hiring and retention goals.
type BusinessOutcomes struct {
	RevenueTargets string `json:"revenueTargets"`
	TimeToHire     string `json:"timeToHire"`
	RetentionGoals string `json:"retentionGoals"`
}

// CostStructure captures budget and headcount constraints.
type CostStructure struct {
	BudgetPerDepartment string `json:"budgetPerDepartment"`
	HeadcountCaps       string `json:"headcountCaps"`
}

// PeopleStrategy captures roles, skills and succession planning.
type PeopleStrategy struct {
	CriticalRoles   string `json:"criticalRoles"`
	SkillPriorities string `json:"skillPriorities"`
	BenchStrength   string `json:"benchStrength"`
}

// BusinessStrategy holds the eight strategy sections for one user.
// At most one exists per user; each section is optional until filled.
type BusinessStrategy struct {
	UserID               string            `json:"userId"`
	OrganizationProblems []string          `json:"organizationProblems"`
	UserStrategy         *UserStrategy     `json:"userStrategy"`
	ValueProposition     string            `json:"valueProposition"`
	SolutionStrategy     *SolutionStrategy `json:"solutionStrategy"`
	ManagementStrategy   string            `json:"managementStrategy"`
	BusinessOutcomes     *BusinessOutcomes `json:"businessOutcomes"`
	CostStructure        *CostStructure    `json:"costStructure"`
	PeopleStrategy       *PeopleStrategy   `json:"peopleStrategy"`
}

// Complete reports whether every section has its required sub-fields filled.
func (s *BusinessStrategy) Complete() bool {
	if s == nil {
		return false
	}
	if len(s.OrganizationProblems) == 0 || s.ValueProposition == "" || s.ManagementStrategy == "" {
		return false
	}
	if s.UserStrategy == nil || s.UserStrategy.TargetSegments == "" || s.UserStrategy.GrowthPlans == "" {
		return false
	}
	if s.SolutionStrategy == nil || s.SolutionStrategy.Solution == "" || s.SolutionStrategy.DistributionStrategy == "" {
		return false
	}
	if s.BusinessOutcomes == nil || s.BusinessOutcomes.RevenueTargets == "" ||
		s.BusinessOutcomes.TimeToHire == "" || s.BusinessOutcomes.RetentionGoals == "" {
		return false
	}
	if s.CostStructure == nil || s.CostStructure.BudgetPerDepartment == "" || s.CostStructure.HeadcountCaps == "" {
		return false
	}
	if s.PeopleStrategy == nil || s.PeopleStrategy.CriticalRoles == "" ||
		s.PeopleStrategy.SkillPriorities == "" || s.PeopleStrategy.BenchStrength == "" {
		return false
	}
	return true
}
