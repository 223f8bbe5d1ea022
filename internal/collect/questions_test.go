// internal/collect/questions_test.go
package collect

import (
	"reflect"
	"testing"

	"github.com/orgpilot/orgpilot/internal/core"
)

func TestMissingOrgFields_Order(t *testing.T) {
	got := MissingOrgFields(nil)
	if !reflect.DeepEqual(got, core.OrgDataTypes) {
		t.Errorf("nil profile should miss everything in order, got %v", got)
	}

	org := &core.OrganizationProfile{
		Name:     "Acme",
		Industry: "manufacturing",
	}
	got = MissingOrgFields(org)
	want := []core.DataType{core.DataCompanySize, core.DataCEOName, core.DataCEOEmail, core.DataDepartments}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMissingOrgFields_Complete(t *testing.T) {
	org := &core.OrganizationProfile{
		Name:        "Acme",
		Industry:    "manufacturing",
		CompanySize: "150-300",
		CEOName:     "Jane Smith",
		CEOEmail:    "jane@acme.com",
		Departments: []core.Department{{Name: "Engineering"}},
	}
	if got := MissingOrgFields(org); len(got) != 0 {
		t.Errorf("expected nothing missing, got %v", got)
	}
}

func TestMissingStrategyFields(t *testing.T) {
	got := MissingStrategyFields(nil)
	if !reflect.DeepEqual(got, core.StrategyDataTypes) {
		t.Errorf("nil strategy should miss everything in order, got %v", got)
	}

	s := &core.BusinessStrategy{
		OrganizationProblems: []string{"attrition"},
		ValueProposition:     "painless hiring",
		UserStrategy:         &core.UserStrategy{TargetSegments: "mid-market"}, // growthPlans missing
	}
	got = MissingStrategyFields(s)
	want := []core.DataType{
		core.DataUserStrategy,
		core.DataSolutionStrategy,
		core.DataManagementStrategy,
		core.DataBusinessOutcomes,
		core.DataCostStructure,
		core.DataPeopleStrategy,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestQuestionFor(t *testing.T) {
	if q := QuestionFor(core.DataIndustry); q == "" {
		t.Error("expected a question for industry")
	}
	if q := QuestionFor("nonsense"); q == "" {
		t.Error("expected the generic question for unknown types")
	}
}
