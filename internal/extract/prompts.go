package extract

import (
	"fmt"

	"github.com/orgpilot/orgpilot/internal/core"
)

// promptSpecs describe, per dataType, what the model should pull out of the
// user's reply and how to format it.
var promptSpecs = map[core.DataType]struct {
	intro  string
	asked  string
	detail string
	format string
}{
	core.DataOrganizationProblems: {
		intro:  "Extract the top organizational problems from the following text.",
		asked:  "The user was asked to define their top 3 organizational problems.",
		detail: "Extract up to 3 distinct problems. If fewer than 3 are mentioned, that's fine.",
		format: "Format your response as a JSON array of strings, each representing one problem.",
	},
	core.DataUserStrategy: {
		intro:  "Extract the user & organizational strategy from the following text.",
		asked:  "The user was asked about their target segments and growth plans.",
		detail: "Extract:\n1. Target segments: Who the company serves or targets\n2. Growth plans: How they plan to grow or expand",
		format: `Format your response as a JSON object with "targetSegments" and "growthPlans" fields.`,
	},
	core.DataValueProposition: {
		intro:  "Extract the unique value proposition from the following text.",
		asked:  "The user was asked about what makes their company different.",
		format: "Format your response as a simple string containing the value proposition.",
	},
	core.DataSolutionStrategy: {
		intro:  "Extract the solution and distribution strategy from the following text.",
		asked:  "The user was asked about their solution and how they market/roll out initiatives.",
		detail: "Extract:\n1. Solution: What product/service they offer\n2. Distribution strategy: How they market and distribute their solution",
		format: `Format your response as a JSON object with "solution" and "distributionStrategy" fields.`,
	},
	core.DataManagementStrategy: {
		intro:  "Extract the management & systems strategy from the following text.",
		asked:  "The user was asked about their tools, processes, and governance structures.",
		format: "Format your response as a simple string containing the management strategy.",
	},
	core.DataBusinessOutcomes: {
		intro:  "Extract the key business outcomes from the following text.",
		asked:  "The user was asked about revenue targets, time-to-hire goals, and retention objectives.",
		detail: "Extract:\n1. Revenue targets: Financial goals\n2. Time-to-hire: Recruitment timeline goals\n3. Retention goals: Employee retention objectives",
		format: `Format your response as a JSON object with "revenueTargets", "timeToHire", and "retentionGoals" fields.`,
	},
	core.DataCostStructure: {
		intro:  "Extract the cost structure constraints from the following text.",
		asked:  "The user was asked about budget per department and headcount caps.",
		detail: "Extract:\n1. Budget per department: Financial allocation by department\n2. Headcount caps: Limits on team sizes",
		format: `Format your response as a JSON object with "budgetPerDepartment" and "headcountCaps" fields.`,
	},
	core.DataPeopleStrategy: {
		intro:  "Extract the people strategy from the following text.",
		asked:  "The user was asked about critical roles, skill priorities, and bench strength.",
		detail: "Extract:\n1. Critical roles: Key positions in the organization\n2. Skill priorities: Important skills for the organization\n3. Bench strength: Succession planning and talent pipeline",
		format: `Format your response as a JSON object with "criticalRoles", "skillPriorities", and "benchStrength" fields.`,
	},
}

// ExtractionPrompt builds the per-dataType prompt sent to the model.
func ExtractionPrompt(dataType core.DataType, userResponse string) (string, error) {
	spec, ok := promptSpecs[dataType]
	if !ok {
		return "", core.WrapError(core.ErrUnknownDataType, fmt.Errorf("%s", dataType))
	}

	prompt := spec.intro + "\n" + spec.asked + "\n\n" +
		fmt.Sprintf("User response: %q\n", userResponse)
	if spec.detail != "" {
		prompt += "\n" + spec.detail + "\n"
	}
	prompt += "\n" + spec.format +
		"\n\nYour response should be valid JSON that can be parsed directly. Do not include any explanations, just the JSON."
	return prompt, nil
}
