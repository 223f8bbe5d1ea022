// internal/extract/patterns_test.go
package extract

import (
	"testing"

	"github.com/orgpilot/orgpilot/internal/core"
)

func TestExtractField(t *testing.T) {
	tests := []struct {
		name     string
		dataType core.DataType
		response string
		want     string
	}{
		{
			name:     "company name phrase",
			dataType: core.DataOrganizationName,
			response: "My company name is Acme Corporation",
			want:     "Acme Corporation",
		},
		{
			name:     "company called",
			dataType: core.DataOrganizationName,
			response: "it's called Initech",
			want:     "Initech",
		},
		{
			name:     "bare name passes through",
			dataType: core.DataOrganizationName,
			response: "Globex",
			want:     "Globex",
		},
		{
			name:     "industry phrase",
			dataType: core.DataIndustry,
			response: "we are in the healthcare industry",
			want:     "healthcare",
		},
		{
			name:     "ceo name",
			dataType: core.DataCEOName,
			response: "our CEO is Jane Smith",
			want:     "Jane Smith",
		},
		{
			name:     "email anywhere in the sentence",
			dataType: core.DataCEOEmail,
			response: "you can reach her at jane.smith@acme.com anytime",
			want:     "jane.smith@acme.com",
		},
		{
			name:     "department phrase",
			dataType: core.DataDepartments,
			response: "we have an Engineering department",
			want:     "Engineering",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractField(tt.dataType, tt.response)
			if got != tt.want {
				t.Errorf("ExtractField(%s, %q) = %q, want %q", tt.dataType, tt.response, got, tt.want)
			}
		})
	}
}

func TestExtractField_CompanySize(t *testing.T) {
	tests := []struct {
		response string
		want     string
	}{
		{"150-300", "150-300"},
		{"we have about 200 employees", "150-300"},
		{"we employ 400 people", "300-450"},
		{"around 500", "450-600"},
		{"700 staff", "600-850"},
		{"900", "850-1000"},
		{"over 2000 employees", "1000+"},
		{"no idea", "no idea"},
	}

	for _, tt := range tests {
		t.Run(tt.response, func(t *testing.T) {
			got := ExtractField(core.DataCompanySize, tt.response)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
