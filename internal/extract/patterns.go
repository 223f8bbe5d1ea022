package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/orgpilot/orgpilot/internal/core"
)

// fieldPatterns maps each organization dataType to an ordered list of
// matchers; the first capturing match wins. This is the deterministic
// save-path extractor for short free-text answers like "my company is called
// Acme". No model involved.
var fieldPatterns = map[core.DataType][]*regexp.Regexp{
	core.DataOrganizationName: {
		regexp.MustCompile(`(?i)my company(?:'s)? (?:name|is called|is) (?:is )?(.+)`),
		regexp.MustCompile(`(?i)(?:the |our |)(?:organization|company|business)(?:'s)? name is (.+)`),
		regexp.MustCompile(`(?i)(?:it's|its|it is) called (.+)`),
		regexp.MustCompile(`(?i)(?:the |)name (?:of my|of our|of the) (?:company|organization|business) is (.+)`),
		regexp.MustCompile(`(?i)we are called (.+)`),
	},
	core.DataIndustry: {
		regexp.MustCompile(`(?i)(?:we are|we're|my company is|our company is) in (?:the )?(.+?)(?: industry| sector| field| business)?$`),
		regexp.MustCompile(`(?i)(?:the |our |my )(?:industry|sector|field) is (.+)`),
		regexp.MustCompile(`(?i)(?:it's|its|it is) (?:the )?(.+?)(?: industry| sector| field| business)?$`),
	},
	core.DataCEOName: {
		regexp.MustCompile(`(?i)(?:our|the|my) (?:ceo|chief executive officer|boss|leader) is (.+)`),
		regexp.MustCompile(`(?i)(.+?) is (?:our|the|my) (?:ceo|chief executive officer|boss|leader)`),
		regexp.MustCompile(`(?i)(?:it's|its|it is) (.+)`),
	},
	core.DataCEOEmail: {
		regexp.MustCompile(`([a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\.[a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`(?i)(?:the |our |my |ceo'?s |his |her )email (?:address )?is (.+)`),
		regexp.MustCompile(`(?i)(?:it's|its|it is) (.+)`),
	},
	core.DataDepartments: {
		regexp.MustCompile(`(?i)(?:we have|there is|there's) (?:an?|the) (.+?)(?: department| team| division| group| unit)?$`),
		regexp.MustCompile(`(?i)(?:my|our) company(?:'s)? (?:department|team|division|group|unit) is (.+)`),
		regexp.MustCompile(`(?i)(.+?) (?:is|as) (?:a|the|our) (?:department|team|division|group|unit)`),
		regexp.MustCompile(`(?i)(?:the |our |my )(?:department|team|division|group|unit) (?:name )?is (.+)`),
	},
}

var sizeNumber = regexp.MustCompile(`(\d+)(?:\+|-\d+)?`)

// ExtractField pulls the actual value out of a natural-language answer for
// the given organization dataType. When no pattern matches, the trimmed
// response is returned as-is.
func ExtractField(dataType core.DataType, response string) string {
	response = strings.TrimSpace(response)

	if dataType == core.DataCompanySize {
		return extractCompanySize(response)
	}

	for _, pattern := range fieldPatterns[dataType] {
		if m := pattern.FindStringSubmatch(response); m != nil && strings.TrimSpace(m[1]) != "" {
			return strings.TrimSpace(m[1])
		}
	}
	return response
}

// extractCompanySize normalizes an employee-count answer to one of the
// accepted brackets.
func extractCompanySize(response string) string {
	for _, bracket := range core.CompanySizeBrackets {
		if strings.Contains(response, bracket) {
			return bracket
		}
	}

	if m := sizeNumber.FindStringSubmatch(response); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			switch {
			case n <= 300:
				return "150-300"
			case n <= 450:
				return "300-450"
			case n <= 600:
				return "450-600"
			case n <= 850:
				return "600-850"
			case n <= 1000:
				return "850-1000"
			default:
				return "1000+"
			}
		}
	}
	return response
}
