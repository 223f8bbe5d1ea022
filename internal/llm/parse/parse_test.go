// internal/llm/parse/parse_test.go
package parse

import (
	"strings"
	"testing"

	"github.com/orgpilot/orgpilot/internal/core"
)

func TestParse_ValidResponse(t *testing.T) {
	raw := `{"extractedData":{"dataType":"organizationName","value":"Acme Corporation"},"nextQuestion":{"dataType":"industry","question":"What industry?"},"conversationalResponse":"Got it!"}`

	resp := Parse(raw)

	if resp.ExtractedData == nil {
		t.Fatal("expected extractedData")
	}
	if resp.ExtractedData.DataType != core.DataOrganizationName {
		t.Errorf("expected organizationName, got %s", resp.ExtractedData.DataType)
	}
	if resp.ExtractedData.Value != "Acme Corporation" {
		t.Errorf("expected Acme Corporation, got %v", resp.ExtractedData.Value)
	}
	if resp.NextQuestion == nil || resp.NextQuestion.DataType != core.DataIndustry {
		t.Errorf("expected industry next question, got %+v", resp.NextQuestion)
	}
	if resp.Reply != "Got it!" {
		t.Errorf("expected reply preserved, got %q", resp.Reply)
	}
}

func TestParse_SurroundingProse(t *testing.T) {
	raw := "Sure! Here is the JSON you asked for:\n" +
		`{"extractedData":null,"nextQuestion":{"dataType":"ceoName","question":"Who is the CEO?"},"conversationalResponse":"Thanks!"}` +
		"\nLet me know if you need anything else."

	resp := Parse(raw)

	if resp.NextQuestion == nil || resp.NextQuestion.DataType != core.DataCEOName {
		t.Fatalf("expected ceoName question, got %+v", resp.NextQuestion)
	}
	if resp.ExtractedData != nil {
		t.Errorf("expected nil extractedData, got %+v", resp.ExtractedData)
	}
}

func TestParse_PicksLongestCandidate(t *testing.T) {
	// A short decoy object precedes the real payload.
	raw := `{"a":1} some text {"extractedData":{"dataType":"industry","value":"tech"},"nextQuestion":null,"conversationalResponse":"Noted."}`

	resp := Parse(raw)

	if resp.ExtractedData == nil || resp.ExtractedData.Value != "tech" {
		t.Fatalf("expected longest candidate to win, got %+v", resp.ExtractedData)
	}
}

func TestParse_NeverErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"prose only", "I cannot answer that."},
		{"truncated object", `{"extractedData":{"dataType":"industry"`},
		{"bare braces", "{}"},
		{"array only", `[1,2,3]`},
		{"missing reply", `{"extractedData":null,"nextQuestion":null}`},
		{"wrong keys", `{"foo":"bar","baz":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Parse(tt.raw)
			if resp == nil {
				t.Fatal("Parse returned nil")
			}
			if resp.NextQuestion == nil || resp.NextQuestion.DataType != core.DataRetry {
				t.Errorf("expected retry fallback, got %+v", resp.NextQuestion)
			}
			if resp.Reply == "" {
				t.Error("expected non-empty conversational response")
			}
		})
	}
}

func TestParse_EmbeddedNewlines(t *testing.T) {
	raw := "{\"extractedData\":null,\"nextQuestion\":{\"dataType\":\"industry\",\"question\":\"What\\nindustry?\"},\"conversationalResponse\":\"ok\"}"

	resp := Parse(raw)

	if resp.NextQuestion == nil {
		t.Fatal("expected next question")
	}
	if strings.Contains(resp.NextQuestion.Question, "\\n") {
		t.Errorf("expected escaped newline replaced, got %q", resp.NextQuestion.Question)
	}
}

func TestFallback_Shape(t *testing.T) {
	f := Fallback()

	if f.ExtractedData != nil {
		t.Error("fallback must not carry extracted data")
	}
	if f.NextQuestion == nil || f.NextQuestion.DataType != core.DataRetry {
		t.Fatalf("expected retry question, got %+v", f.NextQuestion)
	}
	if f.NextQuestion.Question != "I'm having trouble understanding. Could you please provide the information again?" {
		t.Errorf("unexpected question wording: %q", f.NextQuestion.Question)
	}
	if f.Reply != "I'm having trouble processing your request. Please try again." {
		t.Errorf("unexpected reply wording: %q", f.Reply)
	}
}

func TestClean_ControlCharacters(t *testing.T) {
	in := "{\"a\":\x01\"b\x7f\"}"
	out := Clean(in)
	if strings.ContainsAny(out, "\x01\x7f") {
		t.Errorf("control characters survived: %q", out)
	}
}

func TestBraceCandidates_IgnoresBracesInStrings(t *testing.T) {
	raw := `{"conversationalResponse":"use {curly} braces","extractedData":null,"nextQuestion":null}`
	got := braceCandidates(raw)
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d: %v", len(got), got)
	}
	if got[0] != raw {
		t.Errorf("candidate clipped: %q", got[0])
	}
}
