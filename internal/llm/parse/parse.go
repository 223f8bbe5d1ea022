// Package parse recovers a structured response from noisy generated text.
// Models asked for bare JSON still wrap it in prose, markdown fences, or
// Python-literal syntax; this package repairs the common malformations and
// always produces a well-formed response, never an error.
package parse

import (
	"encoding/json"
	"strings"

	"github.com/orgpilot/orgpilot/internal/core"
	"github.com/orgpilot/orgpilot/internal/llm"
)

// Fallback returns the fixed response used when nothing parseable could be
// recovered. Callers rely on its exact shape and wording.
func Fallback() *llm.Response {
	return &llm.Response{
		ExtractedData: nil,
		NextQuestion: &llm.Question{
			DataType: core.DataRetry,
			Question: "I'm having trouble understanding. Could you please provide the information again?",
		},
		Reply: "I'm having trouble processing your request. Please try again.",
	}
}

// Parse extracts a structured response from raw model output. Attempts, in
// order: strict parse of the longest brace-balanced candidate after cleaning,
// then a lenient re-parse tolerating Python-style literals, then Fallback.
func Parse(raw string) *llm.Response {
	candidates := braceCandidates(raw)
	if len(candidates) == 0 {
		return Fallback()
	}

	// The most complete JSON is usually the largest candidate.
	jsonStr := candidates[0]
	for _, c := range candidates[1:] {
		if len(c) > len(jsonStr) {
			jsonStr = c
		}
	}

	cleaned := Clean(jsonStr)

	if resp, ok := decode(cleaned); ok {
		return resp
	}
	if resp, ok := decode(lenientRepair(cleaned)); ok {
		return resp
	}
	return Fallback()
}

// braceCandidates returns every balanced {...} substring of s.
func braceCandidates(s string) []string {
	var out []string
	depth := 0
	start := -1
	inString := false
	escaped := false

	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					out = append(out, s[start:i+1])
					start = -1
				}
			}
		}
	}
	return out
}

// Clean strips control characters and undoes the escaping models commonly
// leak into JSON text.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 0x0000 && r <= 0x001F) || (r >= 0x007F && r <= 0x009F) {
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	out = strings.ReplaceAll(out, `\n`, " ")
	out = strings.ReplaceAll(out, `\"`, `"`)
	out = strings.ReplaceAll(out, `\t`, " ")
	out = strings.ReplaceAll(out, `\`, `\\`)
	return out
}

// lenientRepair tolerates output that leaks syntax from another notation:
// single-quoted strings and Python literals.
func lenientRepair(s string) string {
	out := strings.ReplaceAll(s, `'`, `"`)
	out = strings.ReplaceAll(out, "None", "null")
	out = strings.ReplaceAll(out, "True", "true")
	out = strings.ReplaceAll(out, "False", "false")
	return out
}

// decode parses s and validates the result shape: a usable response carries a
// non-empty conversationalResponse and at least one of extractedData or
// nextQuestion (either may be null, but the key must be present).
func decode(s string) (*llm.Response, bool) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &keys); err != nil {
		return nil, false
	}

	_, hasExtracted := keys["extractedData"]
	_, hasNext := keys["nextQuestion"]
	if !hasExtracted && !hasNext {
		return nil, false
	}

	var resp llm.Response
	if err := json.Unmarshal([]byte(s), &resp); err != nil {
		return nil, false
	}
	if strings.TrimSpace(resp.Reply) == "" {
		return nil, false
	}
	return &resp, true
}
