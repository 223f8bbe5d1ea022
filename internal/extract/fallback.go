package extract

import (
	"strings"

	"github.com/orgpilot/orgpilot/internal/core"
)

// SplitSegments splits free text on sentence, comma and newline delimiters,
// trimming each segment and dropping empties.
func SplitSegments(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == ',' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FallbackExtract deterministically maps raw user text onto the shape the
// dataType requires: segment i fills field i in canonical order, reusing the
// first segment for any field beyond the available segment count. It cannot
// fail, which is what guarantees the collection loop terminates.
func FallbackExtract(dataType core.DataType, userResponse string) any {
	schema, ok := Schemas[dataType]
	if !ok {
		return strings.TrimSpace(userResponse)
	}

	switch schema.Kind {
	case KindList:
		segments := SplitSegments(userResponse)
		if len(segments) == 0 {
			return []string{strings.TrimSpace(userResponse)}
		}
		if schema.MaxItems > 0 && len(segments) > schema.MaxItems {
			segments = segments[:schema.MaxItems]
		}
		return segments

	case KindText:
		return strings.TrimSpace(userResponse)

	case KindFields:
		segments := SplitSegments(userResponse)
		if len(segments) == 0 {
			segments = []string{strings.TrimSpace(userResponse)}
		}
		out := make(map[string]any, len(schema.Fields))
		for i, field := range schema.Fields {
			if i < len(segments) {
				out[field] = segments[i]
			} else {
				out[field] = segments[0]
			}
		}
		return out
	}
	return strings.TrimSpace(userResponse)
}
