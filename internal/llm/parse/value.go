package parse

import (
	"encoding/json"
	"strings"
)

// Value extracts an arbitrary JSON value (object or array) from raw model
// output. Unlike Parse it imposes no shape on the result; the per-dataType
// validator decides whether the value is usable. The second return is false
// when no JSON value could be recovered.
func Value(raw string) (any, bool) {
	candidate := valueCandidate(raw)
	if candidate == "" {
		return nil, false
	}

	cleaned := Clean(candidate)

	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err == nil {
		return v, true
	}
	if err := json.Unmarshal([]byte(lenientRepair(cleaned)), &v); err == nil {
		return v, true
	}
	return nil, false
}

// valueCandidate returns the first balanced {...} or [...] substring of s.
func valueCandidate(s string) string {
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')

	start := objStart
	open, close := byte('{'), byte('}')
	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start = arrStart
		open, close = '[', ']'
	}
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
