package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError means no recoverable JSON object exists in a model
// response after all repair attempts. Excerpt holds the first 1000 characters
// of the original text for diagnostics.
type MalformedResponseError struct {
	Excerpt string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %s", e.Excerpt)
}

// ParseModelJSON parses possibly-malformed JSON text returned by a language
// model. Model output is not guaranteed well-formed even when explicitly
// requested, so it tries a sequence of recovery steps before giving up:
// strip code fences, parse directly, extract the first brace-balanced object,
// and finally repair truncated strings and unbalanced brackets.
func ParseModelJSON(text string) (map[string]any, error) {
	original := text
	text = stripCodeFence(text)

	var out map[string]any
	if err := json.Unmarshal([]byte(text), &out); err == nil {
		return out, nil
	}

	start := strings.Index(text, "{")
	if start == -1 {
		return nil, &MalformedResponseError{Excerpt: excerpt(original, 1000)}
	}
	text = text[start:]

	if candidate := extractObject(text); candidate != "" {
		if err := json.Unmarshal([]byte(candidate), &out); err == nil {
			return out, nil
		}
		if err := json.Unmarshal([]byte(repairJSON(candidate)), &out); err == nil {
			return out, nil
		}
	}

	if err := json.Unmarshal([]byte(repairJSON(text)), &out); err == nil {
		return out, nil
	}

	return nil, &MalformedResponseError{Excerpt: excerpt(original, 1000)}
}

// stripCodeFence returns the inner text of a ```json or ``` fenced block,
// or the trimmed input when no fence is present.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	for _, fence := range []string{"```json", "```"} {
		start := strings.Index(text, fence)
		if start == -1 {
			continue
		}
		inner := text[start+len(fence):]
		end := strings.Index(inner, "```")
		if end == -1 {
			continue
		}
		return strings.TrimSpace(inner[:end])
	}

	return text
}

// extractObject returns the first brace-balanced object span, skipping braces
// inside double-quoted strings. Returns "" when the object never closes.
func extractObject(s string) string {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}

	return ""
}

// repairJSON fixes truncated string values line by line, then balances any
// unmatched braces and brackets.
func repairJSON(text string) string {
	lines := strings.Split(text, "\n")

	lastContent := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lastContent = i
		}
	}

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}

		// A line with a colon and an odd number of unescaped quotes signals
		// a string value cut off mid-way.
		if !strings.Contains(stripped, ":") || countUnescapedQuotes(stripped)%2 == 0 {
			continue
		}

		colon := strings.Index(stripped, ":")
		key := strings.TrimSpace(stripped[:colon])
		value := strings.TrimSpace(stripped[colon+1:])

		if strings.HasPrefix(value, `"`) && !strings.HasSuffix(value, `"`) {
			switch {
			case strings.HasSuffix(value, ","):
				value = strings.TrimRight(value, ",") + `"`
			case i == lastContent:
				value = value + `"`
			default:
				value = value + `",`
			}
		}

		lines[i] = "  " + key + ": " + value
	}

	result := strings.Join(lines, "\n")

	openBraces := strings.Count(result, "{") - strings.Count(result, "}")
	openBrackets := strings.Count(result, "[") - strings.Count(result, "]")

	if openBrackets > 0 {
		result = strings.TrimRight(result, " \t\n") + strings.Repeat("]", openBrackets)
	}
	if openBraces > 0 {
		result = strings.TrimRight(result, " \t\n") + "\n" + strings.Repeat("}", openBraces)
	}

	return result
}

func countUnescapedQuotes(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '"' && (i == 0 || s[i-1] != '\\') {
			count++
		}
	}
	return count
}

func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
