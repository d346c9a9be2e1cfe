package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Extracted is the structured record the model is asked for. Unknown fields are nil.
type Extracted struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	Skills         []string `json:"skills"`
	WorkExperience *string  `json:"work_experience"`
	Summary        *string  `json:"summary"`
}

// ParseError keeps the raw model output that could not be decoded.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response as JSON: %v: %s", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	leadingJSONFence = regexp.MustCompile("(?i)^```json\\s*")
	leadingFence     = regexp.MustCompile("^```")
	leadingJSONLabel = regexp.MustCompile(`(?i)^json\s*`)
	trailingFence    = regexp.MustCompile("```$")
	jsonObject       = regexp.MustCompile(`\{[\s\S]*\}`)
)

// Sanitize strips code fences and labels, then keeps the first '{' through the last '}'.
func Sanitize(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = leadingJSONFence.ReplaceAllString(cleaned, "")
	cleaned = leadingFence.ReplaceAllString(cleaned, "")
	cleaned = leadingJSONLabel.ReplaceAllString(cleaned, "")
	cleaned = trailingFence.ReplaceAllString(cleaned, "")

	if match := jsonObject.FindString(cleaned); match != "" {
		return match
	}
	return cleaned
}

// Parse decodes a model response, coercing loosely typed fields.
func Parse(raw string) (*Extracted, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(Sanitize(raw)), &fields); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	return &Extracted{
		Name:           text(fields["name"]),
		Email:          text(fields["email"]),
		Phone:          text(fields["phone"]),
		Skills:         list(fields["skills"]),
		WorkExperience: text(fields["work_experience"]),
		Summary:        text(fields["summary"]),
	}, nil
}

// text accepts strings, numbers, booleans, arrays of those (joined by newlines) and objects
// (kept as compact JSON). Blank values are nil.
func text(raw json.RawMessage) *string {
	s := plain(raw)
	if s == "" {
		return nil
	}
	return &s
}

func plain(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return ""
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if p := plain(item); p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, "\n")
	case '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return ""
		}
		return buf.String()
	default:
		return string(raw)
	}
}

// list accepts an array of values or a single comma separated string.
func list(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] != '[' {
		var skills []string
		for _, part := range strings.Split(plain(raw), ",") {
			if part = strings.TrimSpace(part); part != "" {
				skills = append(skills, part)
			}
		}
		return skills
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	skills := make([]string, 0, len(items))
	for _, item := range items {
		if s := plain(item); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
