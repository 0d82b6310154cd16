package court

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateCase checks the invariants the session relies on: all narrative
// fields present, evidence names unique, at least one witness, a known verdict.
func ValidateCase(c Case) []ValidationError {
	var errs []ValidationError

	required := []struct {
		path  string
		value string
	}{
		{"$.title", c.Title},
		{"$.defendantName", c.DefendantName},
		{"$.crime", c.Crime},
		{"$.summary", c.Summary},
		{"$.prosecutionOpening", c.ProsecutionOpening},
		{"$.defenseOpening", c.DefenseOpening},
		{"$.reasoning", c.Reasoning},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			errs = append(errs, ValidationError{Path: field.path, Message: "required"})
		}
	}

	if c.Evidence == nil {
		errs = append(errs, ValidationError{Path: "$.evidence", Message: "required (use [] if none)"})
	}
	seen := map[string]int{}
	for i, ev := range c.Evidence {
		path := fmt.Sprintf("$.evidence[%d]", i)
		name := strings.TrimSpace(ev.Item)
		if name == "" {
			errs = append(errs, ValidationError{Path: path + ".item", Message: "required"})
			continue
		}
		if prev, ok := seen[ev.Item]; ok {
			errs = append(errs, ValidationError{
				Path:    path + ".item",
				Message: fmt.Sprintf("duplicate evidence name %q (also at index %d)", ev.Item, prev),
			})
			continue
		}
		seen[ev.Item] = i
	}

	if len(c.Witnesses) == 0 {
		errs = append(errs, ValidationError{Path: "$.witnesses", Message: "at least one witness required"})
	}
	for i, w := range c.Witnesses {
		if strings.TrimSpace(w.Name) == "" {
			errs = append(errs, ValidationError{Path: fmt.Sprintf("$.witnesses[%d].name", i), Message: "required"})
		}
	}

	if c.KeyPoints == nil {
		errs = append(errs, ValidationError{Path: "$.keyPoints", Message: "required (use [] if none)"})
	}

	if !c.CorrectVerdict.Valid() {
		errs = append(errs, ValidationError{
			Path:    "$.correctVerdict",
			Message: fmt.Sprintf("invalid verdict %q", c.CorrectVerdict),
		})
	}

	return errs
}

// JoinValidationErrors renders errs as a single bulleted message.
func JoinValidationErrors(errs []ValidationError) string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, e.Error())
	}
	return "- " + strings.Join(lines, "\n- ")
}
