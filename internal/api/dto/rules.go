package dto

import (
	"fmt"
	"strings"

	apperrors "github.com/spec-kit/hirenow-api/pkg/util"
)

// FieldRule is one enumerated constraint on a string field. Each endpoint
// declares its rule set explicitly instead of parsing rule strings at
// request time.
type FieldRule struct {
	Name     string
	Value    string
	Required bool
	MinLen   int
	MaxLen   int
	Email    bool
	OneOf    []string
}

// IntRule bounds an integer field.
type IntRule struct {
	Name  string
	Value int
	Min   int
	Max   int
}

// ValidateFields checks every rule and reports all violations at once with
// field-level detail.
func ValidateFields(rules ...FieldRule) error {
	details := map[string]any{}

	for _, rule := range rules {
		value := strings.TrimSpace(rule.Value)
		if value == "" {
			if rule.Required {
				details[rule.Name] = "required"
			}
			continue
		}
		if rule.MinLen > 0 && len(value) < rule.MinLen {
			details[rule.Name] = fmt.Sprintf("must be at least %d characters", rule.MinLen)
			continue
		}
		if rule.MaxLen > 0 && len(value) > rule.MaxLen {
			details[rule.Name] = fmt.Sprintf("must be at most %d characters", rule.MaxLen)
			continue
		}
		if rule.Email && !strings.Contains(value, "@") {
			details[rule.Name] = "must be a valid email address"
			continue
		}
		if len(rule.OneOf) > 0 {
			allowed := false
			for _, option := range rule.OneOf {
				if value == option {
					allowed = true
					break
				}
			}
			if !allowed {
				details[rule.Name] = "must be one of: " + strings.Join(rule.OneOf, ", ")
			}
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid data", details)
	}
	return nil
}

// ValidateInts checks integer bounds, reporting field-level detail.
func ValidateInts(rules ...IntRule) error {
	details := map[string]any{}
	for _, rule := range rules {
		if rule.Value < rule.Min || rule.Value > rule.Max {
			details[rule.Name] = fmt.Sprintf("must be between %d and %d", rule.Min, rule.Max)
		}
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid data", details)
	}
	return nil
}
