// Package validation collects per-field violations for form submissions.
package validation

import (
	"regexp"
	"strings"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Set records a violation, keeping the first message per field.
func (v Violations) Set(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Required flags the field when the value is empty after trimming.
func Required(field, value, message string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Set(field, message)
	}
}

// Email flags the field when a non-empty value is not a plausible address.
// Empty values pass: the field is optional.
func Email(field, value, message string, v Violations) {
	if value == "" {
		return
	}
	if !emailPattern.MatchString(value) {
		v.Set(field, message)
	}
}
