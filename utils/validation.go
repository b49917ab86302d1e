package utils

import (
	"fmt"
	"strings"
)

const (
	// MaxNameLength bounds space names, canvas names and version labels.
	MaxNameLength = 200
	// MaxDescriptionLength bounds space and version descriptions.
	MaxDescriptionLength = 2000
)

// ValidateName trims the value and checks it is non-empty and within
// the name limit. Returns the trimmed value.
func ValidateName(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewValidation(fmt.Sprintf("%s is required", field))
	}
	if len(trimmed) > MaxNameLength {
		return "", NewValidation(fmt.Sprintf("%s must be at most %d characters", field, MaxNameLength))
	}
	return trimmed, nil
}

// ValidateOptionalName trims the value and checks the name limit.
// An empty value is allowed and returned as "".
func ValidateOptionalName(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > MaxNameLength {
		return "", NewValidation(fmt.Sprintf("%s must be at most %d characters", field, MaxNameLength))
	}
	return trimmed, nil
}

// ValidateDescription checks the description limit. Descriptions are
// stored as supplied, only the length is bounded.
func ValidateDescription(field, value string) (string, error) {
	if len(value) > MaxDescriptionLength {
		return "", NewValidation(fmt.Sprintf("%s must be at most %d characters", field, MaxDescriptionLength))
	}
	return value, nil
}
