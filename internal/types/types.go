package types

import (
	"regexp"

	"github.com/google/uuid"
)

var (
	positiveNumericRegex    = regexp.MustCompile(`^[1-9][0-9]*$`)
	nonNegativeNumericRegex = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)
)

// StringPtr converts a string to a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// StringNilOrEmpty checks if a pointer to a string is nil or empty
func StringNilOrEmpty(s *string) bool {
	return s == nil || *s == ""
}

// SafeString returns a safe string from a pointer to a string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsPositiveNumeric checks if a string is a valid positive numeric value
func IsPositiveNumeric(s string) bool {
	return positiveNumericRegex.MatchString(s)
}

// IsNonNegativeNumeric checks if a string is zero or a positive numeric value without leading zeros
func IsNonNegativeNumeric(s string) bool {
	return nonNegativeNumericRegex.MatchString(s)
}

// UUIDPtr converts a uuid to a pointer to a uuid
func UUIDPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

// ParseUUIDPtr parses an optional uuid string, returning nil for empty input
func ParseUUIDPtr(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
