package apiutil

import (
	"strconv"
	"strings"
)

// ParseChannelField parses one color channel. Out-of-range values are left
// for models.Clamp; only non-integers are rejected.
func ParseChannelField(raw string, field string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, FieldError{Field: field, Reason: "is required"}
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, FieldError{Field: field, Reason: "must be an integer"}
	}
	return value, nil
}

// ParseOptionalPositiveInt returns fallback for an empty value.
func ParseOptionalPositiveInt(raw string, field string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, FieldError{Field: field, Reason: "must be greater than 0"}
	}
	return value, nil
}
