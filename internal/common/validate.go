package common

import (
	"strings"

	"github.com/google/uuid"
)

// ParseUUID validates and parses a path or payload identifier.
func ParseUUID(idStr, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, ValidationError(fieldName, "is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, ValidationError(fieldName, "must be a valid UUID")
	}
	return id, nil
}

// ValidatePositiveInt checks integer payload fields with an upper bound.
func ValidatePositiveInt(value int, fieldName string, maxValue int) error {
	if value <= 0 {
		return ValidationError(fieldName, "must be positive")
	}
	if value > maxValue {
		return ValidationError(fieldName, "exceeds the allowed maximum")
	}
	return nil
}

// ValidateNonNegativeFloat checks money and quantity fields.
func ValidateNonNegativeFloat(value float64, fieldName string) error {
	if value < 0 {
		return ValidationError(fieldName, "cannot be negative")
	}
	return nil
}

// ValidatePaginationParams clamps limit/offset to sane values.
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
