package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindClassification(t *testing.T) {
	assert.True(t, IsNotFound(NotFoundError("order", "abc")))
	assert.True(t, IsConflict(ConflictError("table", "table is not available")))
	assert.True(t, IsInUse(InUseError("menu item", "it appears in existing orders")))
	assert.True(t, IsValidation(ValidationError("party_size", "must be positive")))

	assert.Equal(t, KindUnexpected, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnexpected, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("placing order: %w", ConflictError("table", "table is not available"))
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}

func TestUnexpectedErrorWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := UnexpectedError("load order stats", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindUnexpected, KindOf(err))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "order abc: not found", NotFoundError("order", "abc").Error())
	assert.Equal(t, "table: table is not available", ConflictError("table", "table is not available").Error())
}
