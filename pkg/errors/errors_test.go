package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Clone(ErrNotFound, "article not found"))

	appErr := FromError(wrapped)
	assert.Equal(t, ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "article not found", appErr.Message)
}

func TestFromErrorFallsBackToInternal(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}

func TestIsMatchesByCode(t *testing.T) {
	assert.ErrorIs(t, Clone(ErrUnauthorized, "missing access token"), ErrUnauthorized)
	assert.ErrorIs(t, Unavailable(errors.New("dial tcp"), "failed to list news"), ErrStoreUnavailable)
	assert.NotErrorIs(t, Clone(ErrForbidden, ""), ErrUnauthorized)
}

func TestValidationCopiesFields(t *testing.T) {
	fields := []string{"summary"}
	e := Validation("invalid article payload", fields...)
	fields[0] = "changed"

	assert.Equal(t, []string{"summary"}, e.Fields)
	assert.Nil(t, ErrValidation.Fields)
}
