package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"Validation", NewValidationError("bad date"), http.StatusBadRequest},
		{"MenuNotFound", NewMenuNotFoundError("m1"), http.StatusNotFound},
		{"PlanNotFound", NewPlanNotFoundError("p1"), http.StatusNotFound},
		{"RecipeNotFound", NewRecipeNotFoundError("r1"), http.StatusNotFound},
		{"ItemNotFound", NewItemNotFoundError("i1"), http.StatusNotFound},
		{"TemporalGuard", NewTemporalGuardError("future date"), http.StatusUnprocessableEntity},
		{"ResourceState", NewResourceStateError("archived"), http.StatusConflict},
		{"Database", NewDatabaseError("save menu", stderrors.New("boom")), http.StatusInternalServerError},
		{"Unauthorized", NewUnauthorizedError(""), http.StatusUnauthorized},
		{"RateLimited", NewTooManyRequestsError(), http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestIs_WorksThroughWrapping(t *testing.T) {
	// Arrange
	appErr := NewTemporalGuardError("menu date is in the future")
	wrapped := fmt.Errorf("set item status: %w", appErr)

	// Act & Assert
	assert.True(t, Is(wrapped, CodeTemporalGuard))
	assert.False(t, Is(wrapped, CodeResourceState))
	assert.Equal(t, CodeTemporalGuard, GetCode(wrapped))
	assert.Equal(t, CodeInternal, GetCode(stderrors.New("plain")))
}

func TestWrap(t *testing.T) {
	t.Run("NilError_ShouldReturnNil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "ignored"))
	})

	t.Run("AppError_ShouldBeReturnedAsIs", func(t *testing.T) {
		original := NewPlanNotFoundError("p1")
		assert.Same(t, original, Wrap(fmt.Errorf("ctx: %w", original), "ignored"))
	})

	t.Run("PlainError_ShouldBecomeInternal", func(t *testing.T) {
		cause := stderrors.New("disk full")
		wrapped := Wrap(cause, "could not persist")

		require.NotNil(t, wrapped)
		assert.Equal(t, CodeInternal, wrapped.Code)
		assert.ErrorIs(t, wrapped, cause)
	})
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "date", Tag: "required", Message: "date is required"},
		{Field: "status", Tag: "oneof", Message: "status must be one of planned eaten deleted"},
	})

	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.Equal(t, "date is required; status must be one of planned eaten deleted", err.Details)
	assert.Contains(t, err.Metadata, "validation_errors")
}

func TestToErrorResponse(t *testing.T) {
	err := NewMenuNotFoundError("abc")

	resp := ToErrorResponse(err, "req-1")

	assert.Equal(t, CodeMenuNotFound, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Equal(t, "abc", resp.Error.Metadata["menu_id"])
	assert.NotEmpty(t, resp.Error.Timestamp)
}
