package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad"), ErrorTypeValidation, http.StatusBadRequest},
		{"invalid query", NewInvalidQueryError("bad page"), ErrorTypeInvalidQuery, http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", NewConflictError("dup"), ErrorTypeConflict, http.StatusConflict},
		{"unauthorized", NewUnauthorizedError("who"), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), ErrorTypeForbidden, http.StatusForbidden},
		{"too many", NewTooManyRequestsError("slow down"), ErrorTypeTooManyRequests, http.StatusTooManyRequests},
		{"internal", NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestFieldValidationError(t *testing.T) {
	err := NewFieldValidationError([]FieldError{
		{Field: "email", Message: "email must be a valid email address"},
		{Field: "gender", Message: "gender must be one of [M F]"},
	})

	assert.True(t, IsValidationError(err))
	assert.Len(t, err.Fields, 2)
	assert.Contains(t, err.Details, "email must be a valid email address")
	assert.Contains(t, err.Details, "; ")
}

func TestExportFailedKeepsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewExportFailedError("researcher", cause)

	assert.Equal(t, ErrorTypeExportFailed, err.Type)
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "disk full")
}

func TestGetAppErrorThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("repository: %w", NewNotFoundError("laboratory not found"))

	require.True(t, IsAppError(wrapped))
	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsConflictError(wrapped))
}

func TestInvalidCredentialsIsAuthError(t *testing.T) {
	err := fmt.Errorf("login: %w", NewInvalidCredentialsError(FailureWrongPassword))

	assert.True(t, IsAuthError(err))
	reason, ok := FailureReason(err)
	require.True(t, ok)
	assert.Equal(t, FailureWrongPassword, reason)
	require.NotNil(t, GetAppError(err))
	assert.Equal(t, http.StatusUnauthorized, GetAppError(err).Code)

	// The reason never reaches the rendered message.
	other := NewInvalidCredentialsError(FailureUnknownEmail)
	assert.Equal(t, other.Error(), NewInvalidCredentialsError(FailureWrongPassword).Error())

	_, ok = FailureReason(NewNotFoundError("user not found"))
	assert.False(t, ok)
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry 'x' for key 'PRIMARY'")))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: roles.name")))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
	assert.False(t, IsDuplicateError(nil))
}

func TestIsForeignKeyError(t *testing.T) {
	assert.True(t, IsForeignKeyError(fmt.Errorf("FOREIGN KEY constraint failed")))
	assert.True(t, IsForeignKeyError(fmt.Errorf("Error 1451: Cannot delete or update a parent row: a foreign key constraint fails")))
	assert.False(t, IsForeignKeyError(fmt.Errorf("syntax error")))
}
