package errors

import (
	stderrors "errors"
	"net/http"
)

const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeSessionExpired     ErrorType = "session_expired"
)

// AuthFailure says why authentication failed. It is logged, never rendered.
type AuthFailure string

const (
	FailureUnknownEmail   AuthFailure = "unknown_email"
	FailureWrongPassword  AuthFailure = "wrong_password"
	FailureSessionExpired AuthFailure = "session_expired"
	FailureAccountRemoved AuthFailure = "account_removed"
)

// AuthError is an authentication failure. Two AuthErrors with the same type
// render identically whatever their Reason.
type AuthError struct {
	*AppError
	Reason AuthFailure
}

func (e *AuthError) Error() string {
	return e.AppError.Error()
}

func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError is returned for both unknown emails and wrong
// passwords.
func NewInvalidCredentialsError(reason AuthFailure) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		Reason: reason,
	}
}

func NewSessionExpiredError(reason AuthFailure) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeSessionExpired,
			Message: "Session has expired",
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		Reason: reason,
	}
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// FailureReason extracts the reason of an AuthError anywhere in the chain.
func FailureReason(err error) (AuthFailure, bool) {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr.Reason, true
	}
	return "", false
}
