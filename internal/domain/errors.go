package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("access token required")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("invalid or expired token")
	ErrAlreadyInitialized = errors.New("admin already exists")
	ErrDuplicateAdmin     = errors.New("username or email already taken")
)

// ValidationError carries the precise rule a payload violated. Field is the
// JSON field name, Rule a stable machine-readable identifier used for message
// localization.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Field + " " + e.Rule
}

// NewValidationError builds a ValidationError for the given field and rule.
func NewValidationError(field, rule string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule}
}
