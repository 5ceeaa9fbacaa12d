package services

import (
	"fmt"
	"unicode"

	"github.com/taskhub/task-tracker-api/internal/constants"
)

// ValidationError marks input the caller can correct. Handlers translate
// it into a 400 response with the message as-is.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func newValidationError(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// validatePassword enforces the password policy: 8 to 12 characters with
// at least one uppercase letter, one lowercase letter, one digit and one
// special character.
func validatePassword(password string) error {
	if len(password) < constants.MinPasswordLength || len(password) > constants.MaxPasswordLength {
		return newValidationError("password must be between %d and %d characters",
			constants.MinPasswordLength, constants.MaxPasswordLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper {
		return newValidationError("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return newValidationError("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return newValidationError("password must contain at least one digit")
	}
	if !hasSpecial {
		return newValidationError("password must contain at least one special character")
	}

	return nil
}
