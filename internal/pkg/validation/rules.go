package validation

import (
	"regexp"
	"unicode"

	"github.com/ecampus/backend/internal/pkg/apperrors"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,30}$`)

// ValidateUsername checks that a username uses the allowed character set.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return apperrors.NewValidationError("username must be 3-30 characters of letters, digits, underscore or dot")
	}
	return nil
}

// ValidatePassword enforces the minimum password strength accepted at
// registration: at least 8 characters with a letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters long")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperrors.NewValidationError("password must contain at least one letter and one digit")
	}
	return nil
}
