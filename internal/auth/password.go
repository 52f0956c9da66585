package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/eagd-org/donation-server/internal/domain"
)

// bcryptCost matches the hashing cost used when accounts were first created.
const bcryptCost = 12

const passwordSpecialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// HashPassword produces a salted bcrypt digest of the raw password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the raw password matches the stored digest.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordComplexity enforces the setup password policy: at least 8
// characters with upper-case, lower-case, digit and special-character classes.
// The returned error identifies the first violated rule.
func ValidatePasswordComplexity(password string) error {
	if len(password) < 8 {
		return domain.NewValidationError("password", "min_length")
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
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return domain.NewValidationError("password", "upper_required")
	case !hasLower:
		return domain.NewValidationError("password", "lower_required")
	case !hasDigit:
		return domain.NewValidationError("password", "digit_required")
	case !hasSpecial:
		return domain.NewValidationError("password", "special_required")
	}
	return nil
}
