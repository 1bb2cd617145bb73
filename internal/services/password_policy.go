package services

import (
	"errors"
	"regexp"
)

var ErrWeakPassword = errors.New("weak password")

var (
	passwordLengthRegex = regexp.MustCompile(`^.{8,}$`)
	passwordUpperRegex  = regexp.MustCompile(`\p{Lu}`)
	passwordLowerRegex  = regexp.MustCompile(`\p{Ll}`)
	passwordDigitRegex  = regexp.MustCompile(`\d`)
)

// ValidatePasswordStrength requires at least 8 characters with an upper-case
// letter, a lower-case letter and a digit.
func ValidatePasswordStrength(password string) error {
	if !passwordLengthRegex.MatchString(password) ||
		!passwordUpperRegex.MatchString(password) ||
		!passwordLowerRegex.MatchString(password) ||
		!passwordDigitRegex.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}
