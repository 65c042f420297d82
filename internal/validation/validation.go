package validation

import (
	"regexp"
	"strings"
)

var (
	emailRegexp     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	lowercaseRegexp = regexp.MustCompile(`[a-z]`)
	uppercaseRegexp = regexp.MustCompile(`[A-Z]`)
	digitRegexp     = regexp.MustCompile(`\d`)
	specialRegexp   = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// IsValidEmail reports whether s looks like local-part@domain.tld.
func IsValidEmail(s string) bool {
	return emailRegexp.MatchString(strings.TrimSpace(s))
}

// NormalizeEmail returns the trimmed, lowercased form of an email address.
// The normalized form is the uniqueness key for user records.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// PasswordViolations checks a password against the minimum policy and
// returns every violated rule as a human-readable message. An empty slice
// means the password is acceptable.
func PasswordViolations(password string) []string {
	var violations []string
	if len(password) < MinPasswordLength {
		violations = append(violations, "Password must be at least 8 characters long")
	}
	return violations
}

// PasswordStrengthViolations applies the stricter registration-facing
// policy: minimum length plus at least one lowercase letter, one uppercase
// letter, one digit and one special character. Every violated rule is
// reported, not just the first.
func PasswordStrengthViolations(password string) []string {
	var violations []string
	if len(password) < MinPasswordLength {
		violations = append(violations, "Password must be at least 8 characters long")
	}
	if !lowercaseRegexp.MatchString(password) {
		violations = append(violations, "Password must contain at least one lowercase letter")
	}
	if !uppercaseRegexp.MatchString(password) {
		violations = append(violations, "Password must contain at least one uppercase letter")
	}
	if !digitRegexp.MatchString(password) {
		violations = append(violations, "Password must contain at least one number")
	}
	if !specialRegexp.MatchString(password) {
		violations = append(violations, "Password must contain at least one special character")
	}
	return violations
}
