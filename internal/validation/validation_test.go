package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"simple address", "user@example.com", true},
		{"subdomain", "user@mail.example.com", true},
		{"plus tag", "user+tag@example.com", true},
		{"surrounding whitespace is tolerated", "  user@example.com  ", true},
		{"missing at", "userexample.com", false},
		{"missing domain", "user@", false},
		{"missing tld", "user@example", false},
		{"whitespace inside", "us er@example.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "test@x.com", NormalizeEmail("Test@X.com"))
	assert.Equal(t, "test@x.com", NormalizeEmail("  test@x.com  "))
	assert.Equal(t, "test@x.com", NormalizeEmail(" TEST@X.COM "))
}

func TestPasswordViolations(t *testing.T) {
	assert.Empty(t, PasswordViolations("12345678"))
	assert.Empty(t, PasswordViolations("Passw0rd!"))

	violations := PasswordViolations("short")
	assert.Len(t, violations, 1)
	assert.Equal(t, "Password must be at least 8 characters long", violations[0])
}

func TestPasswordStrengthViolations(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     int
	}{
		{"strong password", "Passw0rd!", 0},
		{"everything wrong", "", 5},
		{"missing uppercase", "passw0rd!", 1},
		{"missing digit", "Password!", 1},
		{"missing special", "Passw0rd", 1},
		{"long but only lowercase", "passwordpassword", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, PasswordStrengthViolations(tt.password), tt.want)
		})
	}
}
