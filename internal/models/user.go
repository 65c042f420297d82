package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRecord is the persisted user row, including the password hash.
// It never crosses the service boundary; handlers only ever see User.
type UserRecord struct {
	ID               uuid.UUID  `json:"id" db:"id"`                                         // Primary key
	Email            string     `json:"email" db:"email"`                                   // Normalized (trimmed, lowercased) unique email
	PasswordHash     string     `json:"passwordHash" db:"password_hash"`                    // Bcrypt hash
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`                          // Creation timestamp
	LastLoginAt      time.Time  `json:"lastLoginAt" db:"last_login_at"`                     // Updated on every successful login
	ResetToken       *string    `json:"resetToken,omitempty" db:"reset_token"`              // Set while a password reset is outstanding
	ResetTokenExpiry *time.Time `json:"resetTokenExpiry,omitempty" db:"reset_token_expiry"` // Always set together with ResetToken
}

// User is the public projection of a UserRecord with the hash stripped.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

// Public returns the record without its password hash.
func (r *UserRecord) Public() *User {
	return &User{
		ID:          r.ID,
		Email:       r.Email,
		CreatedAt:   r.CreatedAt,
		LastLoginAt: r.LastLoginAt,
	}
}

// UserUpdate is a partial-field patch applied by repository Update calls.
// Nil pointers leave the field untouched. ClearReset removes both reset
// fields and wins over ResetToken/ResetTokenExpiry if both are given.
type UserUpdate struct {
	PasswordHash     *string
	LastLoginAt      *time.Time
	ResetToken       *string
	ResetTokenExpiry *time.Time
	ClearReset       bool
}

// ResetNotification is the message published when a password reset is
// requested. Delivery (email etc.) happens outside this service.
type ResetNotification struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	ResetURL  string    `json:"reset_url"`
}
