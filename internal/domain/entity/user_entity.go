package entity

import (
	"time"
)

// User is the public projection of an account. It never carries the password
// hash or reset state, so it is safe to serialize in responses.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserCredential is the full record, fetched only by authentication and
// password change flows.
//
// ResetTokenHash and ResetExpiresAt are both set or both nil.
type UserCredential struct {
	User
	PasswordHash   string
	ResetTokenHash *string
	ResetExpiresAt *time.Time
}

// HasPendingReset reports whether an unexpired reset secret is outstanding.
func (c *UserCredential) HasPendingReset(now time.Time) bool {
	return c.ResetTokenHash != nil && c.ResetExpiresAt != nil && c.ResetExpiresAt.After(now)
}
