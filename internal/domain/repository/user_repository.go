package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrDuplicate      = errors.New("duplicate value")
	ErrOwnerLimit     = errors.New("owner already has a bootcamp")
)

// UserRepository is the credential store. Plain getters return the public
// projection; the *Credential getters include the password hash and reset
// state and are reserved for authentication flows.
type UserRepository interface {
	Create(ctx context.Context, u *entity.UserCredential) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetCredentialByID(ctx context.Context, id string) (*entity.UserCredential, error)
	GetCredentialByEmail(ctx context.Context, email string) (*entity.UserCredential, error)

	// UpdateDetails changes name and/or email; nil leaves the field untouched.
	UpdateDetails(ctx context.Context, id string, name, email *string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// SetResetToken stores a reset hash and expiry together, replacing any
	// previous pending secret. ClearResetToken removes both.
	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, id string) error

	// ResetTokenActive reports whether some user holds tokenHash unexpired at now.
	ResetTokenActive(ctx context.Context, tokenHash string, now time.Time) (bool, error)

	// ConsumeResetToken atomically replaces the password of the user whose
	// reset hash matches and has not expired at now, clearing the reset
	// fields. ErrNotFound when nothing matches.
	ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*entity.User, error)
}
