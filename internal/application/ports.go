package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/pkg/mailer"
)

// TokenSigner issues and verifies stateless bearer tokens.
// *helpers.JWTManager implements it.
type TokenSigner interface {
	Sign(userID string) (token string, expiresAt time.Time, err error)
	Verify(token string) (userID string, err error)
}

// PasswordHasher is a salted one-way transform. *helpers.BcryptHasher implements it.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Mailer hands an email job to the configured transport.
type Mailer interface {
	Send(ctx context.Context, job mailer.EmailJob) error
}

// PhotoStore persists uploaded bootcamp photos. *helpers.GCSUploader implements it.
type PhotoStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// BootcampIndex keeps a full-text index of bootcamps.
type BootcampIndex interface {
	Index(ctx context.Context, b *entity.Bootcamp) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, query string, limit int) ([]string, error)
}
