package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
)

const (
	userColumns       = `id, name, email, role, created_at`
	credentialColumns = userColumns + `, password_hash, reset_password_token_hash, reset_password_expires_at`
)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return u, nil
}

func scanCredential(row pgx.Row) (*entity.UserCredential, error) {
	c := &entity.UserCredential{}
	var role string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &role, &c.CreatedAt,
		&c.PasswordHash, &c.ResetTokenHash, &c.ResetExpiresAt); err != nil {
		return nil, err
	}
	c.Role = entity.Role(role)
	return c, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.UserCredential) error {
	u.Email = normalizeEmail(u.Email)
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Name, u.Email, u.PasswordHash, string(u.Role))

	return mapError(row.Scan(&u.ID, &u.CreatedAt), "insert user")
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, "get user by id")
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, normalizeEmail(email))
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, "get user by email")
	}
	return u, nil
}

func (r *UserRepository) GetCredentialByID(ctx context.Context, id string) (*entity.UserCredential, error) {
	row := r.db.QueryRow(ctx, `SELECT `+credentialColumns+` FROM users WHERE id = $1`, id)
	c, err := scanCredential(row)
	if err != nil {
		return nil, mapError(err, "get credential by id")
	}
	return c, nil
}

func (r *UserRepository) GetCredentialByEmail(ctx context.Context, email string) (*entity.UserCredential, error) {
	row := r.db.QueryRow(ctx, `SELECT `+credentialColumns+` FROM users WHERE email = $1`, normalizeEmail(email))
	c, err := scanCredential(row)
	if err != nil {
		return nil, mapError(err, "get credential by email")
	}
	return c, nil
}

func (r *UserRepository) UpdateDetails(ctx context.Context, id string, name, email *string) (*entity.User, error) {
	if email != nil {
		e := normalizeEmail(*email)
		email = &e
	}
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET name = COALESCE($1, name), email = COALESCE($2, email)
		WHERE id = $3
		RETURNING `+userColumns, name, email, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, "update user details")
	}
	return u, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return mapError(err, "update password")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_password_token_hash = $1, reset_password_expires_at = $2
		WHERE id = $3
	`, tokenHash, expiresAt, id)
	if err != nil {
		return mapError(err, "set reset token")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_password_token_hash = NULL, reset_password_expires_at = NULL
		WHERE id = $1
	`, id)
	return mapError(err, "clear reset token")
}

func (r *UserRepository) ResetTokenActive(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE reset_password_token_hash = $1 AND reset_password_expires_at > $2
		)
	`, tokenHash, now).Scan(&ok)
	if err != nil {
		return false, mapError(err, "check reset token")
	}
	return ok, nil
}

func (r *UserRepository) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE users
		SET password_hash = $1, reset_password_token_hash = NULL, reset_password_expires_at = NULL
		WHERE reset_password_token_hash = $2 AND reset_password_expires_at > $3
		RETURNING `+userColumns, passwordHash, tokenHash, now)
	u, err := scanUser(row)
	if err != nil {
		return nil, mapError(err, "consume reset token")
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
