package application

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
)

const invalidCredentials = "Invalid credentials"

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// AuthService covers registration, login and the account self-service routes.
type AuthService struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	sessions *SessionIssuer
	logger   logrus.FieldLogger

	// decoy is verified against for unknown emails so both failures cost a hash.
	decoyOnce sync.Once
	decoy     string
}

func NewAuthService(users repository.UserRepository, hasher PasswordHasher, sessions *SessionIssuer, logger logrus.FieldLogger) *AuthService {
	return &AuthService{users: users, hasher: hasher, sessions: sessions, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, apperror.Validation("Please add a name, email and password", nil)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	// admin is never self-assigned
	if role != entity.RoleUser && role != entity.RolePublisher {
		return nil, apperror.Validation("Invalid role", map[string]string{"role": "must be one of user publisher"})
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	cred := &entity.UserCredential{
		User:         entity.User{Name: strings.TrimSpace(in.Name), Email: in.Email, Role: role},
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, cred); err != nil {
		return nil, fromRepo(err, "User not found")
	}
	s.logger.WithField("user_id", cred.ID).Info("user registered")
	return s.sessions.Issue(&cred.User)
}

// Login answers unknown email and wrong password with the same failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, apperror.Validation("Please provide an email and password", nil)
	}
	cred, err := s.users.GetCredentialByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.Verify(password, s.decoyHash())
			return nil, apperror.Unauthenticated(invalidCredentials)
		}
		return nil, apperror.Internal(err)
	}
	if !s.hasher.Verify(password, cred.PasswordHash) {
		return nil, apperror.Unauthenticated(invalidCredentials)
	}
	return s.sessions.Issue(&cred.User)
}

func (s *AuthService) decoyHash() string {
	s.decoyOnce.Do(func() {
		h, err := s.hasher.Hash("decoy-password-for-unknown-accounts")
		if err != nil {
			s.logger.WithError(err).Warn("decoy hash unavailable")
			return
		}
		s.decoy = h
	})
	return s.decoy
}

func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fromRepo(err, "User not found")
	}
	return u, nil
}

// UpdateDetails changes name and/or email. Nil fields are left alone.
func (s *AuthService) UpdateDetails(ctx context.Context, userID string, name, email *string) (*entity.User, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, apperror.Validation("Please add a name", nil)
	}
	if email != nil && strings.TrimSpace(*email) == "" {
		return nil, apperror.Validation("Please add an email", nil)
	}
	u, err := s.users.UpdateDetails(ctx, userID, name, email)
	if err != nil {
		return nil, fromRepo(err, "User not found")
	}
	return u, nil
}

// UpdatePassword checks the current password before replacing it and hands
// back a fresh session.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, current, next string) (*Session, error) {
	if current == "" || next == "" {
		return nil, apperror.Validation("Please provide the current and new password", nil)
	}
	cred, err := s.users.GetCredentialByID(ctx, userID)
	if err != nil {
		return nil, fromRepo(err, "User not found")
	}
	if !s.hasher.Verify(current, cred.PasswordHash) {
		return nil, apperror.Unauthenticated("Password is incorrect")
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return nil, fromRepo(err, "User not found")
	}
	return s.sessions.Issue(&cred.User)
}

// Logout returns the cookie that clears the browser session. Tokens are
// stateless, so nothing is revoked server side.
func (s *AuthService) Logout() *Session {
	return &Session{Token: "none", Cookie: s.sessions.Cleared()}
}
