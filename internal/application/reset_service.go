package application

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
	"github.com/oksasatya/devcamper-api/pkg/mailer"
	mailtpl "github.com/oksasatya/devcamper-api/pkg/mailer/templates"
)

// ResetPath is the route a reset link points at, relative to the host.
const ResetPath = "/api/v1/auth/resetpassword/"

// rollbackTimeout bounds clearing the reset fields after a failed dispatch.
const rollbackTimeout = 5 * time.Second

type ResetConfig struct {
	TTL     time.Duration
	BaseURL string // optional; overrides the request host
	// AllowedHosts limits the request hosts a link may be built from when
	// BaseURL is empty. Empty allows any host.
	AllowedHosts       []string
	ConcealUnknownMail bool
	AppName            string
}

// ResetService runs the password reset lifecycle:
// NONE -> PENDING on RequestReset, PENDING -> NONE on ConsumeReset or on a
// failed dispatch. Expired secrets simply stop matching.
type ResetService struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	sessions *SessionIssuer
	mail     Mailer
	cfg      ResetConfig
	logger   logrus.FieldLogger

	now      func() time.Time
	generate func() (token, hash string, err error)
}

func NewResetService(users repository.UserRepository, hasher PasswordHasher, sessions *SessionIssuer, mail Mailer, cfg ResetConfig, logger logrus.FieldLogger) *ResetService {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	return &ResetService{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		mail:     mail,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		generate: helpers.GenerateResetToken,
	}
}

// RequestReset stores a fresh secret for email and mails the reset link.
// requestBase is "<scheme>://<host>" of the incoming request and is used
// when no base URL is configured. Any earlier pending secret stops working.
func (s *ResetService) RequestReset(ctx context.Context, email, requestBase string) error {
	if strings.TrimSpace(email) == "" {
		return apperror.Validation("Please provide an email", nil)
	}
	if !s.hostAllowed(requestBase) {
		s.logger.WithField("base", requestBase).Warn("reset requested for unlisted host")
		return apperror.Validation("Invalid request host", nil)
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if s.cfg.ConcealUnknownMail {
				return nil
			}
			return apperror.NotFound("There is no user with that email")
		}
		return apperror.Internal(err)
	}

	token, hash, err := s.generate()
	if err != nil {
		return apperror.Internal(err)
	}
	expiresAt := s.now().Add(s.cfg.TTL)
	if err := s.users.SetResetToken(ctx, u.ID, hash, expiresAt); err != nil {
		return fromRepo(err, "There is no user with that email")
	}

	if err := s.mail.Send(ctx, s.resetJob(u, s.resetURL(requestBase, token), expiresAt)); err != nil {
		s.logger.WithError(err).WithField("user_id", u.ID).Warn("reset email dispatch failed, rolling back")
		// the request context may be the reason the dispatch failed
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
		defer cancel()
		if cerr := s.users.ClearResetToken(rctx, u.ID); cerr != nil {
			s.logger.WithError(cerr).WithField("user_id", u.ID).Error("reset rollback failed")
		}
		return apperror.Wrap(apperror.KindEmailDeliveryFailed, "Email could not be sent", err)
	}
	s.logger.WithField("user_id", u.ID).Info("reset email dispatched")
	return nil
}

// ConsumeReset sets newPassword for the user holding rawToken. Unknown,
// replayed and expired secrets all fail the same way.
func (s *ResetService) ConsumeReset(ctx context.Context, rawToken, newPassword string) (*Session, error) {
	if rawToken == "" {
		return nil, apperror.New(apperror.KindInvalidOrExpiredToken, "Invalid token")
	}
	if newPassword == "" {
		return nil, apperror.Validation("Please provide a password", nil)
	}
	tokenHash := helpers.HashResetToken(rawToken)
	// bcrypt only runs for a secret that currently matches
	active, err := s.users.ResetTokenActive(ctx, tokenHash, s.now())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !active {
		return nil, apperror.New(apperror.KindInvalidOrExpiredToken, "Invalid token")
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u, err := s.users.ConsumeResetToken(ctx, tokenHash, hash, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.New(apperror.KindInvalidOrExpiredToken, "Invalid token")
		}
		return nil, apperror.Internal(err)
	}
	s.logger.WithField("user_id", u.ID).Info("password reset")
	return s.sessions.Issue(u)
}

func (s *ResetService) hostAllowed(requestBase string) bool {
	if s.cfg.BaseURL != "" || len(s.cfg.AllowedHosts) == 0 {
		return true
	}
	u, err := url.Parse(requestBase)
	if err != nil || u.Host == "" {
		return false
	}
	for _, h := range s.cfg.AllowedHosts {
		if strings.EqualFold(h, u.Host) || strings.EqualFold(h, u.Hostname()) {
			return true
		}
	}
	return false
}

func (s *ResetService) resetURL(requestBase, token string) string {
	if s.cfg.BaseURL != "" {
		return strings.TrimRight(s.cfg.BaseURL, "/") + "/" + token
	}
	return strings.TrimRight(requestBase, "/") + ResetPath + token
}

func (s *ResetService) resetJob(u *entity.User, link string, expiresAt time.Time) mailer.EmailJob {
	return mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.ForgotPassword,
		Data: mailtpl.NewForgotPasswordData(u.Name, u.Email, link,
			mailtpl.WithAppName(s.cfg.AppName),
			mailtpl.WithExpiresAt(expiresAt),
			mailtpl.WithExpiresIn(s.cfg.TTL),
		),
	}
}
