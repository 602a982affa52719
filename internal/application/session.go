package application

import (
	"net/http"
	"time"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
)

// Session is what a successful login, registration, password change or reset
// hands back: the raw token for API clients and the cookie for browsers.
type Session struct {
	User      entity.User
	Token     string
	ExpiresAt time.Time
	Cookie    *http.Cookie
}

type SessionIssuer struct {
	signer  TokenSigner
	cookies *helpers.Manager
	now     func() time.Time
}

func NewSessionIssuer(signer TokenSigner, cookies *helpers.Manager) *SessionIssuer {
	return &SessionIssuer{signer: signer, cookies: cookies, now: time.Now}
}

// Issue signs a token for u and wraps it in the session cookie.
func (s *SessionIssuer) Issue(u *entity.User) (*Session, error) {
	token, exp, err := s.signer.Sign(u.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &Session{
		User:      *u,
		Token:     token,
		ExpiresAt: exp,
		Cookie:    s.cookies.Session(token, s.now()),
	}, nil
}

// Cleared returns the cookie that logs a browser out.
func (s *SessionIssuer) Cleared() *http.Cookie {
	return s.cookies.Cleared(s.now())
}
