package helpers

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie that carries the bearer token for browsers.
const SessionCookieName = "token"

// Manager builds the session cookie. Secure is on in production only.
type Manager struct {
	Domain string
	Secure bool
	TTL    time.Duration
}

func NewCookie(domain string, secure bool, ttl time.Duration) *Manager {
	return &Manager{Domain: domain, Secure: secure, TTL: ttl}
}

// Session returns the cookie carrying token, expiring TTL after now.
func (m *Manager) Session(token string, now time.Time) *http.Cookie {
	exp := now.Add(m.TTL)
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   m.Domain,
		Expires:  exp,
		MaxAge:   maxAgeFrom(now, exp),
		Secure:   m.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Cleared overwrites the session cookie with "none", already expired.
func (m *Manager) Cleared(now time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "none",
		Path:     "/",
		Domain:   m.Domain,
		Expires:  now.Add(-10 * time.Second),
		MaxAge:   -1,
		Secure:   m.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func maxAgeFrom(now, exp time.Time) int {
	sec := int(exp.Sub(now).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
