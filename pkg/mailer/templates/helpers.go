package templates

import (
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithResetURL(url string) Option   { return func(d *EmailData) { d.ResetURL = url } }
func WithSupportURL(url string) Option { return func(d *EmailData) { d.SupportURL = url } }
func WithAppName(name string) Option   { return func(d *EmailData) { d.AppName = name } }
func WithExpiresIn(ttl time.Duration) Option {
	return func(d *EmailData) { d.ExpiresInText = ttl.Round(time.Minute).String() }
}

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

// NewBaseEmailData fills the recipient fields and applies opts.
func NewBaseEmailData(typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,
		Type:  typ,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewForgotPasswordData(name, email, resetURL string, opts ...Option) map[string]any {
	opts = append([]Option{WithResetURL(resetURL)}, opts...)
	d := NewBaseEmailData(ForgotPassword, name, email, opts...)
	return ToMap(d)
}
