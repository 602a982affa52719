package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
)

const (
	CtxUserKey   = "user"
	CtxUserIDKey = "userID"
)

const notAuthorized = "Not authorized to access this route"

// UserLookup resolves a token subject to the current user record.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// bearerToken reads "Authorization: Bearer <t>" first and falls back to the
// session cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if t, err := c.Cookie(helpers.SessionCookieName); err == nil && t != "none" {
		return t
	}
	return ""
}

// Protect verifies the bearer token and loads its user into the context.
// Missing, malformed and expired tokens, and tokens of users that no longer
// exist, are all UNAUTHENTICATED.
func Protect(signer application.TokenSigner, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abort(c, apperror.Unauthenticated(notAuthorized))
			return
		}
		uid, err := signer.Verify(token)
		if err != nil {
			abort(c, apperror.Wrap(apperror.KindUnauthenticated, notAuthorized, err))
			return
		}
		u, err := users.GetByID(c.Request.Context(), uid)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				abort(c, apperror.Unauthenticated(notAuthorized))
				return
			}
			abort(c, apperror.Internal(err))
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID)
		c.Next()
	}
}

// Authorize lets the request through only for the given roles. It must run
// after Protect.
func Authorize(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := application.EnsureRole(CurrentUser(c), roles...); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by Protect, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
