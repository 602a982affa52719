package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/application"
	"github.com/oksasatya/devcamper-api/internal/domain/repository"
	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/response"
	"github.com/oksasatya/devcamper-api/pkg/validation"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

// fail hands err to middleware.ErrorHandler.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

// bindJSON decodes the body into dst and reports binding failures as
// VALIDATION with per-field details.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		details := validation.ToDetails(err)
		fail(c, apperror.Validation(validation.Message(details), details))
		return false
	}
	return true
}

// pageFrom reads ?page=&limit= with 1-based pages.
func pageFrom(c *gin.Context) repository.Page {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return repository.Page{Limit: limit, Offset: (page - 1) * limit}
}

// requestBase is "<scheme>://<host>" of the incoming request.
func requestBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	return scheme + "://" + c.Request.Host
}

// sendSession sets the session cookie and answers with the bearer token.
func sendSession(c *gin.Context, sess *application.Session) {
	http.SetCookie(c.Writer, sess.Cookie)
	response.Token(c, http.StatusOK, sess.Token)
}
