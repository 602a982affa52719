package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devcamper-api/pkg/apperror"
	"github.com/oksasatya/devcamper-api/pkg/helpers"
	"github.com/oksasatya/devcamper-api/pkg/response"
)

// ErrorHandler renders the last error pushed with c.Error as the standard
// envelope. Client messages of 5xx failures are generic except for email
// delivery; the full chain is logged.
func ErrorHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		kind := apperror.KindOf(err)
		status := apperror.HTTPStatus(kind)

		message := http.StatusText(status)
		var details any
		var ae *apperror.Error
		if errors.As(err, &ae) {
			if status < http.StatusInternalServerError || kind == apperror.KindEmailDeliveryFailed {
				message = ae.Message
			}
			details = ae.Details
		}

		if status >= http.StatusInternalServerError {
			helpers.LogError(logger, "request failed", err, logrus.Fields{
				"request_id": c.GetString(CtxRequestIDKey),
				"method":     c.Request.Method,
				"path":       normalizePath(c),
				"kind":       string(kind),
			})
		}
		response.Error(c, status, message, details)
	}
}
