package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

func Success(ctx *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse{Success: true, Data: data})
}

// List writes data together with its length.
func List[T any](ctx *gin.Context, items []T) {
	n := len(items)
	if items == nil {
		items = []T{}
	}
	ctx.JSON(http.StatusOK, APIResponse{Success: true, Data: items, Count: &n})
}

// Token answers with a bearer token in the body, for non-browser clients.
func Token(ctx *gin.Context, status int, token string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse{Success: true, Token: token})
}

func Error(ctx *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, APIResponse{Success: false, Error: message, Details: details})
}
