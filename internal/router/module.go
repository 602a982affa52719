package router

import "github.com/gin-gonic/gin"

// Module registers one resource's routes on the /api/v1 group. Modules add
// their own Protect/Authorize chains; the registry only applies the global
// limiter.
type Module interface {
	Register(api *gin.RouterGroup)
}
