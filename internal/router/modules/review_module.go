package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	handlers "github.com/oksasatya/devcamper-api/internal/interface/http"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
)

type ReviewModule struct {
	Handler *handlers.ReviewHandler
	Protect gin.HandlerFunc
}

func NewReviewModule(h *handlers.ReviewHandler, protect gin.HandlerFunc) *ReviewModule {
	return &ReviewModule{Handler: h, Protect: protect}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	rg.GET("/reviews", m.Handler.List)
	rg.GET("/reviews/:id", m.Handler.Get)
	rg.GET("/bootcamps/:id/reviews", m.Handler.List)

	write := []gin.HandlerFunc{m.Protect, middleware.Authorize(entity.RoleUser, entity.RoleAdmin)}
	rg.POST("/bootcamps/:id/reviews", append(write, m.Handler.Create)...)
	rg.PUT("/reviews/:id", append(write, m.Handler.Update)...)
	rg.DELETE("/reviews/:id", append(write, m.Handler.Delete)...)
}
