package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	handlers "github.com/oksasatya/devcamper-api/internal/interface/http"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
)

type BootcampModule struct {
	Handler *handlers.BootcampHandler
	Protect gin.HandlerFunc
}

func NewBootcampModule(h *handlers.BootcampHandler, protect gin.HandlerFunc) *BootcampModule {
	return &BootcampModule{Handler: h, Protect: protect}
}

func (m *BootcampModule) Register(rg *gin.RouterGroup) {
	rg.GET("/bootcamps", m.Handler.List)
	rg.GET("/bootcamps/search", m.Handler.Search)
	rg.GET("/bootcamps/:id", m.Handler.Get)

	publisher := rg.Group("/bootcamps", m.Protect, middleware.Authorize(entity.RolePublisher, entity.RoleAdmin))
	{
		publisher.POST("", m.Handler.Create)
		publisher.PUT("/:id", m.Handler.Update)
		publisher.DELETE("/:id", m.Handler.Delete)
		publisher.PUT("/:id/photo", m.Handler.UploadPhoto)
	}
}
