package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/devcamper-api/internal/domain/entity"
	handlers "github.com/oksasatya/devcamper-api/internal/interface/http"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
)

type CourseModule struct {
	Handler *handlers.CourseHandler
	Protect gin.HandlerFunc
}

func NewCourseModule(h *handlers.CourseHandler, protect gin.HandlerFunc) *CourseModule {
	return &CourseModule{Handler: h, Protect: protect}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	rg.GET("/courses", m.Handler.List)
	rg.GET("/courses/:id", m.Handler.Get)
	rg.GET("/bootcamps/:id/courses", m.Handler.List)

	write := []gin.HandlerFunc{m.Protect, middleware.Authorize(entity.RolePublisher, entity.RoleAdmin)}
	rg.POST("/bootcamps/:id/courses", append(write, m.Handler.Create)...)
	rg.PUT("/courses/:id", append(write, m.Handler.Update)...)
	rg.DELETE("/courses/:id", append(write, m.Handler.Delete)...)
}
