package router

import (
	"time"

	"github.com/oksasatya/devcamper-api/internal/container"
	handlers "github.com/oksasatya/devcamper-api/internal/interface/http"
	"github.com/oksasatya/devcamper-api/internal/interface/middleware"
	"github.com/oksasatya/devcamper-api/internal/router/modules"
)

// per-IP budget for the unauthenticated auth routes
const (
	authLimitMax    = 20
	authLimitWindow = 10 * time.Minute
)

// InitModules builds handlers from c and registers every module.
// Call it once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	var allow middleware.AllowFunc
	if !c.Config.IsProduction() {
		allow = middleware.AllowPrivateIP()
	}
	r.Use(middleware.RateLimit(c.Redis, c.Config.RateLimitMax, c.Config.RateLimitWindow, middleware.KeyByIP(), allow, c.Logger))

	protect := middleware.Protect(c.JWT, c.Users)
	authLimiter := middleware.RateLimit(c.Redis, authLimitMax, authLimitWindow, middleware.KeyByIPAndPath(), allow, c.Logger)

	r.Add(modules.NewHealthModule(c.DBPing, c.Redis))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.Auth, c.Reset), protect, authLimiter))
	r.Add(modules.NewBootcampModule(handlers.NewBootcampHandler(c.Bootcamps), protect))
	r.Add(modules.NewCourseModule(handlers.NewCourseHandler(c.Courses), protect))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(c.Reviews), protect))
}
