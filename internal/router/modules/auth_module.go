package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/devcamper-api/internal/interface/http"
)

// AuthModule registers /auth routes.
// Public (rate limited): register, login, forgotpassword, resetpassword/:token
// Protected: logout, me, updatedetails, updatepassword
type AuthModule struct {
	Handler *handlers.AuthHandler
	Protect gin.HandlerFunc
	Limiter gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, protect, limiter gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Protect: protect, Limiter: limiter}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", m.Limiter, m.Handler.Register)
	auth.POST("/login", m.Limiter, m.Handler.Login)
	auth.POST("/forgotpassword", m.Limiter, m.Handler.ForgotPassword)
	auth.PUT("/resetpassword/:token", m.Limiter, m.Handler.ResetPassword)

	private := auth.Group("", m.Protect)
	{
		private.GET("/logout", m.Handler.Logout)
		private.GET("/me", m.Handler.Me)
		private.PUT("/updatedetails", m.Handler.UpdateDetails)
		private.PUT("/updatepassword", m.Handler.UpdatePassword)
	}
}
