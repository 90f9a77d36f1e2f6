package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jb-laurans/dockitback/internal/container"
	repo "github.com/jb-laurans/dockitback/internal/domain/repository"
	handlers "github.com/jb-laurans/dockitback/internal/interface/http"
	"github.com/jb-laurans/dockitback/internal/interface/middleware"
	"github.com/jb-laurans/dockitback/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, users repo.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get tight IP-based limits.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIP())

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Users))
	{
		auth.GET("/auth/me", m.Handler.Me)
		auth.PUT("/auth/profile", m.Handler.UpdateProfile)
		auth.GET("/auth/dashboard/shipowner", m.Handler.ShipownerDashboard)
	}
}
