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

type MatchModule struct {
	Handler *handlers.MatchHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewMatchModule(h *handlers.MatchHandler, jwt *helpers.JWTManager, users repo.UserRepository) *MatchModule {
	return &MatchModule{Handler: h, JWT: jwt, Users: users}
}

func (m *MatchModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Users))
	{
		// Swipes are the hottest write path, limited per user.
		swipeLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser())

		auth.POST("/matches", swipeLimiter, m.Handler.Create)
		auth.GET("/matches/my", m.Handler.MyMatches)
		auth.PUT("/matches/:id/status", m.Handler.UpdateStatus)
	}
}
