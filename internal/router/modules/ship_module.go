package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jb-laurans/dockitback/internal/container"
	"github.com/jb-laurans/dockitback/internal/domain/entity"
	repo "github.com/jb-laurans/dockitback/internal/domain/repository"
	handlers "github.com/jb-laurans/dockitback/internal/interface/http"
	"github.com/jb-laurans/dockitback/internal/interface/middleware"
	"github.com/jb-laurans/dockitback/pkg/helpers"
)

type ShipModule struct {
	Handler *handlers.ShipHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewShipModule(h *handlers.ShipHandler, jwt *helpers.JWTManager, users repo.UserRepository) *ShipModule {
	return &ShipModule{Handler: h, JWT: jwt, Users: users}
}

func (m *ShipModule) Register(rg *gin.RouterGroup) {
	// Ship detail stays public so listings can be shared by link.
	rg.GET("/ships/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Users))
	{
		auth.GET("/ships", m.Handler.List)

		searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUser())
		auth.GET("/ships/search", searchLimiter, m.Handler.Search)

		owner := auth.Group("/")
		owner.Use(middleware.RequireType(entity.UserShipowner))
		{
			owner.POST("/ships", m.Handler.Create)
			owner.GET("/ships/my/ships", m.Handler.MyShips)

			uploadLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUser())
			owner.POST("/ships/:id/images", uploadLimiter, m.Handler.UploadImage)
		}
	}
}
