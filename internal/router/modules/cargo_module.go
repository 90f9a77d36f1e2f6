package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/jb-laurans/dockitback/internal/domain/entity"
	repo "github.com/jb-laurans/dockitback/internal/domain/repository"
	handlers "github.com/jb-laurans/dockitback/internal/interface/http"
	"github.com/jb-laurans/dockitback/internal/interface/middleware"
	"github.com/jb-laurans/dockitback/pkg/helpers"
)

type CargoModule struct {
	Handler *handlers.CargoHandler
	JWT     *helpers.JWTManager
	Users   repo.UserRepository
}

func NewCargoModule(h *handlers.CargoHandler, jwt *helpers.JWTManager, users repo.UserRepository) *CargoModule {
	return &CargoModule{Handler: h, JWT: jwt, Users: users}
}

func (m *CargoModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Users))
	{
		auth.GET("/cargos", m.Handler.List)

		charterer := auth.Group("/")
		charterer.Use(middleware.RequireType(entity.UserCharterer))
		{
			charterer.POST("/cargos", m.Handler.Create)
			charterer.GET("/cargos/my", m.Handler.MyCargos)
		}
	}
}
