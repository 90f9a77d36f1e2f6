package router

import (
	"github.com/jb-laurans/dockitback/internal/application"
	"github.com/jb-laurans/dockitback/internal/container"
	pginfra "github.com/jb-laurans/dockitback/internal/infrastructure/postgres"
	handlers "github.com/jb-laurans/dockitback/internal/interface/http"
	"github.com/jb-laurans/dockitback/internal/router/modules"
)

// InitModules wires every feature module from the container singletons
// and registers it. Call once during startup, after the container is
// populated.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	users := pginfra.NewUserRepository(pool)
	ships := pginfra.NewShipRepository(pool)
	matches := pginfra.NewMatchRepository(pool)
	cargos := pginfra.NewCargoRepository(pool)

	authSvc := application.NewAuthService(users, container.GetJWT(), container.GetRedis(), logger)
	shipSvc := application.NewShipService(ships, users,
		container.GetGCS(), cfg.GCSBucket,
		container.GetES(), cfg.ESShipsIndex, logger)

	var publisher application.EventPublisher
	if p := container.GetRabbitPub(); p != nil {
		publisher = p
	}
	matchSvc := application.NewMatchService(matches, ships, users, publisher, logger)
	cargoSvc := application.NewCargoService(cargos, users)

	jwt := container.GetJWT()
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), jwt, users))
	r.Add(modules.NewShipModule(handlers.NewShipHandler(shipSvc, logger), jwt, users))
	r.Add(modules.NewMatchModule(handlers.NewMatchHandler(matchSvc, logger), jwt, users))
	r.Add(modules.NewCargoModule(handlers.NewCargoHandler(cargoSvc, logger), jwt, users))
	r.Add(modules.NewDebugModule())
}
