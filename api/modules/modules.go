package modules

import (
	"fmt"

	"clashfinder/api/cache"
	"clashfinder/api/handlers"
	"clashfinder/api/middleware"
	identityservice "clashfinder/api/services/identity"
	"clashfinder/api/templates"
	"clashfinder/fetcher/regionmanager"
	"clashfinder/pkg/config"
	"clashfinder/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Shared dependencies of the handlers.
type ModuleDependencies struct {
	Config  *config.Config
	Logger  *logger.Logger
	Store   cache.Store
	Riot    *regionmanager.RegionManager
	Catalog *cache.CatalogCache

	identities *identityservice.IdentityService
}

// Module containing the necessary handlers.
type Module struct {
	Router        *gin.Engine
	HomeHandler   *handlers.HomeHandler
	PlayerHandler *handlers.PlayerHandler
	ClashHandler  *handlers.ClashHandler
	AssetsHandler *handlers.AssetsHandler
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) (*Module, error) {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(deps.Logger))

	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("couldn't parse the templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Both the history and the clash pages resolve players the same way.
	deps.identities = identityservice.NewIdentityService(&identityservice.IdentityServiceDeps{
		API:    deps.Riot,
		Memo:   cache.NewMemoizer(deps.Store, deps.Config.Cache.TTL),
		Logger: deps.Logger,
	})

	return &Module{
		Router:        router,
		HomeHandler:   handlers.NewHomeHandler(),
		PlayerHandler: initializePlayerHandler(deps),
		ClashHandler:  initializeClashHandler(deps),
		AssetsHandler: handlers.NewAssetsHandler(deps.Catalog),
	}, nil
}
