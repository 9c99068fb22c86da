package modules

import (
	"clashfinder/api/handlers"
	clashservice "clashfinder/api/services/clash"
)

func initializeClashHandler(deps *ModuleDependencies) *handlers.ClashHandler {
	clashDeps := &clashservice.ClashServiceDeps{
		API:        deps.Riot,
		Identities: deps.identities,
		Logger:     deps.Logger,
	}

	clashService := clashservice.NewClashService(clashDeps)

	clashHandlerDeps := &handlers.ClashHandlerDependencies{
		ClashService: clashService,
		Logger:       deps.Logger,
	}

	return handlers.NewClashHandler(clashHandlerDeps)
}
