package modules

import (
	"clashfinder/api/converters"
	"clashfinder/api/handlers"
	historyservice "clashfinder/api/services/history"
)

func initializePlayerHandler(deps *ModuleDependencies) *handlers.PlayerHandler {
	historyDeps := &historyservice.HistoryServiceDeps{
		API:         deps.Riot,
		Accounts:    deps.identities,
		Enricher:    converters.NewParticipantEnricher(deps.Catalog),
		Concurrency: deps.Config.Riot.Concurrency,
		Config:      deps.Config.History,
		Logger:      deps.Logger,
	}

	historyService := historyservice.NewHistoryService(historyDeps)

	playerHandlerDeps := &handlers.PlayerHandlerDependencies{
		HistoryService: historyService,
		CDN:            deps.Catalog,
		PageSize:       deps.Config.History.InitialFetch,
		Logger:         deps.Logger,
	}

	return handlers.NewPlayerHandler(playerHandlerDeps)
}
