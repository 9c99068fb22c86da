package routes

import (
	"net/http"

	"clashfinder/api/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.HomeHandler:
			r.registerHomeHandler(handler)
		case *handlers.PlayerHandler:
			r.registerPlayerHandler(handler)
		case *handlers.ClashHandler:
			r.registerClashHandler(handler)
		case *handlers.AssetsHandler:
			r.registerAssetsHandler(handler)
		}
	}
}

// Register the search pages.
func (r *Router) registerHomeHandler(handler *handlers.HomeHandler) {
	r.Engine.GET("/", handler.GetHome)
	r.Engine.POST("/search", handler.PostSearch)
}

// Register the match history page and endpoints.
func (r *Router) registerPlayerHandler(handler *handlers.PlayerHandler) {
	r.Engine.GET("/player_stats/:summoner/:server", handler.GetPlayerStats)
	r.Engine.POST("/load_more_matches", handler.PostLoadMoreMatches)

	players := r.api.Group("/players")
	{
		players.GET("/:server/:summoner/matches", handler.GetMatchHistory)
	}
}

// Register the clash team page.
func (r *Router) registerClashHandler(handler *handlers.ClashHandler) {
	r.Engine.GET("/clash_team/:summoner/:server", handler.GetClashTeam)
}

// Register the DDragon and health endpoints.
func (r *Router) registerAssetsHandler(handler *handlers.AssetsHandler) {
	r.Engine.GET("/health", handler.GetHealth)

	cdn := r.api.Group("/cdn")
	{
		cdn.GET("/test", handler.GetCDNTest)
	}
}

// Server returns the http server for the router, shut down by the caller.
func (r *Router) Server(addr string) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: r.Engine,
	}
}
