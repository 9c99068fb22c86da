package handlers

import (
	"context"
	"net/http"

	"clashfinder/api/dto"
	"clashfinder/api/filters"
	"clashfinder/api/templates"
	"clashfinder/pkg/logger"
	"clashfinder/pkg/riotvalues/riotid"

	"github.com/gin-gonic/gin"
)

// ClashService finds the clash team of a player.
type ClashService interface {
	GetTeam(ctx context.Context, identity riotid.Identity, server string) (*dto.ClashTeam, error)
}

// ClashHandler is the handler for the clash team page.
type ClashHandler struct {
	clashService ClashService
	logger       *logger.Logger
}

type ClashHandlerDependencies struct {
	ClashService ClashService
	Logger       *logger.Logger
}

// NewClashHandler creates a new instance of the clash handler.
func NewClashHandler(deps *ClashHandlerDependencies) *ClashHandler {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &ClashHandler{
		clashService: deps.ClashService,
		logger:       log,
	}
}

// GetClashTeam renders the roster of the player clash team.
func (h *ClashHandler) GetClashTeam(c *gin.Context) {
	var pp filters.PlayerURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		renderHome(c, http.StatusBadRequest, err.Error())
		return
	}

	identity := pp.Identity()
	server := pp.ServerName()

	team, err := h.clashService.GetTeam(c.Request.Context(), identity, server)
	if err != nil {
		h.logger.Warnf("Couldn't get the clash team of %s on %s: %v", identity.String(), server, err)
		status, message := errorStatus(err)
		renderHome(c, status, message)
		return
	}

	c.HTML(http.StatusOK, templates.ClashTeam, gin.H{
		"Title":  team.Name,
		"Team":   team,
		"Server": team.Server,
	})
}
