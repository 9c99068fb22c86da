package handlers

import (
	"context"
	"errors"
	"net/http"

	"clashfinder/api/dto"
	"clashfinder/api/filters"
	historyservice "clashfinder/api/services/history"
	"clashfinder/api/templates"
	"clashfinder/fetcher/assets"
	"clashfinder/pkg/logger"
	"clashfinder/pkg/messages"
	"clashfinder/pkg/riotvalues/riotid"

	"github.com/gin-gonic/gin"
)

const defaultLoadMore = 5

// HistoryService builds the match history pages.
type HistoryService interface {
	GetInitialHistory(ctx context.Context, identity riotid.Identity, server string) (*dto.MatchHistory, error)
	GetMoreMatches(ctx context.Context, identity riotid.Identity, server string, offset int, count int) (*dto.MatchHistory, error)
}

// CDNProvider returns the image urls of the current patch.
type CDNProvider interface {
	CDN() assets.CDN
}

// PlayerHandler is the handler for the player endpoints.
type PlayerHandler struct {
	historyService HistoryService
	cdn            CDNProvider
	pageSize       int
	logger         *logger.Logger
}

type PlayerHandlerDependencies struct {
	HistoryService HistoryService
	CDN            CDNProvider
	PageSize       int
	Logger         *logger.Logger
}

// NewPlayerHandler creates a new instance of the player handler.
func NewPlayerHandler(deps *PlayerHandlerDependencies) *PlayerHandler {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}

	pageSize := deps.PageSize
	if pageSize <= 0 {
		pageSize = defaultLoadMore
	}

	return &PlayerHandler{
		historyService: deps.HistoryService,
		cdn:            deps.CDN,
		pageSize:       pageSize,
		logger:         log,
	}
}

// GetPlayerStats renders the match history page.
func (h *PlayerHandler) GetPlayerStats(c *gin.Context) {
	var pp filters.PlayerURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		renderHome(c, http.StatusBadRequest, err.Error())
		return
	}

	identity := pp.Identity()
	server := pp.ServerName()

	history, err := h.historyService.GetInitialHistory(c.Request.Context(), identity, server)
	if err != nil {
		h.logger.Warnf("Couldn't get the history of %s on %s: %v", identity.String(), server, err)
		status, message := errorStatus(err)
		renderHome(c, status, message)
		return
	}

	c.HTML(http.StatusOK, templates.PlayerStats, gin.H{
		"Title":    identity.String(),
		"Identity": identity,
		"Server":   server,
		"History":  history,
		"CDN":      h.cdn.CDN(),
		"PageSize": h.pageSize,
	})
}

// GetMatchHistory returns a history page as JSON.
// Without offset the initial history is returned.
func (h *PlayerHandler) GetMatchHistory(c *gin.Context) {
	var pp filters.MatchHistoryURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var qp filters.MatchHistoryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		history *dto.MatchHistory
		err     error
	)
	if qp.Offset <= 0 && qp.Count <= 0 {
		history, err = h.historyService.GetInitialHistory(c.Request.Context(), pp.Identity(), pp.ServerName())
	} else {
		count := qp.Count
		if count <= 0 {
			count = h.pageSize
		}
		history, err = h.historyService.GetMoreMatches(c.Request.Context(), pp.Identity(), pp.ServerName(), qp.Offset, count)
	}

	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": history})
}

// PostLoadMoreMatches returns the next matches of the history page.
func (h *PlayerHandler) PostLoadMoreMatches(c *gin.Context) {
	var body filters.LoadMoreRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": messages.InvalidRequestBodyMsg})
		return
	}

	count := body.Number
	if count <= 0 {
		count = h.pageSize
	}

	history, err := h.historyService.GetMoreMatches(c.Request.Context(), body.Identity(), body.Server, body.CurrentCount, count)
	if err != nil {
		if errors.Is(err, historyservice.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": messages.NoMatchesMsg})
			return
		}
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, history.Matches)
}

func (h *PlayerHandler) writeError(c *gin.Context, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Errorf("Match history request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": message})
}
