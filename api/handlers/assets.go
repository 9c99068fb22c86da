package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CatalogInfo describes the loaded DDragon patch.
type CatalogInfo interface {
	CDNProvider
	Version() string
}

// AssetsHandler exposes the DDragon state.
type AssetsHandler struct {
	catalog CatalogInfo
}

// NewAssetsHandler creates a new instance of the assets handler.
func NewAssetsHandler(catalog CatalogInfo) *AssetsHandler {
	return &AssetsHandler{catalog: catalog}
}

// GetCDNTest returns the current version and a few sample image urls.
func (h *AssetsHandler) GetCDNTest(c *gin.Context) {
	version := h.catalog.Version()
	if version == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "catalog not loaded"})
		return
	}

	cdn := h.catalog.CDN()
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"version": version,
		"sample_urls": gin.H{
			"champion": cdn.ChampionURL("Aatrox"),
			"item":     cdn.ItemURL(1001),
		},
	})
}

// GetHealth reports the process is up and which patch it serves.
func (h *AssetsHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.catalog.Version(),
	})
}
