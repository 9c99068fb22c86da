package handlers

import (
	"net/http"

	"clashfinder/api/filters"
	"clashfinder/api/templates"
	"clashfinder/pkg/regions"

	"github.com/gin-gonic/gin"
)

// HomeHandler serves the search page.
type HomeHandler struct{}

// NewHomeHandler creates a new instance of the home handler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// GetHome renders the search form.
func (h *HomeHandler) GetHome(c *gin.Context) {
	renderHome(c, http.StatusOK, "")
}

// PostSearch redirects the search form to the player or clash page.
func (h *HomeHandler) PostSearch(c *gin.Context) {
	var form filters.SearchForm
	if err := c.ShouldBind(&form); err != nil {
		renderHome(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := regions.Resolve(form.Server); err != nil {
		status, message := errorStatus(err)
		renderHome(c, status, message)
		return
	}

	c.Redirect(http.StatusSeeOther, form.Path())
}

// renderHome shows the search page, with a error when given.
func renderHome(c *gin.Context, status int, message string) {
	c.HTML(status, templates.Home, gin.H{
		"Title":   "Search",
		"Servers": regions.Servers(),
		"Error":   message,
	})
}
