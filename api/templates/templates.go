package templates

import (
	"embed"
	"html/template"

	"clashfinder/pkg/regions"
	"clashfinder/pkg/riotvalues/riotid"
)

//go:embed *.html
var files embed.FS

// Page names.
const (
	Home        = "home.html"
	PlayerStats = "player_stats.html"
	ClashTeam   = "clash_team.html"
)

var funcs = template.FuncMap{
	"slugifyServer": regions.Slugify,
	"riotSlug":      riotid.Slug,
}

// Load parses the embedded pages.
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "*.html")
}
