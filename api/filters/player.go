package filters

import (
	"strings"

	"clashfinder/pkg/regions"
	"clashfinder/pkg/riotvalues/riotid"
)

// Search form options.
const (
	OptionPlayer = "player"
	OptionClash  = "clashTeam"
)

// URI params for the player pages, both slugged.
type PlayerURIParams struct {
	Summoner string `uri:"summoner" binding:"required"`
	Server   string `uri:"server" binding:"required"`
}

// Identity returns the Riot Id from the summoner slug.
func (p *PlayerURIParams) Identity() riotid.Identity {
	return riotid.Split(riotid.Unslug(p.Summoner))
}

// ServerName returns the server from the slug.
func (p *PlayerURIParams) ServerName() string {
	return regions.Unslugify(p.Server)
}

// Form sent by the home page search.
type SearchForm struct {
	Option string `form:"option"`
	Name   string `form:"name" binding:"required"`
	Server string `form:"server" binding:"required"`
}

// Path returns the page the search redirects to.
func (f *SearchForm) Path() string {
	page := "/player_stats/"
	if f.Option == OptionClash {
		page = "/clash_team/"
	}
	return page + riotid.Slug(f.Name) + "/" + regions.Slugify(f.Server)
}

// Query params for the match history API.
type MatchHistoryParams struct {
	Offset int `form:"offset"`
	Count  int `form:"count"`
}

// URI params for the match history API, the server is the plain name.
type MatchHistoryURIParams struct {
	Server   string `uri:"server" binding:"required"`
	Summoner string `uri:"summoner" binding:"required"`
}

// Identity returns the Riot Id, accepting both "Name#Tag" and the slug.
func (p *MatchHistoryURIParams) Identity() riotid.Identity {
	if strings.Contains(p.Summoner, "#") {
		return riotid.Split(p.Summoner)
	}
	return riotid.Split(riotid.Unslug(p.Summoner))
}

// ServerName accepts both the server name and its slug.
func (p *MatchHistoryURIParams) ServerName() string {
	return regions.Unslugify(p.Server)
}

// Body of the load more request sent by the history page.
type LoadMoreRequest struct {
	CurrentCount int    `json:"current_count"`
	Number       int    `json:"number"`
	Server       string `json:"server" binding:"required"`
	SummonerName string `json:"SUMMONER_NAME" binding:"required"`
	SummonerTag  string `json:"SUMMONER_TAG"`
}

// Identity returns the Riot Id of the request.
func (r *LoadMoreRequest) Identity() riotid.Identity {
	return riotid.Identity{Name: r.SummonerName, Tag: r.SummonerTag}
}
