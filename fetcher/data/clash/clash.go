package clashfetcher

import (
	"context"
	"fmt"
	"net/url"

	"clashfinder/fetcher/requests"
)

// ClashFetcher queries the clash endpoints on a platform route.
type ClashFetcher struct {
	client  *requests.Client
	limiter *requests.RateLimiter
	region  string
}

// Player is a clash registration.
type Player struct {
	SummonerId string `json:"summonerId"`
	Puuid      string `json:"puuid"`
	TeamId     string `json:"teamId"`
	Position   string `json:"position"`
	Role       string `json:"role"`
}

// Team is a clash team with its roster.
type Team struct {
	Id           string   `json:"id"`
	TournamentId int      `json:"tournamentId"`
	Name         string   `json:"name"`
	IconId       int      `json:"iconId"`
	Tier         int      `json:"tier"`
	Captain      string   `json:"captain"`
	Abbreviation string   `json:"abbreviation"`
	Players      []Player `json:"players"`
}

// Create a clash fetcher.
func CreateClashFetcher(client *requests.Client, limiter *requests.RateLimiter, region string) *ClashFetcher {
	return &ClashFetcher{
		client:  client,
		limiter: limiter,
		region:  region,
	}
}

// GetPlayersBySummonerId returns the active clash registrations of a summoner.
func (c *ClashFetcher) GetPlayersBySummonerId(ctx context.Context, summonerId string) ([]Player, error) {
	endpoint := c.client.URL(c.region, "/lol/clash/v1/players/by-summoner/%s", url.PathEscape(summonerId))

	var players []Player
	if err := c.client.Get(ctx, c.limiter, endpoint, &players); err != nil {
		return nil, fmt.Errorf("couldn't get the clash registrations on %s: %w", c.region, err)
	}
	return players, nil
}

// GetPlayersByPuuid returns the active clash registrations of a puuid.
func (c *ClashFetcher) GetPlayersByPuuid(ctx context.Context, puuid string) ([]Player, error) {
	endpoint := c.client.URL(c.region, "/lol/clash/v1/players/by-puuid/%s", url.PathEscape(puuid))

	var players []Player
	if err := c.client.Get(ctx, c.limiter, endpoint, &players); err != nil {
		return nil, fmt.Errorf("couldn't get the clash registrations on %s: %w", c.region, err)
	}
	return players, nil
}

// GetTeam returns a clash team.
func (c *ClashFetcher) GetTeam(ctx context.Context, teamId string) (*Team, error) {
	endpoint := c.client.URL(c.region, "/lol/clash/v1/teams/%s", url.PathEscape(teamId))

	var team Team
	if err := c.client.Get(ctx, c.limiter, endpoint, &team); err != nil {
		return nil, fmt.Errorf("couldn't get the clash team %s: %w", teamId, err)
	}
	return &team, nil
}
