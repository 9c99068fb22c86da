package leaguefetcher

import (
	"context"
	"fmt"
	"net/url"

	"clashfinder/fetcher/requests"
)

// The league fetcher with it's limit and region.
type LeagueFetcher struct {
	client  *requests.Client
	limiter *requests.RateLimiter
	region  string
}

// LeagueEntry is one ranked queue entry of a player.
type LeagueEntry struct {
	LeagueId     string `json:"leagueId"`
	SummonerId   string `json:"summonerId"`
	Puuid        string `json:"puuid"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// Create a league fetcher.
func CreateLeagueFetcher(client *requests.Client, limiter *requests.RateLimiter, region string) *LeagueFetcher {
	return &LeagueFetcher{
		client:  client,
		limiter: limiter,
		region:  region,
	}
}

// GetLeagueEntriesByPuuid returns the player entries for each ranked queue.
func (l *LeagueFetcher) GetLeagueEntriesByPuuid(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	endpoint := l.client.URL(l.region, "/lol/league/v4/entries/by-puuid/%s", url.PathEscape(puuid))

	var entries []LeagueEntry
	if err := l.client.Get(ctx, l.limiter, endpoint, &entries); err != nil {
		return nil, fmt.Errorf("couldn't get the league entries on %s: %w", l.region, err)
	}
	return entries, nil
}
