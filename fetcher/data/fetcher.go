package data

import (
	clashfetcher "clashfinder/fetcher/data/clash"
	leaguefetcher "clashfinder/fetcher/data/league"
	matchfetcher "clashfinder/fetcher/data/match"
	playerfetcher "clashfinder/fetcher/data/player"
	"clashfinder/fetcher/requests"
	"clashfinder/pkg/config"
)

// RegionalFetcher holds the endpoints served by a regional route (americas, europe...).
type RegionalFetcher struct {
	Player *playerfetcher.PlayerFetcher
	Match  *matchfetcher.MatchFetcher
}

// PlatformFetcher holds the endpoints served by a platform route (euw1, br1...).
type PlatformFetcher struct {
	Summoner *playerfetcher.SummonerFetcher
	League   *leaguefetcher.LeagueFetcher
	Clash    *clashfetcher.ClashFetcher
}

// Function to instanciate the regional fetcher.
func CreateRegionalFetcher(client *requests.Client, limits config.RiotConfiguration, region string) *RegionalFetcher {
	// Create the limiter for this region.
	limiter := requests.CreateRateLimiter(limits.Limits.Lower, limits.Limits.Higher)

	return &RegionalFetcher{
		Player: playerfetcher.CreatePlayerFetcher(client, limiter, region),
		Match:  matchfetcher.CreateMatchFetcher(client, limiter, region),
	}
}

// Function to instanciate the platform fetcher.
func CreatePlatformFetcher(client *requests.Client, limits config.RiotConfiguration, region string) *PlatformFetcher {
	limiter := requests.CreateRateLimiter(limits.Limits.Lower, limits.Limits.Higher)

	return &PlatformFetcher{
		Summoner: playerfetcher.CreateSummonerFetcher(client, limiter, region),
		League:   leaguefetcher.CreateLeagueFetcher(client, limiter, region),
		Clash:    clashfetcher.CreateClashFetcher(client, limiter, region),
	}
}
