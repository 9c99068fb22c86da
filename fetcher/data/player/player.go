package playerfetcher

import (
	"context"
	"fmt"
	"net/url"

	"clashfinder/fetcher/requests"
)

// PlayerFetcher queries the account endpoints on a regional route.
type PlayerFetcher struct {
	client  *requests.Client
	limiter *requests.RateLimiter // Pointer to the limiter, since it's shared by the route.
	region  string
}

// SummonerFetcher queries the summoner endpoints on a platform route.
type SummonerFetcher struct {
	client  *requests.Client
	limiter *requests.RateLimiter
	region  string
}

// Create a player fetcher.
func CreatePlayerFetcher(client *requests.Client, limiter *requests.RateLimiter, region string) *PlayerFetcher {
	return &PlayerFetcher{
		client:  client,
		limiter: limiter,
		region:  region,
	}
}

// Create a summoner fetcher.
func CreateSummonerFetcher(client *requests.Client, limiter *requests.RateLimiter, region string) *SummonerFetcher {
	return &SummonerFetcher{
		client:  client,
		limiter: limiter,
		region:  region,
	}
}

// GetAccountByRiotId searches a account by its game name and tag line.
func (p *PlayerFetcher) GetAccountByRiotId(ctx context.Context, gameName string, tagLine string) (*Account, error) {
	endpoint := p.client.URL(p.region, "/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(gameName), url.PathEscape(tagLine))

	var account Account
	if err := p.client.Get(ctx, p.limiter, endpoint, &account); err != nil {
		return nil, fmt.Errorf("couldn't get the account %s#%s: %w", gameName, tagLine, err)
	}
	return &account, nil
}

// GetAccountByPuuid returns the account of a given puuid.
func (p *PlayerFetcher) GetAccountByPuuid(ctx context.Context, puuid string) (*Account, error) {
	endpoint := p.client.URL(p.region, "/riot/account/v1/accounts/by-puuid/%s", url.PathEscape(puuid))

	var account Account
	if err := p.client.Get(ctx, p.limiter, endpoint, &account); err != nil {
		return nil, fmt.Errorf("couldn't get the account by puuid: %w", err)
	}
	return &account, nil
}

// GetSummonerByPuuid returns the summoner data on this platform.
func (s *SummonerFetcher) GetSummonerByPuuid(ctx context.Context, puuid string) (*Summoner, error) {
	endpoint := s.client.URL(s.region, "/lol/summoner/v4/summoners/by-puuid/%s", url.PathEscape(puuid))

	var summoner Summoner
	if err := s.client.Get(ctx, s.limiter, endpoint, &summoner); err != nil {
		return nil, fmt.Errorf("couldn't get the summoner by puuid on %s: %w", s.region, err)
	}
	return &summoner, nil
}

// GetSummonerById returns the summoner data by the encrypted summoner id.
func (s *SummonerFetcher) GetSummonerById(ctx context.Context, summonerId string) (*Summoner, error) {
	endpoint := s.client.URL(s.region, "/lol/summoner/v4/summoners/%s", url.PathEscape(summonerId))

	var summoner Summoner
	if err := s.client.Get(ctx, s.limiter, endpoint, &summoner); err != nil {
		return nil, fmt.Errorf("couldn't get the summoner by id on %s: %w", s.region, err)
	}
	return &summoner, nil
}
