package regionmanager

import (
	"context"
	"fmt"
	"sync"

	"clashfinder/fetcher/data"
	clashfetcher "clashfinder/fetcher/data/clash"
	leaguefetcher "clashfinder/fetcher/data/league"
	matchfetcher "clashfinder/fetcher/data/match"
	playerfetcher "clashfinder/fetcher/data/player"
	"clashfinder/fetcher/requests"
	"clashfinder/pkg/config"
	"clashfinder/pkg/messages"
	queuevalues "clashfinder/pkg/riotvalues/queue"
	"clashfinder/pkg/regions"
)

// RegionManager holds one fetcher per route, each with its own rate limiter.
type RegionManager struct {
	regionalFetchers map[regions.Regional]*data.RegionalFetcher
	platformFetchers map[regions.Platform]*data.PlatformFetcher

	mu sync.RWMutex
}

// NewRegionManager creates the fetchers for every known route.
func NewRegionManager(client *requests.Client, cfg config.RiotConfiguration) *RegionManager {
	manager := &RegionManager{
		regionalFetchers: make(map[regions.Regional]*data.RegionalFetcher),
		platformFetchers: make(map[regions.Platform]*data.PlatformFetcher),
	}

	for _, regional := range regions.Regionals() {
		manager.regionalFetchers[regional] = data.CreateRegionalFetcher(client, cfg, string(regional))
	}

	for _, platform := range regions.Platforms() {
		manager.platformFetchers[platform] = data.CreatePlatformFetcher(client, cfg, string(platform))
	}

	return manager
}

// Get the fetcher for a given regional route.
func (m *RegionManager) GetRegionalFetcher(region regions.Regional) (*data.RegionalFetcher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fetcher, exists := m.regionalFetchers[region]
	if !exists {
		return nil, fmt.Errorf(messages.RegionNotFound, region)
	}

	return fetcher, nil
}

// Get the fetcher for a given platform route.
func (m *RegionManager) GetPlatformFetcher(region regions.Platform) (*data.PlatformFetcher, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fetcher, exists := m.platformFetchers[region]
	if !exists {
		return nil, fmt.Errorf(messages.RegionNotFound, region)
	}

	return fetcher, nil
}

// AccountByRiotId routes the account search to the regional fetcher.
func (m *RegionManager) AccountByRiotId(ctx context.Context, region regions.Regional, gameName string, tagLine string) (*playerfetcher.Account, error) {
	fetcher, err := m.GetRegionalFetcher(region)
	if err != nil {
		return nil, err
	}
	return fetcher.Player.GetAccountByRiotId(ctx, gameName, tagLine)
}

// AccountByPuuid routes the account lookup to the regional fetcher.
func (m *RegionManager) AccountByPuuid(ctx context.Context, region regions.Regional, puuid string) (*playerfetcher.Account, error) {
	fetcher, err := m.GetRegionalFetcher(region)
	if err != nil {
		return nil, err
	}
	return fetcher.Player.GetAccountByPuuid(ctx, puuid)
}

// MatchIds routes the ranked match list to the regional fetcher.
func (m *RegionManager) MatchIds(ctx context.Context, region regions.Regional, puuid string, start int, count int) ([]string, error) {
	fetcher, err := m.GetRegionalFetcher(region)
	if err != nil {
		return nil, err
	}
	return fetcher.Match.GetMatchIds(ctx, puuid, matchfetcher.MatchIdsOptions{
		Type:  queuevalues.RankedType,
		Start: start,
		Count: count,
	})
}

// Match routes the match detail to the regional fetcher.
func (m *RegionManager) Match(ctx context.Context, region regions.Regional, matchId string) (*matchfetcher.MatchData, error) {
	fetcher, err := m.GetRegionalFetcher(region)
	if err != nil {
		return nil, err
	}
	return fetcher.Match.GetMatchData(ctx, matchId)
}

// SummonerByPuuid routes the summoner lookup to the platform fetcher.
func (m *RegionManager) SummonerByPuuid(ctx context.Context, region regions.Platform, puuid string) (*playerfetcher.Summoner, error) {
	fetcher, err := m.GetPlatformFetcher(region)
	if err != nil {
		return nil, err
	}
	return fetcher.Summoner.GetSummonerByPuuid(ctx, puuid)
}

// SummonerById routes the summoner lookup to the platform fetcher.
func (m *RegionManager) SummonerById(ctx context.Context, region regions.Platform, summonerId string) (*playerfetcher.Summoner, error) {
	fetcher, err := m.GetPlatformFetcher(region)
	if err != nil {
		return nil, err
	}
	return fetcher.Summoner.GetSummonerById(ctx, summonerId)
}

// LeagueEntriesByPuuid routes the league entries to the platform fetcher.
func (m *RegionManager) LeagueEntriesByPuuid(ctx context.Context, region regions.Platform, puuid string) ([]leaguefetcher.LeagueEntry, error) {
	fetcher, err := m.GetPlatformFetcher(region)
	if err != nil {
		return nil, err
	}
	return fetcher.League.GetLeagueEntriesByPuuid(ctx, puuid)
}

// ClashPlayersBySummonerId routes the clash registrations to the platform fetcher.
func (m *RegionManager) ClashPlayersBySummonerId(ctx context.Context, region regions.Platform, summonerId string) ([]clashfetcher.Player, error) {
	fetcher, err := m.GetPlatformFetcher(region)
	if err != nil {
		return nil, err
	}
	return fetcher.Clash.GetPlayersBySummonerId(ctx, summonerId)
}

// ClashPlayersByPuuid routes the clash registrations to the platform fetcher.
func (m *RegionManager) ClashPlayersByPuuid(ctx context.Context, region regions.Platform, puuid string) ([]clashfetcher.Player, error) {
	fetcher, err := m.GetPlatformFetcher(region)
	if err != nil {
		return nil, err
	}
	return fetcher.Clash.GetPlayersByPuuid(ctx, puuid)
}

// ClashTeam routes the clash team to the platform fetcher.
func (m *RegionManager) ClashTeam(ctx context.Context, region regions.Platform, teamId string) (*clashfetcher.Team, error) {
	fetcher, err := m.GetPlatformFetcher(region)
	if err != nil {
		return nil, err
	}
	return fetcher.Clash.GetTeam(ctx, teamId)
}
