package testutil

import (
	"context"
	"testing"
	"time"

	clashfetcher "clashfinder/fetcher/data/clash"
	leaguefetcher "clashfinder/fetcher/data/league"
	matchfetcher "clashfinder/fetcher/data/match"
	playerfetcher "clashfinder/fetcher/data/player"
	"clashfinder/pkg/regions"

	"github.com/stretchr/testify/mock"
)

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// Typed getter that accepts a nil return.
func get[T any](args mock.Arguments, index int) T {
	var zero T
	value := args.Get(index)
	if value == nil {
		return zero
	}
	return value.(T)
}

// ============================================================================
// Riot API, implements every consumer interface of the services.
// ============================================================================

type MockRiotAPI struct {
	mock.Mock
}

func (m *MockRiotAPI) AccountByRiotId(ctx context.Context, region regions.Regional, gameName string, tagLine string) (*playerfetcher.Account, error) {
	args := m.Called(ctx, region, gameName, tagLine)
	return get[*playerfetcher.Account](args, 0), args.Error(1)
}

func (m *MockRiotAPI) AccountByPuuid(ctx context.Context, region regions.Regional, puuid string) (*playerfetcher.Account, error) {
	args := m.Called(ctx, region, puuid)
	return get[*playerfetcher.Account](args, 0), args.Error(1)
}

func (m *MockRiotAPI) SummonerByPuuid(ctx context.Context, region regions.Platform, puuid string) (*playerfetcher.Summoner, error) {
	args := m.Called(ctx, region, puuid)
	return get[*playerfetcher.Summoner](args, 0), args.Error(1)
}

func (m *MockRiotAPI) SummonerById(ctx context.Context, region regions.Platform, summonerId string) (*playerfetcher.Summoner, error) {
	args := m.Called(ctx, region, summonerId)
	return get[*playerfetcher.Summoner](args, 0), args.Error(1)
}

func (m *MockRiotAPI) LeagueEntriesByPuuid(ctx context.Context, region regions.Platform, puuid string) ([]leaguefetcher.LeagueEntry, error) {
	args := m.Called(ctx, region, puuid)
	return get[[]leaguefetcher.LeagueEntry](args, 0), args.Error(1)
}

func (m *MockRiotAPI) MatchIds(ctx context.Context, region regions.Regional, puuid string, start int, count int) ([]string, error) {
	args := m.Called(ctx, region, puuid, start, count)
	return get[[]string](args, 0), args.Error(1)
}

func (m *MockRiotAPI) Match(ctx context.Context, region regions.Regional, matchId string) (*matchfetcher.MatchData, error) {
	args := m.Called(ctx, region, matchId)
	return get[*matchfetcher.MatchData](args, 0), args.Error(1)
}

func (m *MockRiotAPI) ClashPlayersBySummonerId(ctx context.Context, region regions.Platform, summonerId string) ([]clashfetcher.Player, error) {
	args := m.Called(ctx, region, summonerId)
	return get[[]clashfetcher.Player](args, 0), args.Error(1)
}

func (m *MockRiotAPI) ClashPlayersByPuuid(ctx context.Context, region regions.Platform, puuid string) ([]clashfetcher.Player, error) {
	args := m.Called(ctx, region, puuid)
	return get[[]clashfetcher.Player](args, 0), args.Error(1)
}

func (m *MockRiotAPI) ClashTeam(ctx context.Context, region regions.Platform, teamId string) (*clashfetcher.Team, error) {
	args := m.Called(ctx, region, teamId)
	return get[*clashfetcher.Team](args, 0), args.Error(1)
}

// ============================================================================
// DDragon names.
// ============================================================================

type MockNameLookup struct {
	mock.Mock
}

func (m *MockNameLookup) NameForItem(id int) string {
	return m.Called(id).String(0)
}

func (m *MockNameLookup) NameForRune(id int) string {
	return m.Called(id).String(0)
}

func (m *MockNameLookup) NameForRuneStyle(id int) string {
	return m.Called(id).String(0)
}

func (m *MockNameLookup) NameForSummonerSpell(id int) string {
	return m.Called(id).String(0)
}

func (m *MockNameLookup) NameForStatShard(id int) string {
	return m.Called(id).String(0)
}

// ============================================================================
// Redis.
// ============================================================================

type MockRedisClient struct {
	mock.Mock
}

func (m *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}
