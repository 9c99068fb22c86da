package identityservice

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"clashfinder/api/cache"
	"clashfinder/api/services/testutil"
	leaguefetcher "clashfinder/fetcher/data/league"
	matchfetcher "clashfinder/fetcher/data/match"
	playerfetcher "clashfinder/fetcher/data/player"
	"clashfinder/fetcher/requests"
	"clashfinder/pkg/regions"
	"clashfinder/pkg/riotvalues/riotid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	server = "eu west"
	puuid  = "puuid-1"
)

var (
	notFound    = &requests.StatusError{StatusCode: http.StatusNotFound, URL: "test"}
	badRequest  = &requests.StatusError{StatusCode: http.StatusBadRequest, URL: "test"}
	serverError = &requests.StatusError{StatusCode: http.StatusInternalServerError, URL: "test"}
)

// Helper to initialize the service without caching.
func setupTestService() (*IdentityService, *testutil.MockRiotAPI) {
	api := new(testutil.MockRiotAPI)
	service := NewIdentityService(&IdentityServiceDeps{API: api})
	return service, api
}

func TestNewIdentityService(t *testing.T) {
	api := new(testutil.MockRiotAPI)
	service := NewIdentityService(&IdentityServiceDeps{API: api})

	assert.NotNil(t, service)
	assert.NotNil(t, service.memo)
	assert.NotNil(t, service.logger)
	assert.Equal(t, api, service.api)
}

func TestResolveAccount(t *testing.T) {
	account := &playerfetcher.Account{Puuid: puuid, GameName: "Caps", TagLine: "EUW"}

	tests := []struct {
		name          string
		identity      riotid.Identity
		server        string
		mockAccount   *playerfetcher.Account
		mockErr       error
		expectCall    bool
		expected      *playerfetcher.Account
		expectedError error
	}{
		{
			name:        "found",
			identity:    riotid.Identity{Name: "Caps", Tag: "EUW"},
			server:      server,
			mockAccount: account,
			expectCall:  true,
			expected:    account,
		},
		{
			name:          "notFound",
			identity:      riotid.Identity{Name: "Caps", Tag: "EUW"},
			server:        server,
			mockErr:       notFound,
			expectCall:    true,
			expectedError: ErrAccountNotFound,
		},
		{
			name:          "badRequest",
			identity:      riotid.Identity{Name: "Caps", Tag: "EUW"},
			server:        server,
			mockErr:       badRequest,
			expectCall:    true,
			expectedError: ErrAccountNotFound,
		},
		{
			name:          "upstreamFailure",
			identity:      riotid.Identity{Name: "Caps", Tag: "EUW"},
			server:        server,
			mockErr:       serverError,
			expectCall:    true,
			expectedError: serverError,
		},
		{
			name:          "missingTag",
			identity:      riotid.Identity{Name: "Caps"},
			server:        server,
			expectedError: ErrAccountNotFound,
		},
		{
			name:          "unknownServer",
			identity:      riotid.Identity{Name: "Caps", Tag: "EUW"},
			server:        "atlantis",
			expectedError: regions.ErrUnknownServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, api := setupTestService()
			if tt.expectCall {
				api.On("AccountByRiotId", mock.Anything, regions.Europe, tt.identity.Name, tt.identity.Tag).Return(tt.mockAccount, tt.mockErr)
			}

			result, err := service.ResolveAccount(context.Background(), tt.identity, tt.server)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
			api.AssertExpectations(t)
		})
	}
}

func TestResolveAccountUpstreamIsNotNotFound(t *testing.T) {
	service, api := setupTestService()
	api.On("AccountByRiotId", mock.Anything, regions.Europe, "Caps", "EUW").Return(nil, errors.New("connection reset"))

	_, err := service.ResolveAccount(context.Background(), riotid.Identity{Name: "Caps", Tag: "EUW"}, server)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAccountNotFound)
}

func TestResolveAccountSeaUsesAsia(t *testing.T) {
	service, api := setupTestService()
	api.On("AccountByRiotId", mock.Anything, regions.Asia, "Player", "SG2").Return(&playerfetcher.Account{Puuid: puuid}, nil)

	account, err := service.ResolveAccount(context.Background(), riotid.Identity{Name: "Player", Tag: "SG2"}, "singapore")
	require.NoError(t, err)
	assert.Equal(t, puuid, account.Puuid)
	api.AssertExpectations(t)
}

func TestResolveAccountIsMemoized(t *testing.T) {
	api := new(testutil.MockRiotAPI)
	mc := cache.NewMemCache(time.Hour)
	defer mc.Close()

	service := NewIdentityService(&IdentityServiceDeps{
		API:  api,
		Memo: cache.NewMemoizer(mc, time.Minute),
	})

	api.On("AccountByRiotId", mock.Anything, regions.Europe, "Caps", "EUW").Return(&playerfetcher.Account{Puuid: puuid}, nil).Once()

	for range 3 {
		account, err := service.ResolveAccount(context.Background(), riotid.Identity{Name: "Caps", Tag: "EUW"}, server)
		require.NoError(t, err)
		assert.Equal(t, puuid, account.Puuid)
	}

	// Case doesn't matter for the key.
	_, err := service.ResolveAccount(context.Background(), riotid.Identity{Name: "caps", Tag: "euw"}, "EU West")
	require.NoError(t, err)

	api.AssertExpectations(t)
	api.AssertNumberOfCalls(t, "AccountByRiotId", 1)
}

func summoner(id string) *playerfetcher.Summoner {
	return &playerfetcher.Summoner{Id: id, Puuid: puuid, ProfileIconId: 29, SummonerLevel: 300}
}

func TestResolveSummoner(t *testing.T) {
	tests := []struct {
		name             string
		setup            func(api *testutil.MockRiotAPI)
		expectedId       string
		expectedPlatform regions.Platform
		expectedError    error
	}{
		{
			name: "directLookup",
			setup: func(api *testutil.MockRiotAPI) {
				api.On("SummonerByPuuid", mock.Anything, regions.Platform("euw1"), puuid).Return(summoner("s-euw"), nil)
			},
			expectedId:       "s-euw",
			expectedPlatform: "euw1",
		},
		{
			name: "leagueEntries",
			setup: func(api *testutil.MockRiotAPI) {
				api.On("SummonerByPuuid", mock.Anything, regions.Platform("euw1"), puuid).Return(nil, notFound)
				api.On("LeagueEntriesByPuuid", mock.Anything, regions.Platform("euw1"), puuid).
					Return([]leaguefetcher.LeagueEntry{{SummonerId: "s-league", QueueType: "RANKED_SOLO_5x5"}}, nil)
				api.On("SummonerById", mock.Anything, regions.Platform("euw1"), "s-league").Return(summoner("s-league"), nil)
			},
			expectedId:       "s-league",
			expectedPlatform: "euw1",
		},
		{
			name: "neighborPlatform",
			setup: func(api *testutil.MockRiotAPI) {
				api.On("SummonerByPuuid", mock.Anything, regions.Platform("euw1"), puuid).Return(nil, notFound)
				api.On("LeagueEntriesByPuuid", mock.Anything, regions.Platform("euw1"), puuid).Return([]leaguefetcher.LeagueEntry{}, nil)
				api.On("SummonerByPuuid", mock.Anything, regions.Platform("eun1"), puuid).Return(summoner("s-eune"), nil)
			},
			expectedId:       "s-eune",
			expectedPlatform: "eun1",
		},
		{
			name: "platformFromRecentMatch",
			setup: func(api *testutil.MockRiotAPI) {
				for _, platform := range []regions.Platform{"euw1", "eun1"} {
					api.On("SummonerByPuuid", mock.Anything, platform, puuid).Return(nil, notFound)
					api.On("LeagueEntriesByPuuid", mock.Anything, platform, puuid).Return(nil, serverError)
				}
				api.On("MatchIds", mock.Anything, regions.Europe, puuid, 0, 1).Return([]string{"TR1_555"}, nil)
				api.On("SummonerByPuuid", mock.Anything, regions.Platform("tr1"), puuid).Return(summoner("s-tr"), nil)
			},
			expectedId:       "s-tr",
			expectedPlatform: "tr1",
		},
		{
			name: "summonerIdFromMatchData",
			setup: func(api *testutil.MockRiotAPI) {
				for _, platform := range []regions.Platform{"euw1", "eun1", "tr1"} {
					api.On("SummonerByPuuid", mock.Anything, platform, puuid).Return(nil, notFound)
				}
				for _, platform := range []regions.Platform{"euw1", "eun1"} {
					api.On("LeagueEntriesByPuuid", mock.Anything, platform, puuid).Return(nil, notFound)
				}
				api.On("MatchIds", mock.Anything, regions.Europe, puuid, 0, 1).Return([]string{"TR1_555"}, nil)
				api.On("Match", mock.Anything, regions.Europe, "TR1_555").Return(&matchfetcher.MatchData{
					Info: matchfetcher.MatchInfo{Participants: []matchfetcher.MatchPlayer{
						{Puuid: "other", SummonerId: "s-other"},
						{Puuid: puuid, SummonerId: "s-match"},
					}},
				}, nil)
				api.On("SummonerById", mock.Anything, regions.Platform("tr1"), "s-match").Return(summoner("s-match"), nil)
			},
			expectedId:       "s-match",
			expectedPlatform: "tr1",
		},
		{
			name: "everyStepFails",
			setup: func(api *testutil.MockRiotAPI) {
				for _, platform := range []regions.Platform{"euw1", "eun1"} {
					api.On("SummonerByPuuid", mock.Anything, platform, puuid).Return(nil, notFound)
					api.On("LeagueEntriesByPuuid", mock.Anything, platform, puuid).Return(nil, notFound)
				}
				api.On("MatchIds", mock.Anything, regions.Europe, puuid, 0, 1).Return([]string{}, nil)
			},
			expectedError: ErrSummonerNotFound,
		},
		{
			name: "profileWithoutIdIsKept",
			setup: func(api *testutil.MockRiotAPI) {
				api.On("SummonerByPuuid", mock.Anything, regions.Platform("euw1"), puuid).Return(summoner(""), nil)
				api.On("LeagueEntriesByPuuid", mock.Anything, regions.Platform("euw1"), puuid).Return(nil, notFound)
				api.On("SummonerByPuuid", mock.Anything, regions.Platform("eun1"), puuid).Return(nil, notFound)
				api.On("LeagueEntriesByPuuid", mock.Anything, regions.Platform("eun1"), puuid).Return(nil, notFound)
				api.On("MatchIds", mock.Anything, regions.Europe, puuid, 0, 1).Return(nil, serverError)
			},
			expectedId:       "",
			expectedPlatform: "euw1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, api := setupTestService()
			tt.setup(api)

			profile, err := service.ResolveSummoner(context.Background(), puuid, server)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, profile)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedId, profile.Id)
				assert.Equal(t, tt.expectedPlatform, profile.Platform)
				assert.Equal(t, puuid, profile.Puuid)
			}
			api.AssertExpectations(t)
		})
	}
}

func TestResolveSummonerNoNeighbor(t *testing.T) {
	service, api := setupTestService()
	api.On("SummonerByPuuid", mock.Anything, regions.Platform("kr"), puuid).Return(nil, notFound)
	api.On("LeagueEntriesByPuuid", mock.Anything, regions.Platform("kr"), puuid).Return(nil, notFound)
	api.On("MatchIds", mock.Anything, regions.Asia, puuid, 0, 1).Return(nil, notFound)

	_, err := service.ResolveSummoner(context.Background(), puuid, "korea")
	assert.ErrorIs(t, err, ErrSummonerNotFound)
	api.AssertExpectations(t)
}

func TestResolveSummonerUnknownServer(t *testing.T) {
	service, api := setupTestService()

	_, err := service.ResolveSummoner(context.Background(), puuid, "atlantis")
	assert.ErrorIs(t, err, regions.ErrUnknownServer)
	api.AssertExpectations(t)
}
