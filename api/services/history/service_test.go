package historyservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"clashfinder/api/converters"
	identityservice "clashfinder/api/services/identity"
	"clashfinder/api/services/testutil"
	playerfetcher "clashfinder/fetcher/data/player"
	"clashfinder/fetcher/regionmanager"
	"clashfinder/fetcher/requests"
	"clashfinder/pkg/config"
	"clashfinder/pkg/regions"
	"clashfinder/pkg/riotvalues/riotid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	server = "eu west"
	puuid  = "me"
)

var (
	identity   = riotid.Identity{Name: "Caps", Tag: "EUW"}
	matchStart = time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC)
	forbidden  = &requests.StatusError{StatusCode: http.StatusForbidden, URL: "test"}
)

// Helper to initialize the service on top of the mocked Riot API.
func setupTestService(cfg config.HistoryConfiguration) (*HistoryService, *testutil.MockRiotAPI) {
	api := new(testutil.MockRiotAPI)

	names := new(testutil.MockNameLookup)
	for _, method := range []string{"NameForItem", "NameForRune", "NameForRuneStyle", "NameForSummonerSpell", "NameForStatShard"} {
		names.On(method, mock.Anything).Return("")
	}

	service := NewHistoryService(&HistoryServiceDeps{
		API:      api,
		Accounts: identityservice.NewIdentityService(&identityservice.IdentityServiceDeps{API: api}),
		Enricher: converters.NewParticipantEnricher(names),
		Config:   cfg,
	})
	return service, api
}

func mockAccount(api *testutil.MockRiotAPI) {
	api.On("AccountByRiotId", mock.Anything, regions.Europe, identity.Name, identity.Tag).
		Return(&playerfetcher.Account{Puuid: puuid, GameName: identity.Name, TagLine: identity.Tag}, nil)
}

func matchIds(prefix string, n int) []string {
	ids := make([]string, 0, n)
	for i := range n {
		ids = append(ids, prefix+string(rune('A'+i)))
	}
	return ids
}

func mockMatches(api *testutil.MockRiotAPI, ids []string) {
	for i, id := range ids {
		api.On("Match", mock.Anything, regions.Europe, id).Return(testutil.NewMatch(id, puuid, i%10, matchStart), nil)
	}
}

func TestNewHistoryServiceDefaults(t *testing.T) {
	service, _ := setupTestService(config.HistoryConfiguration{})

	assert.Equal(t, 20, service.config.PageSize)
	assert.Equal(t, 5, service.config.InitialFetch)
	assert.Equal(t, 25*time.Second, service.config.Timeout)
	assert.Equal(t, defaultConcurrency, service.fetcher.concurrency)
}

func TestGetInitialHistory(t *testing.T) {
	service, api := setupTestService(config.HistoryConfiguration{PageSize: 20, InitialFetch: 5})
	ids := matchIds("EUW1_", 20)

	mockAccount(api)
	api.On("MatchIds", mock.Anything, regions.Europe, puuid, 0, 20).Return(ids, nil)
	mockMatches(api, ids[:5])

	history, err := service.GetInitialHistory(context.Background(), identity, server)
	require.NoError(t, err)

	require.Len(t, history.Matches, 5)
	assert.Equal(t, 5, history.NextOffset)
	for i, match := range history.Matches {
		assert.Equal(t, ids[i], match[0].MatchId)
		assert.Equal(t, puuid, match[0].Puuid)
		assert.Len(t, match, 10)
	}

	// Only the first participant of the first match has the request context.
	first := history.Matches[0][0]
	assert.Equal(t, server, first.Server)
	assert.Equal(t, identity.Name, first.QueriedName)
	assert.Equal(t, identity.Tag, first.QueriedTag)
	assert.Empty(t, history.Matches[1][0].Server)
	assert.Empty(t, history.Matches[0][1].QueriedName)

	api.AssertExpectations(t)
	api.AssertNumberOfCalls(t, "Match", 5)
}

func TestGetInitialHistoryShortHistory(t *testing.T) {
	service, api := setupTestService(config.HistoryConfiguration{PageSize: 20, InitialFetch: 5})
	ids := matchIds("EUW1_", 2)

	mockAccount(api)
	api.On("MatchIds", mock.Anything, regions.Europe, puuid, 0, 20).Return(ids, nil)
	mockMatches(api, ids)

	history, err := service.GetInitialHistory(context.Background(), identity, server)
	require.NoError(t, err)
	assert.Len(t, history.Matches, 2)
	assert.Equal(t, 2, history.NextOffset)
}

func TestGetInitialHistoryNotFound(t *testing.T) {
	tests := []struct {
		name  string
		setup func(api *testutil.MockRiotAPI)
	}{
		{
			name: "accountNotFound",
			setup: func(api *testutil.MockRiotAPI) {
				api.On("AccountByRiotId", mock.Anything, regions.Europe, identity.Name, identity.Tag).
					Return(nil, &requests.StatusError{StatusCode: http.StatusNotFound})
			},
		},
		{
			name: "noMatches",
			setup: func(api *testutil.MockRiotAPI) {
				mockAccount(api)
				api.On("MatchIds", mock.Anything, regions.Europe, puuid, 0, 20).Return([]string{}, nil)
			},
		},
		{
			name: "listingNotFound",
			setup: func(api *testutil.MockRiotAPI) {
				mockAccount(api)
				api.On("MatchIds", mock.Anything, regions.Europe, puuid, 0, 20).Return(nil, &requests.StatusError{StatusCode: http.StatusNotFound})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, api := setupTestService(config.HistoryConfiguration{})
			tt.setup(api)

			history, err := service.GetInitialHistory(context.Background(), identity, server)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Nil(t, history)
			api.AssertExpectations(t)
		})
	}
}

func TestGetInitialHistoryUpstreamFailureIsNotNotFound(t *testing.T) {
	service, api := setupTestService(config.HistoryConfiguration{})
	mockAccount(api)
	api.On("MatchIds", mock.Anything, regions.Europe, puuid, 0, 20).Return(nil, &requests.StatusError{StatusCode: http.StatusServiceUnavailable})

	_, err := service.GetInitialHistory(context.Background(), identity, server)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, http.StatusServiceUnavailable, requests.StatusCode(err))
}

func TestGetInitialHistoryUnknownServer(t *testing.T) {
	service, _ := setupTestService(config.HistoryConfiguration{})

	_, err := service.GetInitialHistory(context.Background(), identity, "atlantis")
	assert.ErrorIs(t, err, regions.ErrUnknownServer)
}

// The load more listing starts exactly where the initial page stopped.
func TestPaginationDoesNotOverlap(t *testing.T) {
	service, api := setupTestService(config.HistoryConfiguration{PageSize: 20, InitialFetch: 5})
	ids := matchIds("EUW1_", 20)

	mockAccount(api)
	api.On("MatchIds", mock.Anything, regions.Europe, puuid, 0, 20).Return(ids, nil).Once()
	api.On("MatchIds", mock.Anything, regions.Europe, puuid, 5, 7).Return(ids[5:12], nil).Once()
	mockMatches(api, ids[:12])

	initial, err := service.GetInitialHistory(context.Background(), identity, server)
	require.NoError(t, err)

	more, err := service.GetMoreMatches(context.Background(), identity, server, initial.NextOffset, 7)
	require.NoError(t, err)

	api.AssertCalled(t, "MatchIds", mock.Anything, regions.Europe, puuid, 5, 7)
	require.Len(t, more.Matches, 7)
	assert.Equal(t, 12, more.NextOffset)
	assert.Equal(t, ids[5], more.Matches[0][0].MatchId)

	// No request context on load more.
	assert.Empty(t, more.Matches[0][0].Server)
	api.AssertExpectations(t)
}

func TestGetMoreMatches(t *testing.T) {
	tests := []struct {
		name          string
		offset        int
		count         int
		expectedStart int
		expectedCount int
	}{
		{name: "regular", offset: 10, count: 5, expectedStart: 10, expectedCount: 5},
		{name: "countTooHigh", offset: 0, count: 500, expectedStart: 0, expectedCount: 100},
		{name: "countTooLow", offset: 3, count: 0, expectedStart: 3, expectedCount: 1},
		{name: "negativeOffset", offset: -4, count: 2, expectedStart: 0, expectedCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, api := setupTestService(config.HistoryConfiguration{})
			ids := matchIds("EUW1_", 1)

			mockAccount(api)
			api.On("MatchIds", mock.Anything, regions.Europe, puuid, tt.expectedStart, tt.expectedCount).Return(ids, nil)
			mockMatches(api, ids)

			history, err := service.GetMoreMatches(context.Background(), identity, server, tt.offset, tt.count)
			require.NoError(t, err)
			assert.Len(t, history.Matches, 1)
			assert.Equal(t, tt.expectedStart+1, history.NextOffset)
			api.AssertExpectations(t)
		})
	}
}

func TestGetMoreMatchesEndOfHistory(t *testing.T) {
	service, api := setupTestService(config.HistoryConfiguration{})
	mockAccount(api)
	api.On("MatchIds", mock.Anything, regions.Europe, puuid, 40, 10).Return([]string{}, nil)

	_, err := service.GetMoreMatches(context.Background(), identity, server, 40, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}

// A single failed match is dropped, the page keeps the others.
func TestPartialSuccess(t *testing.T) {
	service, api := setupTestService(config.HistoryConfiguration{PageSize: 5, InitialFetch: 5})
	ids := matchIds("EUW1_", 5)

	mockAccount(api)
	api.On("MatchIds", mock.Anything, regions.Europe, puuid, 0, 5).Return(ids, nil)
	mockMatches(api, []string{ids[0], ids[1], ids[3], ids[4]})
	api.On("Match", mock.Anything, regions.Europe, ids[2]).Return(nil, forbidden)

	history, err := service.GetInitialHistory(context.Background(), identity, server)
	require.NoError(t, err)

	require.Len(t, history.Matches, 4)
	assert.Equal(t, 5, history.NextOffset)
	got := make([]string, 0, 4)
	for _, match := range history.Matches {
		got = append(got, match[0].MatchId)
	}
	assert.Equal(t, []string{ids[0], ids[1], ids[3], ids[4]}, got)
}

// The results follow the ids, not the completion order.
func TestFetchAllPreservesOrder(t *testing.T) {
	service, api := setupTestService(config.HistoryConfiguration{})
	ids := []string{"EUW1_A", "EUW1_B", "EUW1_C"}

	api.On("Match", mock.Anything, regions.Europe, "EUW1_A").
		After(100*time.Millisecond).
		Return(testutil.NewMatch("EUW1_A", puuid, 0, matchStart), nil)
	api.On("Match", mock.Anything, regions.Europe, "EUW1_B").Return(testutil.NewMatch("EUW1_B", puuid, 0, matchStart), nil)
	api.On("Match", mock.Anything, regions.Europe, "EUW1_C").Return(testutil.NewMatch("EUW1_C", puuid, 0, matchStart), nil)

	results, err := service.fetcher.FetchAll(context.Background(), ids, puuid, server)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, result := range results {
		require.NoError(t, result.Err)
		assert.Equal(t, ids[i], result.MatchId)
		assert.Equal(t, ids[i], result.Participants[0].MatchId)
	}
}

func TestFetchAllReportsFailures(t *testing.T) {
	service, api := setupTestService(config.HistoryConfiguration{})
	api.On("Match", mock.Anything, regions.Europe, "EUW1_A").Return(nil, forbidden)
	api.On("Match", mock.Anything, regions.Europe, "EUW1_B").Return(testutil.NewMatch("EUW1_B", "someone-else", 0, matchStart), nil)

	results, err := service.fetcher.FetchAll(context.Background(), []string{"EUW1_A", "EUW1_B"}, puuid, server)
	require.NoError(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, results[0].Err, &fetchErr)
	assert.Equal(t, "EUW1_A", fetchErr.MatchId)
	assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)

	assert.ErrorIs(t, results[1].Err, converters.ErrPlayerNotInMatch)
	assert.Nil(t, results[1].Participants)
}

// No more than the configured number of detail requests are in flight.
func TestFetchAllBoundsConcurrency(t *testing.T) {
	api := new(testutil.MockRiotAPI)
	names := new(testutil.MockNameLookup)
	for _, method := range []string{"NameForItem", "NameForRune", "NameForRuneStyle", "NameForSummonerSpell", "NameForStatShard"} {
		names.On(method, mock.Anything).Return("")
	}
	fetcher := NewMatchFetcher(api, converters.NewParticipantEnricher(names), 2, nil)

	var inFlight, peak atomic.Int32
	ids := matchIds("EUW1_", 8)
	for _, id := range ids {
		api.On("Match", mock.Anything, regions.Europe, id).
			Run(func(args mock.Arguments) {
				current := inFlight.Add(1)
				for {
					old := peak.Load()
					if current <= old || peak.CompareAndSwap(old, current) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				inFlight.Add(-1)
			}).
			Return(testutil.NewMatch(id, puuid, 0, matchStart), nil)
	}

	results, err := fetcher.FetchAll(context.Background(), ids, puuid, server)
	require.NoError(t, err)
	assert.Len(t, results, 8)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

// A match that is always rate limited is tried the configured number of times and then dropped.
func TestRetryTermination(t *testing.T) {
	policy := requests.RetryPolicy{
		MaxAttempts:         3,
		BaseDelay:           10 * time.Millisecond,
		MaxDelay:            40 * time.Millisecond,
		RandomizationFactor: 0.2,
	}

	var detailCalls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/riot/account/v1/accounts/by-riot-id/"):
			json.NewEncoder(w).Encode(playerfetcher.Account{Puuid: puuid, GameName: "Caps", TagLine: "EUW"})
		case strings.HasSuffix(r.URL.Path, "/ids"):
			json.NewEncoder(w).Encode([]string{"EUW1_OK", "EUW1_LIMITED"})
		case strings.HasSuffix(r.URL.Path, "/EUW1_OK"):
			json.NewEncoder(w).Encode(testutil.NewMatch("EUW1_OK", puuid, 0, matchStart))
		default:
			detailCalls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}
	})
	upstream := httptest.NewServer(handler)
	defer upstream.Close()

	client := requests.NewClient(requests.ClientOptions{
		ApiKey:     "RGAPI-test",
		HostFormat: upstream.URL + "/%s",
		Retry:      policy,
	})
	manager := regionmanager.NewRegionManager(client, config.RiotConfiguration{})

	names := new(testutil.MockNameLookup)
	for _, method := range []string{"NameForItem", "NameForRune", "NameForRuneStyle", "NameForSummonerSpell", "NameForStatShard"} {
		names.On(method, mock.Anything).Return("")
	}

	service := NewHistoryService(&HistoryServiceDeps{
		API:      manager,
		Accounts: identityservice.NewIdentityService(&identityservice.IdentityServiceDeps{API: manager}),
		Enricher: converters.NewParticipantEnricher(names),
		Config:   config.HistoryConfiguration{PageSize: 20, InitialFetch: 5},
	})

	started := time.Now()
	history, err := service.GetInitialHistory(context.Background(), identity, server)
	elapsed := time.Since(started)

	require.NoError(t, err)
	require.Len(t, history.Matches, 1)
	assert.Equal(t, "EUW1_OK", history.Matches[0][0].MatchId)
	assert.Equal(t, int32(policy.MaxAttempts), detailCalls.Load())
	assert.Less(t, elapsed, policy.MaxTotalDelay()+time.Second)
}
