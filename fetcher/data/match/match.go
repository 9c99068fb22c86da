package matchfetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"clashfinder/fetcher/requests"
)

// The match fetcher with it's limiter and region.
type MatchFetcher struct {
	client  *requests.Client
	limiter *requests.RateLimiter
	region  string
}

// Create a instance of the match fetcher.
func CreateMatchFetcher(client *requests.Client, limiter *requests.RateLimiter, region string) *MatchFetcher {
	return &MatchFetcher{
		client:  client,
		limiter: limiter,
		region:  region,
	}
}

// Handle the conversion of the int timestamps from riot.
type RiotTime time.Time

// Add the riot time UnmarshalJSON.
// A zero timestamp is kept as the zero time.
func (rt *RiotTime) UnmarshalJSON(b []byte) error {
	var timestamp int64
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}

	if timestamp == 0 {
		*rt = RiotTime(time.Time{})
		return nil
	}

	// Convert milliseconds to time.Time
	*rt = RiotTime(time.UnixMilli(timestamp))
	return nil
}

// MarshalJSON writes the time back as milliseconds.
func (rt RiotTime) MarshalJSON() ([]byte, error) {
	if rt.Time().IsZero() {
		return []byte("0"), nil
	}
	return json.Marshal(rt.Time().UnixMilli())
}

// Get the true time.
func (rt RiotTime) Time() time.Time {
	return time.Time(rt)
}

// MatchIdsOptions are the query params of the match list.
type MatchIdsOptions struct {
	Type  string
	Start int
	Count int
}

// GetMatchIds returns a page of match ids, most recent first.
// It's a single cheap call, so it's never retried.
func (m *MatchFetcher) GetMatchIds(ctx context.Context, puuid string, opts MatchIdsOptions) ([]string, error) {
	params := url.Values{}
	if opts.Type != "" {
		params.Set("type", opts.Type)
	}
	params.Set("start", strconv.Itoa(opts.Start))
	params.Set("count", strconv.Itoa(opts.Count))

	endpoint := m.client.URL(m.region, "/lol/match/v5/matches/by-puuid/%s/ids?%s", url.PathEscape(puuid), params.Encode())

	var matches []string
	if err := m.client.Get(ctx, m.limiter, endpoint, &matches); err != nil {
		return nil, fmt.Errorf("couldn't get the match list on %s: %w", m.region, err)
	}

	// A 200 with a null body is still a empty page.
	if matches == nil {
		matches = []string{}
	}
	return matches, nil
}

// GetMatchData returns a given match data, retrying rate limits and server errors.
func (m *MatchFetcher) GetMatchData(ctx context.Context, matchId string) (*MatchData, error) {
	endpoint := m.client.URL(m.region, "/lol/match/v5/matches/%s", url.PathEscape(matchId))

	var matchData MatchData
	if err := m.client.GetWithRetry(ctx, m.limiter, endpoint, &matchData); err != nil {
		return nil, fmt.Errorf("couldn't get the match %s: %w", matchId, err)
	}
	return &matchData, nil
}
