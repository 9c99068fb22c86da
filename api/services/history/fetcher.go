package historyservice

import (
	"context"
	"fmt"

	"clashfinder/api/dto"
	matchfetcher "clashfinder/fetcher/data/match"
	"clashfinder/fetcher/requests"
	"clashfinder/pkg/logger"
	"clashfinder/pkg/regions"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 3

// Enricher converts a raw match into its participants.
type Enricher interface {
	Enrich(match *matchfetcher.MatchData, puuid string) (dto.MatchParticipantList, error)
}

// FetchError is why a single match is missing from a page.
type FetchError struct {
	MatchId    string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("couldn't fetch match %s: %v", e.MatchId, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// MatchResult is the outcome of a single match, either the participants or the error.
type MatchResult struct {
	MatchId      string
	Participants dto.MatchParticipantList
	Err          error
}

// MatchFetcher gets the match details with a bounded number of requests in flight.
type MatchFetcher struct {
	api         MatchAPI
	enricher    Enricher
	concurrency int
	logger      *logger.Logger
}

func NewMatchFetcher(api MatchAPI, enricher Enricher, concurrency int, log *logger.Logger) *MatchFetcher {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &MatchFetcher{
		api:         api,
		enricher:    enricher,
		concurrency: concurrency,
		logger:      log,
	}
}

// FetchAll returns one result per id, in the order of the ids.
// A failed match never cancels the others.
func (f *MatchFetcher) FetchAll(ctx context.Context, ids []string, puuid string, server string) ([]MatchResult, error) {
	route, err := regions.Resolve(server)
	if err != nil {
		return nil, err
	}

	results := make([]MatchResult, len(ids))

	var g errgroup.Group
	g.SetLimit(f.concurrency)

	for i, matchId := range ids {
		results[i].MatchId = matchId

		g.Go(func() error {
			participants, err := f.fetchOne(ctx, route.Regional, matchId, puuid)
			if err != nil {
				results[i].Err = &FetchError{
					MatchId:    matchId,
					StatusCode: requests.StatusCode(err),
					Err:        err,
				}
				return nil
			}

			results[i].Participants = participants
			return nil
		})
	}

	g.Wait()
	return results, nil
}

func (f *MatchFetcher) fetchOne(ctx context.Context, regional regions.Regional, matchId string, puuid string) (dto.MatchParticipantList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	match, err := f.api.Match(ctx, regional, matchId)
	if err != nil {
		return nil, err
	}

	return f.enricher.Enrich(match, puuid)
}
