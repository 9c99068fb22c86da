package historyservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clashfinder/api/converters"
	"clashfinder/api/dto"
	identityservice "clashfinder/api/services/identity"
	matchfetcher "clashfinder/fetcher/data/match"
	playerfetcher "clashfinder/fetcher/data/player"
	"clashfinder/fetcher/requests"
	"clashfinder/pkg/config"
	"clashfinder/pkg/logger"
	"clashfinder/pkg/regions"
	"clashfinder/pkg/riotvalues/riotid"
)

const maxCount = 100

// ErrNotFound is returned when the player doesn't exist or has no more matches.
var ErrNotFound = errors.New("no match history found")

// MatchAPI is the part of the region manager used for the match history.
type MatchAPI interface {
	MatchIds(ctx context.Context, region regions.Regional, puuid string, start int, count int) ([]string, error)
	Match(ctx context.Context, region regions.Regional, matchId string) (*matchfetcher.MatchData, error)
}

// AccountResolver gets the account of a Riot Id.
type AccountResolver interface {
	ResolveAccount(ctx context.Context, identity riotid.Identity, server string) (*playerfetcher.Account, error)
}

// HistoryService builds the match history pages.
type HistoryService struct {
	accounts AccountResolver
	pager    *MatchIdPager
	fetcher  *MatchFetcher
	config   config.HistoryConfiguration
	logger   *logger.Logger
}

// HistoryServiceDeps is the dependency list for the history service.
type HistoryServiceDeps struct {
	API         MatchAPI
	Accounts    AccountResolver
	Enricher    Enricher
	Concurrency int
	Config      config.HistoryConfiguration
	Logger      *logger.Logger
}

// NewHistoryService creates a history service.
func NewHistoryService(deps *HistoryServiceDeps) *HistoryService {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}

	cfg := deps.Config
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.InitialFetch <= 0 {
		cfg.InitialFetch = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 25 * time.Second
	}

	return &HistoryService{
		accounts: deps.Accounts,
		pager:    NewMatchIdPager(deps.API),
		fetcher:  NewMatchFetcher(deps.API, deps.Enricher, deps.Concurrency, log),
		config:   cfg,
		logger:   log,
	}
}

// GetInitialHistory returns the most recent matches of the player.
// The first participant of the first match carries the request context.
func (hs *HistoryService) GetInitialHistory(ctx context.Context, identity riotid.Identity, server string) (*dto.MatchHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, hs.config.Timeout)
	defer cancel()

	account, err := hs.resolveAccount(ctx, identity, server)
	if err != nil {
		return nil, err
	}

	ids, err := hs.listIds(ctx, account.Puuid, server, 0, hs.config.PageSize)
	if err != nil {
		return nil, err
	}

	// Only the first few are fetched, the rest is left for load more.
	selected := ids[:min(hs.config.InitialFetch, len(ids))]

	page, err := hs.collect(ctx, selected, account.Puuid, server)
	if err != nil {
		return nil, err
	}

	if len(page) > 0 && len(page[0]) > 0 {
		primary := page[0][0]
		primary.Server = server
		primary.QueriedName = identity.Name
		primary.QueriedTag = identity.Tag
	}

	return &dto.MatchHistory{
		Matches:    page,
		NextOffset: len(selected),
	}, nil
}

// GetMoreMatches returns the count matches after the offset.
func (hs *HistoryService) GetMoreMatches(ctx context.Context, identity riotid.Identity, server string, offset int, count int) (*dto.MatchHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, hs.config.Timeout)
	defer cancel()

	offset = max(offset, 0)
	count = min(max(count, 1), maxCount)

	account, err := hs.resolveAccount(ctx, identity, server)
	if err != nil {
		return nil, err
	}

	ids, err := hs.listIds(ctx, account.Puuid, server, offset, count)
	if err != nil {
		return nil, err
	}

	page, err := hs.collect(ctx, ids, account.Puuid, server)
	if err != nil {
		return nil, err
	}

	return &dto.MatchHistory{
		Matches:    page,
		NextOffset: offset + len(ids),
	}, nil
}

func (hs *HistoryService) resolveAccount(ctx context.Context, identity riotid.Identity, server string) (*playerfetcher.Account, error) {
	account, err := hs.accounts.ResolveAccount(ctx, identity, server)
	if errors.Is(err, identityservice.ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return account, err
}

// listIds returns ErrNotFound for a empty page.
func (hs *HistoryService) listIds(ctx context.Context, puuid string, server string, offset int, count int) ([]string, error) {
	ids, err := hs.pager.ListMatchIds(ctx, puuid, server, offset, count)
	if errors.Is(err, requests.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no matches from %d", ErrNotFound, offset)
	}
	return ids, nil
}

// collect fetches the matches and drops the failed ones.
func (hs *HistoryService) collect(ctx context.Context, ids []string, puuid string, server string) (dto.MatchHistoryPage, error) {
	results, err := hs.fetcher.FetchAll(ctx, ids, puuid, server)
	if err != nil {
		return nil, err
	}

	page := make(dto.MatchHistoryPage, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			hs.logger.Warnf("Dropping match: %v", result.Err)
			continue
		}

		list := result.Participants
		page = append(page, converters.OrderParticipants(list, list[0].TeamId))
	}

	// Nothing survived because the time ran out.
	if len(page) == 0 && len(ids) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("couldn't fetch the matches in time: %w", err)
		}
	}

	return page, nil
}
