package identityservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"clashfinder/api/cache"
	leaguefetcher "clashfinder/fetcher/data/league"
	matchfetcher "clashfinder/fetcher/data/match"
	playerfetcher "clashfinder/fetcher/data/player"
	"clashfinder/fetcher/requests"
	"clashfinder/pkg/logger"
	"clashfinder/pkg/regions"
	"clashfinder/pkg/riotvalues/riotid"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrSummonerNotFound = errors.New("summoner not found")
)

// RiotAPI is the part of the region manager used to resolve players.
type RiotAPI interface {
	AccountByRiotId(ctx context.Context, region regions.Regional, gameName string, tagLine string) (*playerfetcher.Account, error)
	SummonerByPuuid(ctx context.Context, region regions.Platform, puuid string) (*playerfetcher.Summoner, error)
	SummonerById(ctx context.Context, region regions.Platform, summonerId string) (*playerfetcher.Summoner, error)
	LeagueEntriesByPuuid(ctx context.Context, region regions.Platform, puuid string) ([]leaguefetcher.LeagueEntry, error)
	MatchIds(ctx context.Context, region regions.Regional, puuid string, start int, count int) ([]string, error)
	Match(ctx context.Context, region regions.Regional, matchId string) (*matchfetcher.MatchData, error)
}

// SummonerProfile is a summoner and the platform that returned it.
type SummonerProfile struct {
	playerfetcher.Summoner
	Platform regions.Platform `json:"platform"`
}

// IdentityService resolves Riot Ids into accounts and summoners.
type IdentityService struct {
	api    RiotAPI
	memo   *cache.Memoizer
	logger *logger.Logger
}

// IdentityServiceDeps is the dependency list for the identity service.
type IdentityServiceDeps struct {
	API    RiotAPI
	Memo   *cache.Memoizer
	Logger *logger.Logger
}

// NewIdentityService creates a identity service.
func NewIdentityService(deps *IdentityServiceDeps) *IdentityService {
	memo := deps.Memo
	if memo == nil {
		memo = cache.NewMemoizer(nil, 0)
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &IdentityService{
		api:    deps.API,
		memo:   memo,
		logger: log,
	}
}

// ResolveAccount gets the account of a Riot Id on the server's regional route.
func (is *IdentityService) ResolveAccount(ctx context.Context, identity riotid.Identity, server string) (*playerfetcher.Account, error) {
	route, err := regions.Resolve(server)
	if err != nil {
		return nil, err
	}

	if identity.Name == "" || identity.Tag == "" {
		return nil, fmt.Errorf("%w: %q", ErrAccountNotFound, identity.String())
	}

	regional := route.AccountRegional()
	key := fmt.Sprintf("account:%s:%s", regional, strings.ToLower(identity.String()))

	return cache.Memoize(ctx, is.memo, key, func(ctx context.Context) (*playerfetcher.Account, error) {
		account, err := is.api.AccountByRiotId(ctx, regional, identity.Name, identity.Tag)
		if err != nil {
			switch requests.StatusCode(err) {
			case http.StatusNotFound, http.StatusBadRequest:
				return nil, fmt.Errorf("%w: %s: %w", ErrAccountNotFound, identity.String(), err)
			}
			return nil, fmt.Errorf("couldn't get the account %s: %w", identity.String(), err)
		}
		return account, nil
	})
}

// ResolveSummoner finds the summoner of a puuid, trying every known way in order.
// A profile without a summoner id is only returned when nothing better was found.
func (is *IdentityService) ResolveSummoner(ctx context.Context, puuid string, server string) (*SummonerProfile, error) {
	route, err := regions.Resolve(server)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("summoner:%s:%s", route.Platform, puuid)
	return cache.Memoize(ctx, is.memo, key, func(ctx context.Context) (*SummonerProfile, error) {
		return is.resolveSummoner(ctx, puuid, route)
	})
}

// resolution tracks the attempts of a summoner lookup.
type resolution struct {
	fallback *SummonerProfile
}

// accept reports if the profile ends the lookup, keeping the first incomplete one.
func (r *resolution) accept(profile *SummonerProfile) bool {
	if profile == nil {
		return false
	}
	if profile.Id != "" {
		return true
	}
	if r.fallback == nil {
		r.fallback = profile
	}
	return false
}

func (is *IdentityService) resolveSummoner(ctx context.Context, puuid string, route regions.Route) (*SummonerProfile, error) {
	res := &resolution{}

	platforms := []regions.Platform{route.Platform}
	if neighbor, ok := regions.Neighbor(route.Platform); ok {
		platforms = append(platforms, neighbor)
	}

	for _, platform := range platforms {
		if profile := is.byPuuid(ctx, platform, puuid); res.accept(profile) {
			return profile, nil
		}
		if profile := is.byLeagueEntries(ctx, platform, puuid); res.accept(profile) {
			return profile, nil
		}
	}

	if profile := is.byRecentMatch(ctx, route.Regional, puuid, res); profile != nil {
		return profile, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if res.fallback != nil {
		return res.fallback, nil
	}
	return nil, fmt.Errorf("%w: %s on %s", ErrSummonerNotFound, puuid, route.Platform)
}

func (is *IdentityService) byPuuid(ctx context.Context, platform regions.Platform, puuid string) *SummonerProfile {
	summoner, err := is.api.SummonerByPuuid(ctx, platform, puuid)
	if err != nil || summoner == nil {
		is.logger.Debugf("Summoner by puuid failed on %s: %v", platform, err)
		return nil
	}
	return &SummonerProfile{Summoner: *summoner, Platform: platform}
}

func (is *IdentityService) byId(ctx context.Context, platform regions.Platform, summonerId string) *SummonerProfile {
	summoner, err := is.api.SummonerById(ctx, platform, summonerId)
	if err != nil || summoner == nil {
		is.logger.Debugf("Summoner by id failed on %s: %v", platform, err)
		return nil
	}
	return &SummonerProfile{Summoner: *summoner, Platform: platform}
}

// byLeagueEntries gets the summoner id from the ranked entries.
func (is *IdentityService) byLeagueEntries(ctx context.Context, platform regions.Platform, puuid string) *SummonerProfile {
	entries, err := is.api.LeagueEntriesByPuuid(ctx, platform, puuid)
	if err != nil {
		is.logger.Debugf("League entries failed on %s: %v", platform, err)
		return nil
	}

	if len(entries) == 0 || entries[0].SummonerId == "" {
		return nil
	}
	return is.byId(ctx, platform, entries[0].SummonerId)
}

// byRecentMatch infers the platform from the last match of the player.
func (is *IdentityService) byRecentMatch(ctx context.Context, regional regions.Regional, puuid string, res *resolution) *SummonerProfile {
	ids, err := is.api.MatchIds(ctx, regional, puuid, 0, 1)
	if err != nil || len(ids) == 0 {
		is.logger.Debugf("No recent match to infer the platform of %s: %v", puuid, err)
		return nil
	}

	platform, err := regions.PlatformFromMatchId(ids[0])
	if err != nil {
		is.logger.Debugf("Couldn't infer the platform of %s: %v", ids[0], err)
		return nil
	}

	if profile := is.byPuuid(ctx, platform, puuid); res.accept(profile) {
		return profile
	}

	match, err := is.api.Match(ctx, regional, ids[0])
	if err != nil || match == nil {
		is.logger.Debugf("Couldn't get the match %s: %v", ids[0], err)
		return nil
	}

	for _, participant := range match.Info.Participants {
		if participant.Puuid != puuid || participant.SummonerId == "" {
			continue
		}
		if profile := is.byId(ctx, platform, participant.SummonerId); res.accept(profile) {
			return profile
		}
	}
	return nil
}
