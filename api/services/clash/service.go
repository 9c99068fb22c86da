package clashservice

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"clashfinder/api/dto"
	identityservice "clashfinder/api/services/identity"
	clashfetcher "clashfinder/fetcher/data/clash"
	playerfetcher "clashfinder/fetcher/data/player"
	"clashfinder/fetcher/requests"
	"clashfinder/pkg/logger"
	"clashfinder/pkg/regions"
	"clashfinder/pkg/riotvalues/riotid"

	"golang.org/x/sync/errgroup"
)

const memberConcurrency = 5

var ErrNoClashTeam = errors.New("player is not in a clash team")

// ClashAPI is the part of the region manager used for the clash rosters.
type ClashAPI interface {
	ClashPlayersBySummonerId(ctx context.Context, region regions.Platform, summonerId string) ([]clashfetcher.Player, error)
	ClashPlayersByPuuid(ctx context.Context, region regions.Platform, puuid string) ([]clashfetcher.Player, error)
	ClashTeam(ctx context.Context, region regions.Platform, teamId string) (*clashfetcher.Team, error)
	AccountByPuuid(ctx context.Context, region regions.Regional, puuid string) (*playerfetcher.Account, error)
	SummonerById(ctx context.Context, region regions.Platform, summonerId string) (*playerfetcher.Summoner, error)
}

// IdentityResolver finds the account and summoner of the searched player.
type IdentityResolver interface {
	ResolveAccount(ctx context.Context, identity riotid.Identity, server string) (*playerfetcher.Account, error)
	ResolveSummoner(ctx context.Context, puuid string, server string) (*identityservice.SummonerProfile, error)
}

// ClashService builds the roster of the clash team of a player.
type ClashService struct {
	api        ClashAPI
	identities IdentityResolver
	logger     *logger.Logger
}

// ClashServiceDeps is the dependency list for the clash service.
type ClashServiceDeps struct {
	API        ClashAPI
	Identities IdentityResolver
	Logger     *logger.Logger
}

// NewClashService creates a clash service.
func NewClashService(deps *ClashServiceDeps) *ClashService {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &ClashService{
		api:        deps.API,
		identities: deps.Identities,
		logger:     log,
	}
}

// GetTeam returns the clash team the player is registered in.
// Members that couldn't be resolved are left out of the roster.
func (cs *ClashService) GetTeam(ctx context.Context, identity riotid.Identity, server string) (*dto.ClashTeam, error) {
	account, err := cs.identities.ResolveAccount(ctx, identity, server)
	if err != nil {
		return nil, err
	}

	profile, err := cs.identities.ResolveSummoner(ctx, account.Puuid, server)
	if err != nil {
		return nil, err
	}
	if profile.Id == "" {
		return nil, fmt.Errorf("%w: no summoner id for %s", ErrNoClashTeam, identity.String())
	}

	teamId, err := cs.findTeamId(ctx, profile)
	if err != nil {
		return nil, err
	}
	if teamId == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoClashTeam, identity.String())
	}

	team, err := cs.api.ClashTeam(ctx, profile.Platform, teamId)
	if errors.Is(err, requests.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrNoClashTeam, err)
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't get the clash team %s: %w", teamId, err)
	}

	route, err := regions.RouteForPlatform(profile.Platform)
	if err != nil {
		return nil, err
	}

	return &dto.ClashTeam{
		Id:           team.Id,
		Name:         team.Name,
		Abbreviation: team.Abbreviation,
		Tier:         team.Tier,
		Server:       route.Server,
		Members:      cs.members(ctx, route, team.Players),
	}, nil
}

// findTeamId looks up the registrations by summoner id, then on the puuid index.
// A empty id means the player is not registered.
func (cs *ClashService) findTeamId(ctx context.Context, profile *identityservice.SummonerProfile) (string, error) {
	registrations, err := cs.api.ClashPlayersBySummonerId(ctx, profile.Platform, profile.Id)
	if err != nil && !errors.Is(err, requests.ErrNotFound) {
		return "", fmt.Errorf("couldn't get the clash registrations: %w", err)
	}
	if teamId := firstTeamId(registrations); teamId != "" {
		return teamId, nil
	}

	registrations, err = cs.api.ClashPlayersByPuuid(ctx, profile.Platform, profile.Puuid)
	if err != nil && !errors.Is(err, requests.ErrNotFound) {
		return "", fmt.Errorf("couldn't get the clash registrations: %w", err)
	}
	return firstTeamId(registrations), nil
}

func firstTeamId(registrations []clashfetcher.Player) string {
	for _, registration := range registrations {
		if registration.TeamId != "" {
			return registration.TeamId
		}
	}
	return ""
}

// members resolves the players concurrently, keeping the roster order.
func (cs *ClashService) members(ctx context.Context, route regions.Route, players []clashfetcher.Player) []dto.ClashMember {
	resolved := make([]*dto.ClashMember, len(players))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(memberConcurrency)
	for i, player := range players {
		g.Go(func() error {
			member, err := cs.member(gctx, route, player)
			if err != nil {
				cs.logger.Warnf("Skipping clash member %s: %v", player.SummonerId, err)
				return nil
			}
			resolved[i] = member
			return nil
		})
	}
	_ = g.Wait()

	members := make([]dto.ClashMember, 0, len(players))
	for _, member := range resolved {
		if member != nil {
			members = append(members, *member)
		}
	}
	return members
}

func (cs *ClashService) member(ctx context.Context, route regions.Route, player clashfetcher.Player) (*dto.ClashMember, error) {
	puuid := player.Puuid
	if puuid == "" {
		summoner, err := cs.api.SummonerById(ctx, route.Platform, player.SummonerId)
		if err != nil {
			return nil, err
		}
		puuid = summoner.Puuid
	}

	account, err := cs.api.AccountByPuuid(ctx, route.AccountRegional(), puuid)
	if err != nil {
		return nil, err
	}

	return &dto.ClashMember{
		Name:     account.GameName,
		Tag:      account.TagLine,
		Position: player.Position,
		Role:     player.Role,
		UggURL:   UggURL(route, account.GameName, account.TagLine),
		OpggURL:  OpggURL(route, account.GameName, account.TagLine),
	}, nil
}

// UggURL links to the u.gg profile of the player.
func UggURL(route regions.Route, name string, tag string) string {
	return fmt.Sprintf("https://u.gg/lol/profile/%s/%s/overview", route.Platform, profileSegment(name, tag))
}

// OpggURL links to the op.gg profile of the player.
func OpggURL(route regions.Route, name string, tag string) string {
	return fmt.Sprintf("https://www.op.gg/summoners/%s/%s", route.Slug, profileSegment(name, tag))
}

func profileSegment(name string, tag string) string {
	return url.PathEscape(strings.TrimSpace(name) + "-" + strings.TrimSpace(tag))
}
