package converters

import (
	"errors"
	"fmt"
	"math"
	"time"

	"clashfinder/api/dto"
	matchfetcher "clashfinder/fetcher/data/match"
	queuevalues "clashfinder/pkg/riotvalues/queue"
	"clashfinder/pkg/riotvalues/riotid"
)

const (
	StartDateLayout = "02/01/2006 15:04"
	primaryStyle    = "primaryStyle"
	subStyle        = "subStyle"
)

var ErrPlayerNotInMatch = errors.New("player is not a participant of the match")

// NameLookup resolves the DDragon names, unknown ids return a empty string.
type NameLookup interface {
	NameForItem(id int) string
	NameForRune(id int) string
	NameForRuneStyle(id int) string
	NameForSummonerSpell(id int) string
	NameForStatShard(id int) string
}

// ParticipantEnricher converts a raw match into the participant summaries.
type ParticipantEnricher struct {
	names NameLookup
	now   func() time.Time
}

// NewParticipantEnricher creates a enricher with the given name lookup.
func NewParticipantEnricher(names NameLookup) *ParticipantEnricher {
	return &ParticipantEnricher{
		names: names,
		now:   time.Now,
	}
}

// Enrich returns every participant of the match, the queried player at index 0.
func (pe *ParticipantEnricher) Enrich(match *matchfetcher.MatchData, puuid string) (dto.MatchParticipantList, error) {
	if match == nil {
		return nil, fmt.Errorf("%w: empty match", ErrPlayerNotInMatch)
	}

	info := match.Info

	teamKills := make(map[int]int)
	for _, p := range info.Participants {
		teamKills[p.TeamId] += p.Kills
	}

	var primary *dto.ParticipantSummary
	others := make(dto.MatchParticipantList, 0, len(info.Participants))

	for _, p := range info.Participants {
		summary := pe.summarize(match.Metadata.MatchId, info, p)

		if primary == nil && p.Puuid == puuid {
			pe.attachPrimary(summary, info, p, teamKills[p.TeamId])
			primary = summary
			continue
		}
		others = append(others, summary)
	}

	if primary == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotInMatch, match.Metadata.MatchId)
	}

	return append(dto.MatchParticipantList{primary}, others...), nil
}

// summarize builds the fields every participant has.
func (pe *ParticipantEnricher) summarize(matchId string, info matchfetcher.MatchInfo, p matchfetcher.MatchPlayer) *dto.ParticipantSummary {
	name, tag := displayName(p)

	return &dto.ParticipantSummary{
		MatchId:        matchId,
		Puuid:          p.Puuid,
		Name:           name,
		Tag:            tag,
		ChampionId:     p.ChampionId,
		ChampionName:   p.ChampionName,
		Kills:          p.Kills,
		Deaths:         p.Deaths,
		Assists:        p.Assists,
		KDA:            fmt.Sprintf("%d/%d/%d", p.Kills, p.Deaths, p.Assists),
		Items:          pe.items(p),
		PrimaryRunes:   pe.runePath(findStyle(p.Perks.Styles, primaryStyle, 0)),
		SecondaryRunes: pe.runePath(findStyle(p.Perks.Styles, subStyle, 1)),
		StatShards:     pe.statShards(p.Perks.StatPerks),
		SummonerSpells: []dto.NamedRef{
			{Id: p.Summoner1Id, Name: pe.names.NameForSummonerSpell(p.Summoner1Id)},
			{Id: p.Summoner2Id, Name: pe.names.NameForSummonerSpell(p.Summoner2Id)},
		},
		CreepScore:   p.TotalMinionsKilled + p.NeutralMinionsKilled,
		TeamId:       p.TeamId,
		ControlWards: p.VisionWardsBoughtInGame,
		GameDuration: FormatDuration(info.GameDuration),
	}
}

// attachPrimary adds the fields only the queried player has.
func (pe *ParticipantEnricher) attachPrimary(summary *dto.ParticipantSummary, info matchfetcher.MatchInfo, p matchfetcher.MatchPlayer, teamKills int) {
	start := info.StartTime().Time()
	timestamp := start.UnixMilli()
	summonerId := p.SummonerId
	timeAgo := TimeAgo(start, pe.now())
	startDate := start.UTC().Format(StartDateLayout)
	win := p.Win
	killParticipation := KillParticipation(p, teamKills)

	summary.SummonerId = &summonerId
	summary.StartTimestamp = &timestamp
	summary.TimeAgo = &timeAgo
	summary.StartDate = &startDate
	summary.Win = &win
	summary.KillParticipation = &killParticipation
	summary.QueueName = queuevalues.QueueName(info.QueueId)
}

func (pe *ParticipantEnricher) items(p matchfetcher.MatchPlayer) []dto.NamedRef {
	items := make([]dto.NamedRef, 0, 7)
	for _, id := range p.Items() {
		if id == 0 {
			continue
		}
		items = append(items, dto.NamedRef{Id: id, Name: pe.names.NameForItem(id)})
	}
	return items
}

func (pe *ParticipantEnricher) runePath(style *matchfetcher.PerkStyle) dto.RunePath {
	if style == nil {
		return dto.RunePath{Selections: []dto.NamedRef{}}
	}

	path := dto.RunePath{
		Style:      dto.NamedRef{Id: style.Style, Name: pe.names.NameForRuneStyle(style.Style)},
		Selections: make([]dto.NamedRef, 0, len(style.Selections)),
	}
	for _, selection := range style.Selections {
		path.Selections = append(path.Selections, dto.NamedRef{
			Id:   selection.Perk,
			Name: pe.names.NameForRune(selection.Perk),
		})
	}
	return path
}

func (pe *ParticipantEnricher) statShards(shards matchfetcher.StatPerks) []dto.NamedRef {
	refs := make([]dto.NamedRef, 0, 3)
	for _, id := range shards.Ids() {
		refs = append(refs, dto.NamedRef{Id: id, Name: pe.names.NameForStatShard(id)})
	}
	return refs
}

// findStyle picks a rune tree by its description, falling back to the position.
func findStyle(styles []matchfetcher.PerkStyle, description string, index int) *matchfetcher.PerkStyle {
	for i := range styles {
		if styles[i].Description == description {
			return &styles[i]
		}
	}
	if index < len(styles) {
		return &styles[index]
	}
	return nil
}

// displayName prefers the Riot Id fields, old matches only have the combined name.
func displayName(p matchfetcher.MatchPlayer) (string, string) {
	if p.RiotIdGameName != "" {
		return p.RiotIdGameName, p.RiotIdTagline
	}
	if p.RiotIdTagline != "" {
		return p.SummonerName, p.RiotIdTagline
	}
	identity := riotid.Split(p.SummonerName)
	return identity.Name, identity.Tag
}

// KillParticipation returns the rounded percentage, like "54%".
func KillParticipation(p matchfetcher.MatchPlayer, teamKills int) string {
	var ratio float64
	switch {
	case p.Challenges != nil && p.Challenges.KillParticipation != nil:
		ratio = *p.Challenges.KillParticipation
	case teamKills > 0:
		ratio = float64(p.Kills+p.Assists) / float64(teamKills)
	}
	return fmt.Sprintf("%d%%", int(math.Round(ratio*100)))
}

// FormatDuration formats seconds as M:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
