package testutil

import (
	"fmt"
	"time"

	matchfetcher "clashfinder/fetcher/data/match"
)

// Names every fixture participant has.
const (
	ItemId      = 3020
	RuneStyleId = 8100
	SubStyleId  = 8300
	RuneId      = 8112
	SpellId     = 4
	ShardId     = 5008
)

// NewMatchPlayer returns a participant with every reference set.
func NewMatchPlayer(puuid string, teamId int) matchfetcher.MatchPlayer {
	return matchfetcher.MatchPlayer{
		Puuid:                   puuid,
		RiotIdGameName:          "Player " + puuid,
		RiotIdTagline:           "EUW",
		SummonerId:              "summoner-" + puuid,
		ChampionId:              103,
		ChampionName:            "Ahri",
		Kills:                   4,
		Deaths:                  2,
		Assists:                 6,
		Item0:                   ItemId,
		Item3:                   ItemId,
		Summoner1Id:             SpellId,
		Summoner2Id:             SpellId,
		TeamId:                  teamId,
		TotalMinionsKilled:      150,
		NeutralMinionsKilled:    12,
		VisionWardsBoughtInGame: 3,
		Win:                     teamId == 100,
		Perks: matchfetcher.Perks{
			StatPerks: matchfetcher.StatPerks{Offense: ShardId, Flex: ShardId, Defense: ShardId},
			Styles: []matchfetcher.PerkStyle{
				{Description: "primaryStyle", Style: RuneStyleId, Selections: []matchfetcher.PerkSelection{{Perk: RuneId}}},
				{Description: "subStyle", Style: SubStyleId, Selections: []matchfetcher.PerkSelection{{Perk: RuneId}}},
			},
		},
	}
}

// NewMatch returns a ten player match, p0..p4 on team 100 and p5..p9 on team 200.
// The queried puuid replaces the player at the given position.
func NewMatch(matchId string, puuid string, position int, start time.Time) *matchfetcher.MatchData {
	players := make([]matchfetcher.MatchPlayer, 0, 10)
	for i := range 10 {
		teamId := 100
		if i >= 5 {
			teamId = 200
		}

		playerPuuid := fmt.Sprintf("p%d", i)
		if i == position {
			playerPuuid = puuid
		}
		players = append(players, NewMatchPlayer(playerPuuid, teamId))
	}

	return &matchfetcher.MatchData{
		Metadata: matchfetcher.MatchMetadata{MatchId: matchId},
		Info: matchfetcher.MatchInfo{
			GameStartTimestamp: matchfetcher.RiotTime(start),
			GameDuration:       1825,
			PlatformId:         "EUW1",
			QueueId:            420,
			Participants:       players,
		},
	}
}
