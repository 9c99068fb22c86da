package converters

import (
	"testing"
	"time"

	"clashfinder/api/dto"
	"clashfinder/api/services/testutil"
	matchfetcher "clashfinder/fetcher/data/match"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var matchStart = time.Date(2024, 3, 5, 18, 30, 0, 0, time.UTC)

// Enricher with known names and a fixed clock.
func setupEnricher(now time.Time) (*ParticipantEnricher, *testutil.MockNameLookup) {
	names := new(testutil.MockNameLookup)
	names.On("NameForItem", testutil.ItemId).Return("Sorcerer's Shoes")
	names.On("NameForRuneStyle", testutil.RuneStyleId).Return("Domination")
	names.On("NameForRuneStyle", testutil.SubStyleId).Return("Inspiration")
	names.On("NameForRune", testutil.RuneId).Return("Electrocute")
	names.On("NameForSummonerSpell", testutil.SpellId).Return("Flash")
	names.On("NameForStatShard", testutil.ShardId).Return("Adaptive Force")

	enricher := NewParticipantEnricher(names)
	enricher.now = func() time.Time { return now }
	return enricher, names
}

func TestEnrichPlacesQueriedPlayerFirst(t *testing.T) {
	enricher, _ := setupEnricher(matchStart.Add(90 * time.Minute))

	for position := range 10 {
		match := testutil.NewMatch("EUW1_1", "me", position, matchStart)

		list, err := enricher.Enrich(match, "me")
		require.NoError(t, err)
		require.Len(t, list, 10)

		assert.Equal(t, "me", list[0].Puuid)
		assert.True(t, list[0].IsPrimary())
		for _, p := range list[1:] {
			assert.False(t, p.IsPrimary())
			assert.Nil(t, p.TimeAgo)
			assert.Nil(t, p.KillParticipation)
		}
	}
}

func TestEnrichFields(t *testing.T) {
	enricher, names := setupEnricher(matchStart.Add(90 * time.Minute))
	match := testutil.NewMatch("EUW1_1", "me", 7, matchStart)

	list, err := enricher.Enrich(match, "me")
	require.NoError(t, err)

	primary := list[0]
	assert.Equal(t, "EUW1_1", primary.MatchId)
	assert.Equal(t, "Player me", primary.Name)
	assert.Equal(t, "EUW", primary.Tag)
	assert.Equal(t, "4/2/6", primary.KDA)
	assert.Equal(t, 162, primary.CreepScore)
	assert.Equal(t, 3, primary.ControlWards)
	assert.Equal(t, 200, primary.TeamId)
	assert.Equal(t, "30:25", primary.GameDuration)
	assert.Equal(t, "Ranked Solo/Duo", primary.QueueName)

	// Empty item slots are skipped.
	assert.Equal(t, []dto.NamedRef{
		{Id: testutil.ItemId, Name: "Sorcerer's Shoes"},
		{Id: testutil.ItemId, Name: "Sorcerer's Shoes"},
	}, primary.Items)

	assert.Equal(t, dto.NamedRef{Id: testutil.RuneStyleId, Name: "Domination"}, primary.PrimaryRunes.Style)
	assert.Equal(t, dto.NamedRef{Id: testutil.SubStyleId, Name: "Inspiration"}, primary.SecondaryRunes.Style)
	assert.Equal(t, []dto.NamedRef{{Id: testutil.RuneId, Name: "Electrocute"}}, primary.PrimaryRunes.Selections)
	assert.Len(t, primary.StatShards, 3)
	assert.Equal(t, "Adaptive Force", primary.StatShards[0].Name)
	assert.Equal(t, "Flash", primary.SummonerSpells[1].Name)

	require.NotNil(t, primary.SummonerId)
	assert.Equal(t, "summoner-me", *primary.SummonerId)
	assert.Equal(t, matchStart.UnixMilli(), *primary.StartTimestamp)
	assert.Equal(t, "1 hours ago", *primary.TimeAgo)
	assert.Equal(t, "05/03/2024 18:30", *primary.StartDate)
	assert.False(t, *primary.Win)

	// Team 200 has 20 kills, the player took part in 10.
	assert.Equal(t, "50%", *primary.KillParticipation)

	names.AssertExpectations(t)
}

func TestEnrichUnknownIds(t *testing.T) {
	names := new(testutil.MockNameLookup)
	for _, method := range []string{"NameForItem", "NameForRune", "NameForRuneStyle", "NameForSummonerSpell", "NameForStatShard"} {
		names.On(method, mock.Anything).Return("")
	}
	enricher := NewParticipantEnricher(names)

	list, err := enricher.Enrich(testutil.NewMatch("EUW1_1", "me", 0, matchStart), "me")
	require.NoError(t, err)
	require.Len(t, list, 10)

	for _, p := range list {
		for _, item := range p.Items {
			assert.Empty(t, item.Name)
			assert.NotZero(t, item.Id)
		}
		assert.Empty(t, p.PrimaryRunes.Style.Name)
		assert.Equal(t, testutil.RuneStyleId, p.PrimaryRunes.Style.Id)
		assert.Empty(t, p.SummonerSpells[0].Name)
		assert.Empty(t, p.StatShards[0].Name)

		assert.NotEmpty(t, p.Name)
		assert.Equal(t, "4/2/6", p.KDA)
		assert.Equal(t, 162, p.CreepScore)
	}
	assert.NotNil(t, list[0].KillParticipation)
}

func TestEnrichPlayerNotInMatch(t *testing.T) {
	enricher, _ := setupEnricher(matchStart)

	_, err := enricher.Enrich(testutil.NewMatch("EUW1_1", "me", 3, matchStart), "someone-else")
	assert.ErrorIs(t, err, ErrPlayerNotInMatch)

	_, err = enricher.Enrich(nil, "me")
	assert.ErrorIs(t, err, ErrPlayerNotInMatch)
}

func TestEnrichLegacySummonerName(t *testing.T) {
	enricher, _ := setupEnricher(matchStart)
	match := testutil.NewMatch("EUW1_1", "me", 0, matchStart)
	match.Info.Participants[0].RiotIdGameName = ""
	match.Info.Participants[0].RiotIdTagline = ""
	match.Info.Participants[0].SummonerName = "Old Name#Tag#2"

	list, err := enricher.Enrich(match, "me")
	require.NoError(t, err)
	assert.Equal(t, "Old Name", list[0].Name)
	assert.Equal(t, "Tag#2", list[0].Tag)

	match.Info.Participants[0].SummonerName = "Old Name"
	match.Info.Participants[0].RiotIdTagline = "EUW"

	list, err = enricher.Enrich(match, "me")
	require.NoError(t, err)
	assert.Equal(t, "Old Name", list[0].Name)
	assert.Equal(t, "EUW", list[0].Tag)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name         string
		player       matchfetcher.MatchPlayer
		expectedName string
		expectedTag  string
	}{
		{
			name:         "riotIdFields",
			player:       matchfetcher.MatchPlayer{RiotIdGameName: "Faker", RiotIdTagline: "KR1", SummonerName: "Hide on bush"},
			expectedName: "Faker",
			expectedTag:  "KR1",
		},
		{
			name:         "summonerNameWithTagline",
			player:       matchfetcher.MatchPlayer{SummonerName: "Foo", RiotIdTagline: "EUW"},
			expectedName: "Foo",
			expectedTag:  "EUW",
		},
		{
			name:         "taglineKeepsHashInName",
			player:       matchfetcher.MatchPlayer{SummonerName: "Foo#Bar", RiotIdTagline: "EUW"},
			expectedName: "Foo#Bar",
			expectedTag:  "EUW",
		},
		{
			name:         "combinedSummonerName",
			player:       matchfetcher.MatchPlayer{SummonerName: "Foo#EUW"},
			expectedName: "Foo",
			expectedTag:  "EUW",
		},
		{
			name:         "plainSummonerName",
			player:       matchfetcher.MatchPlayer{SummonerName: "Foo"},
			expectedName: "Foo",
			expectedTag:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, tag := displayName(tt.player)
			assert.Equal(t, tt.expectedName, name)
			assert.Equal(t, tt.expectedTag, tag)
		})
	}
}

func TestEnrichFallsBackToGameCreation(t *testing.T) {
	enricher, _ := setupEnricher(matchStart.Add(3 * 24 * time.Hour))
	match := testutil.NewMatch("EUW1_1", "me", 0, matchStart)
	match.Info.GameStartTimestamp = matchfetcher.RiotTime{}
	match.Info.GameCreation = matchfetcher.RiotTime(matchStart)

	list, err := enricher.Enrich(match, "me")
	require.NoError(t, err)
	assert.Equal(t, matchStart.UnixMilli(), *list[0].StartTimestamp)
	assert.Equal(t, "3 days ago", *list[0].TimeAgo)
}

func TestKillParticipation(t *testing.T) {
	ratio := 0.537

	tests := []struct {
		name      string
		player    func() matchfetcher.MatchPlayer
		teamKills int
		expected  string
	}{
		{
			name:      "fromChallenges",
			player:    func() matchfetcher.MatchPlayer { p := testutil.NewMatchPlayer("me", 100); p.Challenges = &matchfetcher.Challenges{KillParticipation: &ratio}; return p },
			teamKills: 40,
			expected:  "54%",
		},
		{
			name:      "computedFromTeamKills",
			player:    func() matchfetcher.MatchPlayer { return testutil.NewMatchPlayer("me", 100) },
			teamKills: 30,
			expected:  "33%",
		},
		{
			name:      "noTeamKills",
			player:    func() matchfetcher.MatchPlayer { p := testutil.NewMatchPlayer("me", 100); p.Kills, p.Assists = 0, 0; return p },
			teamKills: 0,
			expected:  "0%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KillParticipation(tt.player(), tt.teamKills))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0:00", FormatDuration(0))
	assert.Equal(t, "0:59", FormatDuration(59))
	assert.Equal(t, "1:05", FormatDuration(65))
	assert.Equal(t, "45:00", FormatDuration(2700))
	assert.Equal(t, "0:00", FormatDuration(-3))
}
