package dto

// NamedRef is a numeric game reference with its resolved name.
// Unknown ids keep an empty name.
type NamedRef struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

// RunePath is a rune tree and the runes picked on it.
type RunePath struct {
	Style      NamedRef   `json:"style"`
	Selections []NamedRef `json:"selections"`
}

// ParticipantSummary is a single player entry of a match.
type ParticipantSummary struct {
	MatchId        string     `json:"matchId"`
	Puuid          string     `json:"puuid"`
	Name           string     `json:"name"`
	Tag            string     `json:"tag"`
	ChampionId     int        `json:"championId"`
	ChampionName   string     `json:"championName"`
	Kills          int        `json:"kills"`
	Deaths         int        `json:"deaths"`
	Assists        int        `json:"assists"`
	KDA            string     `json:"kda"`
	Items          []NamedRef `json:"items"`
	PrimaryRunes   RunePath   `json:"primaryRunes"`
	SecondaryRunes RunePath   `json:"secondaryRunes"`
	StatShards     []NamedRef `json:"statShards"`
	SummonerSpells []NamedRef `json:"summonerSpells"`
	CreepScore     int        `json:"creepScore"`
	TeamId         int        `json:"teamId"`
	ControlWards   int        `json:"controlWards"`
	GameDuration   string     `json:"gameDuration"`

	// Only set for the queried player.
	SummonerId        *string `json:"summonerId,omitempty"`
	StartTimestamp    *int64  `json:"startTimestamp,omitempty"`
	TimeAgo           *string `json:"timeAgo,omitempty"`
	StartDate         *string `json:"startDate,omitempty"`
	Win               *bool   `json:"win,omitempty"`
	KillParticipation *string `json:"killParticipation,omitempty"`
	QueueName         string  `json:"queueName,omitempty"`

	// Request context, only on the first entry of a initial history.
	Server      string `json:"server,omitempty"`
	QueriedName string `json:"queriedName,omitempty"`
	QueriedTag  string `json:"queriedTag,omitempty"`
}

// IsPrimary reports if the entry is the queried player.
func (ps *ParticipantSummary) IsPrimary() bool {
	return ps.StartTimestamp != nil
}

// MatchParticipantList is the players of a match, the queried player always first.
type MatchParticipantList []*ParticipantSummary

// Primary returns the queried player entry.
func (l MatchParticipantList) Primary() *ParticipantSummary {
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

// MatchHistoryPage is a list of matches, most recent first.
type MatchHistoryPage []MatchParticipantList

// MatchHistory is what the history endpoints return.
// NextOffset is where the following load more call must start.
type MatchHistory struct {
	Matches    MatchHistoryPage `json:"matches"`
	NextOffset int              `json:"nextOffset"`
}

// Won reports the result of the queried player, false for the other entries.
func (ps *ParticipantSummary) Won() bool {
	return ps.Win != nil && *ps.Win
}
