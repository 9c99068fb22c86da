package matchfetcher

// Return type from the match_v5 endpoint.
type MatchData struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

// Match metadata.
type MatchMetadata struct {
	MatchId      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

// Match information.
type MatchInfo struct {
	EndOfGameResult    string        `json:"endOfGameResult"`
	GameCreation       RiotTime      `json:"gameCreation"`
	GameStartTimestamp RiotTime      `json:"gameStartTimestamp"`
	GameDuration       int           `json:"gameDuration"`
	GameVersion        string        `json:"gameVersion"`
	PlatformId         string        `json:"platformId"`
	Participants       []MatchPlayer `json:"participants"`
	QueueId            int           `json:"queueId"`
	Teams              []TeamInfo    `json:"teams"`
}

// StartTime returns the game start, falling back to the creation time.
func (mi MatchInfo) StartTime() RiotTime {
	if !mi.GameStartTimestamp.Time().IsZero() {
		return mi.GameStartTimestamp
	}
	return mi.GameCreation
}

// Player results.
type MatchPlayer struct {
	Assists                 int         `json:"assists"`
	ChampionId              int         `json:"championId"`
	ChampionName            string      `json:"championName"`
	ChampionLevel           int         `json:"champLevel"`
	Challenges              *Challenges `json:"challenges,omitempty"`
	Deaths                  int         `json:"deaths"`
	Item0                   int         `json:"item0"`
	Item1                   int         `json:"item1"`
	Item2                   int         `json:"item2"`
	Item3                   int         `json:"item3"`
	Item4                   int         `json:"item4"`
	Item5                   int         `json:"item5"`
	Item6                   int         `json:"item6"`
	Kills                   int         `json:"kills"`
	NeutralMinionsKilled    int         `json:"neutralMinionsKilled"`
	Perks                   Perks       `json:"perks"`
	Puuid                   string      `json:"puuid"`
	RiotIdGameName          string      `json:"riotIdGameName"`
	RiotIdTagline           string      `json:"riotIdTagline"`
	Summoner1Id             int         `json:"summoner1Id"`
	Summoner2Id             int         `json:"summoner2Id"`
	SummonerId              string      `json:"summonerId"`
	SummonerName            string      `json:"summonerName"`
	TeamId                  int         `json:"teamId"`
	TotalMinionsKilled      int         `json:"totalMinionsKilled"`
	VisionWardsBoughtInGame int         `json:"visionWardsBoughtInGame"`
	Win                     bool        `json:"win"`
}

// Items returns the seven item slots in order.
func (mp MatchPlayer) Items() [7]int {
	return [7]int{mp.Item0, mp.Item1, mp.Item2, mp.Item3, mp.Item4, mp.Item5, mp.Item6}
}

// Challenges of the player for this match.
// KillParticipation is a pointer since old matches don't have it.
type Challenges struct {
	ControlWardsPlaced int      `json:"controlWardsPlaced"`
	KillParticipation  *float64 `json:"killParticipation,omitempty"`
}

// Rune pages.
type Perks struct {
	StatPerks StatPerks   `json:"statPerks"`
	Styles    []PerkStyle `json:"styles"`
}

// Stat shards picked on the rune page.
type StatPerks struct {
	Offense int `json:"offense"`
	Flex    int `json:"flex"`
	Defense int `json:"defense"`
}

// Ids returns the shards in the order they are shown.
func (sp StatPerks) Ids() []int {
	return []int{sp.Offense, sp.Flex, sp.Defense}
}

// A single rune tree.
type PerkStyle struct {
	Description string          `json:"description"`
	Style       int             `json:"style"`
	Selections  []PerkSelection `json:"selections"`
}

// A rune picked on a tree.
type PerkSelection struct {
	Perk int `json:"perk"`
}

// Team information.
type TeamInfo struct {
	TeamId int  `json:"teamId"`
	Win    bool `json:"win"`
}
