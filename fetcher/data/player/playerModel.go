package playerfetcher

// Summoner is the return of the platform summoner endpoints.
// Newer responses may omit the id.
type Summoner struct {
	Id            string `json:"id"`
	Puuid         string `json:"puuid"`
	ProfileIconId int    `json:"profileIconId"`
	SummonerLevel int    `json:"summonerLevel"`
	RevisionDate  int64  `json:"revisionDate"`
}

// Account is the return of a account search.
type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}
