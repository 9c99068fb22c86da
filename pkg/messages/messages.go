package messages

const (
	BadStatusCodeMsg      = "API returned status code %d on URL %s"
	CouldNotFindId        = "couldn't find the %s Id"
	FailedToParseMsg      = "failed to parse API response"
	RequestFailedMsg      = "API request failed on URL %s"
	RegionNotFound        = "the region %s doesn't exist"
	AccountNotFoundMsg    = "Account not found."
	SummonerNotFoundMsg   = "Summoner not found."
	PlayerNotFoundMsg     = "Player not found."
	NoMatchesMsg          = "No matches found"
	NoClashTeamMsg        = "This summoner is not registered on a clash team."
	UnknownServerMsg      = "Unknown server."
	UpstreamUnavailable   = "The Riot API is not available right now, try again later."
	InvalidRequestBodyMsg = "invalid request body"
)
