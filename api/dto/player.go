package dto

// ClashMember is a single player of a clash team.
type ClashMember struct {
	Name     string `json:"name"`
	Tag      string `json:"tag"`
	Position string `json:"position"`
	Role     string `json:"role"`
	UggURL   string `json:"uggUrl"`
	OpggURL  string `json:"opggUrl"`
}

// RiotId returns the Name#Tag of the member.
func (cm ClashMember) RiotId() string {
	if cm.Tag == "" {
		return cm.Name
	}
	return cm.Name + "#" + cm.Tag
}

// ClashTeam is the roster of the team the queried player is registered on.
type ClashTeam struct {
	Id           string        `json:"id"`
	Name         string        `json:"name"`
	Abbreviation string        `json:"abbreviation"`
	Tier         int           `json:"tier"`
	Server       string        `json:"server"`
	Members      []ClashMember `json:"members"`
}
