package converters

import "clashfinder/api/dto"

// OrderParticipants keeps the first entry, then its teammates, then the opponents.
// Source order is kept inside each group.
func OrderParticipants(list dto.MatchParticipantList, mainTeamId int) dto.MatchParticipantList {
	if len(list) == 0 {
		return list
	}

	ordered := make(dto.MatchParticipantList, 0, len(list))
	ordered = append(ordered, list[0])

	opponents := make(dto.MatchParticipantList, 0, len(list)/2)
	for _, p := range list[1:] {
		if p.TeamId == mainTeamId {
			ordered = append(ordered, p)
		} else {
			opponents = append(opponents, p)
		}
	}

	return append(ordered, opponents...)
}
