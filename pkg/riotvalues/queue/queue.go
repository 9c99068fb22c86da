package queuevalues

// Type filter accepted by the match ids endpoint.
const RankedType = "ranked"

var RankedQueueValue = map[int]string{
	420: "RANKED_SOLO_5x5",
	440: "RANKED_FLEX_SR",
}

// QueueName returns a display name for the ranked queues, empty for anything else.
func QueueName(queueId int) string {
	switch queueId {
	case 420:
		return "Ranked Solo/Duo"
	case 440:
		return "Ranked Flex"
	}
	return ""
}
