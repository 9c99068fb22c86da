package converters

import (
	"fmt"
	"time"
)

// TimeAgo formats how long ago start was.
// Timestamps in the future are "Just now".
func TimeAgo(start time.Time, now time.Time) string {
	elapsed := now.Sub(start)
	if elapsed < 0 {
		return "Just now"
	}

	days := int(elapsed / (24 * time.Hour))
	hours := int(elapsed / time.Hour)
	minutes := int(elapsed / time.Minute)

	switch {
	case days >= 7:
		return fmt.Sprintf("%d weeks ago", days/7)
	case days >= 1:
		return fmt.Sprintf("%d days ago", days)
	case hours >= 1:
		return fmt.Sprintf("%d hours ago", hours)
	case minutes >= 1:
		return fmt.Sprintf("%d minutes ago", minutes)
	default:
		return "Just now"
	}
}
