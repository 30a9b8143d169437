package leaderboard

import (
	"math"
	"time"
)

// SeasonLength is how long a board runs before it resets.
const SeasonLength = 7 * 24 * time.Hour

// SeasonStart returns the Monday 00:00 UTC that opened the season containing t.
func SeasonStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}

// DaysUntilReset returns the whole days left in the season, rounded up.
// It is never less than one.
func DaysUntilReset(t time.Time) int {
	end := SeasonStart(t).Add(SeasonLength)
	days := int(math.Ceil(end.Sub(t.UTC()).Hours() / 24))
	return max(days, 1)
}
