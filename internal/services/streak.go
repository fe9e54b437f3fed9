package services

import (
	"smokeless/internal/models"
	"time"
)

// DaysSinceLastEvent is the number of whole days between today and the most
// recent day with at least one event. Today counts as 0, yesterday as 1.
// Without any event the streak runs from the oldest tracked day; an empty
// log has no streak. Records with unparseable dates are ignored.
func DaysSinceLastEvent(h models.History, now time.Time) int {
	idx := models.NewDayIndex(h)

	ref, ok := idx.LastEventDay()
	if !ok {
		ref, ok = idx.FirstDay()
		if !ok {
			return 0
		}
	}

	diff := models.DayNumber(now) - ref
	if diff < 0 {
		diff = -diff
	}
	return int(diff)
}
