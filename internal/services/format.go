package services

import (
	"fmt"
	"github.com/shopspring/decimal"
	"time"
)

// FormatDuration renders minutes as "45m", "3h 20m" or "2d 5h".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dd %dh", hours/24, hours%24)
}

// SinceLastEvent renders the time since the last recorded event. Data from
// before event timestamps were kept only has the day streak to go by.
func SinceLastEvent(lastEventAt *int64, now time.Time, streak int) string {
	if lastEventAt == nil {
		if streak > 0 {
			return fmt.Sprintf("> %dd", streak)
		}
		return "--"
	}

	diff := now.UnixMilli() - *lastEventAt
	if diff < 0 {
		return "0m"
	}
	minutes := int(diff / time.Minute.Milliseconds())
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dd %dh", hours/24, hours%24)
}

// MilestoneTime labels a milestone offset as "20m", "8h" or "7d".
func MilestoneTime(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes < minutesPerDay:
		return fmt.Sprintf("%dh", minutes/60)
	default:
		return fmt.Sprintf("%dd", minutes/minutesPerDay)
	}
}

func FormatCurrency(currency string, amount float64) string {
	return currency + decimal.NewFromFloat(amount).StringFixed(2)
}
