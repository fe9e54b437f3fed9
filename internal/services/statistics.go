package services

import (
	"github.com/shopspring/decimal"
	"smokeless/internal/models"
	"time"
)

const (
	// LifeMinutesPerEvent is the life expectancy cost of one cigarette.
	LifeMinutesPerEvent = 11

	weeklyWindow = 7
)

// CalculateStats derives the statistics screen from a snapshot.
func CalculateStats(snap models.Snapshot, now time.Time) models.Stats {
	h := snap.History
	pricePerEvent := snap.Settings.PricePerEvent()

	stats := models.Stats{
		TotalEvents:   h.TotalCount(),
		TotalCost:     h.TotalCost(),
		DaysTracked:   len(h),
		WeeklyAverage: WeeklyAverage(h),
	}
	stats.LifeLostMinutes = stats.TotalEvents * LifeMinutesPerEvent

	potential := float64(stats.DaysTracked) * pricePerEvent * float64(snap.Settings.BaselineCigs)
	stats.ProjectedSavings = max(0, potential-stats.TotalCost)
	stats.ProjectedYearlyCost = stats.WeeklyAverage * 365 * pricePerEvent
	stats.Last7Days = Last7Days(h, now)

	return stats
}

// WeeklyAverage is the mean count of the seven most recent records, or of all
// records when fewer exist, rounded to one decimal.
func WeeklyAverage(h models.History) float64 {
	recent := h.SortedDesc()
	if len(recent) > weeklyWindow {
		recent = recent[:weeklyWindow]
	}
	if len(recent) == 0 {
		return 0
	}
	avg := float64(recent.TotalCount()) / float64(len(recent))
	return decimal.NewFromFloat(avg).Round(1).InexactFloat64()
}

// Last7Days is the chart series from six days ago up to today. Days without
// a record have value 0.
func Last7Days(h models.History, now time.Time) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, weeklyWindow)
	for i := weeklyWindow - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := models.DateKey(day)
		value := 0
		if idx := h.Find(key); idx >= 0 {
			value = h[idx].Count
		}
		points = append(points, models.ChartPoint{
			Label:   day.Weekday().String()[:1],
			Date:    key,
			Value:   value,
			IsToday: i == 0,
		})
	}
	return points
}
