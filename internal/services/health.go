package services

import "smokeless/internal/models"

const (
	affordanceBase   = 220
	affordanceMin    = 100
	affordanceShrink = 15

	minutesPerDay = 24 * 60
)

var healthMilestones = []models.Milestone{
	{Minutes: 20, Title: "Blood Pressure", Description: "Pulse and BP return to normal."},
	{Minutes: 480, Title: "Oxygen Levels", Description: "Oxygen levels return to normal."},
	{Minutes: 1440, Title: "Carbon Monoxide", Description: "CO removed from body."},
	{Minutes: 2880, Title: "Taste & Smell", Description: "Senses begin to improve."},
	{Minutes: 4320, Title: "Nicotine Free", Description: "Most nicotine is out of the body."},
	{Minutes: 10080, Title: "Energy Boost", Description: "Bronchial tubes relax."},
	{Minutes: 20160, Title: "Circulation", Description: "Circulation improves."},
	{Minutes: 43200, Title: "Lung Function", Description: "Lung function increases up to 30%."},
}

// HealthTimeline returns the recovery milestones for a streak of whole days.
// The log only has day precision, so a streak of n days counts as n*1440
// minutes.
func HealthTimeline(streak int) []models.Milestone {
	elapsed := streak * minutesPerDay
	out := make([]models.Milestone, len(healthMilestones))
	for i, m := range healthMilestones {
		m.Unlocked = elapsed >= m.Minutes
		out[i] = m
	}
	return out
}

// AffordanceSize is the size of the record button: it shrinks by 15 units
// per streak day from 220 down to 100.
func AffordanceSize(streak int) int {
	return max(affordanceMin, affordanceBase-streak*affordanceShrink)
}
