package models

// Stats is the aggregate view rendered by the statistics screen.
type Stats struct {
	TotalEvents         int          `json:"totalEvents"`
	TotalCost           float64      `json:"totalCost"`
	DaysTracked         int          `json:"daysTracked"`
	WeeklyAverage       float64      `json:"weeklyAverage"`
	LifeLostMinutes     int          `json:"lifeLostMinutes"`
	ProjectedSavings    float64      `json:"projectedSavings"`
	ProjectedYearlyCost float64      `json:"projectedYearlyCost"`
	Last7Days           []ChartPoint `json:"last7Days"`
}

type ChartPoint struct {
	Label   string `json:"label"`
	Date    string `json:"date"`
	Value   int    `json:"value"`
	IsToday bool   `json:"isToday"`
}

// Milestone is one step of the health recovery timeline.
type Milestone struct {
	Minutes     int    `json:"minutes"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}
