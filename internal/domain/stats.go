package domain

import "time"

type DailyDistance struct {
	RunDate  time.Time `json:"runDate"`
	Distance float64   `json:"distance"`
}

type WeeklyDistance struct {
	WeekStart time.Time `json:"weekStart"`
	Distance  float64   `json:"distance"`
}

// UserStats aggregates a user's running history. AverageDistance is
// total distance divided by distinct active days, zero when there are none.
type UserStats struct {
	TotalDistance   float64          `json:"totalDistance"`
	AverageDistance float64          `json:"averageDistance"`
	DaysCount       int              `json:"daysCount"`
	DailyDistance   []DailyDistance  `json:"dailyDistance"`
	WeeklyDistance  []WeeklyDistance `json:"weeklyDistance"`
}
