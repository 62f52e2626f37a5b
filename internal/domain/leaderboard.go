package domain

import "github.com/google/uuid"

type LeaderboardPeriod string

const (
	PeriodDaily   LeaderboardPeriod = "daily"
	PeriodWeekly  LeaderboardPeriod = "weekly"
	PeriodMonthly LeaderboardPeriod = "monthly"
)

// ParsePeriod maps a path segment to a leaderboard period. Unknown values
// fall back to monthly, matching the behaviour the client relies on.
func ParsePeriod(s string) LeaderboardPeriod {
	switch s {
	case "daily":
		return PeriodDaily
	case "weekly":
		return PeriodWeekly
	case "monthly":
		return PeriodMonthly
	default:
		return PeriodMonthly
	}
}

// LeaderboardEntry is a derived row: summed distance per user over the
// period window, joined with display attributes. Never persisted.
type LeaderboardEntry struct {
	UserID         uuid.UUID `json:"userId"`
	DisplayName    string    `json:"displayName"`
	ProfilePicture string    `json:"profilePicture"`
	TotalDistance  float64   `json:"totalDistance"`
}

// RankResult is the requester's 1-based position in a period window.
// Rank is nil when the user has no records inside the window.
type RankResult struct {
	Rank          *int    `json:"rank"`
	TotalDistance float64 `json:"totalDistance"`
}
