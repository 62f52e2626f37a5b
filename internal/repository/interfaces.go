package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/runclub/runtrack/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByLineID(ctx context.Context, lineID string) (*domain.User, error)
	// FindOrCreateByLineID inserts the user unless a row with the same
	// line_id already exists, and returns the surviving row. Safe under
	// concurrent logins for the same subject.
	FindOrCreateByLineID(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*domain.User, error)
}

// ListOptions controls pagination and ordering for record listings.
// SortBy must be one of the whitelisted record columns.
type ListOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type RecordRepository interface {
	Create(ctx context.Context, record *domain.RunningRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RunningRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID, opts ListOptions) ([]*domain.RunningRecord, int64, error)
	// UpdateOwned and DeleteOwned mutate in a single statement scoped by
	// id AND user_id; the returned count is rows affected, so callers can
	// tell "missing or not yours" apart from success without a prior read.
	UpdateOwned(ctx context.Context, id, userID uuid.UUID, fields map[string]any) (int64, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error)
	TotalDistance(ctx context.Context, userID uuid.UUID) (float64, error)
	DailyDistance(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.DailyDistance, error)
	WeeklyDistance(ctx context.Context, userID uuid.UUID, weeks int) ([]domain.WeeklyDistance, error)
}

type LeaderboardRepository interface {
	Top(ctx context.Context, period domain.LeaderboardPeriod, limit int) ([]*domain.LeaderboardEntry, error)
	UserRank(ctx context.Context, period domain.LeaderboardPeriod, userID uuid.UUID) (*domain.RankResult, error)
}

type Repositories struct {
	User        UserRepository
	Record      RecordRepository
	Leaderboard LeaderboardRepository
}
