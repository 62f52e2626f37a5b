package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/runclub/runtrack/internal/domain"
	"gorm.io/gorm"
)

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *leaderboardRepository {
	return &leaderboardRepository{db: db}
}

// periodPredicate returns the WHERE fragment selecting records inside the
// current day, ISO week or calendar month.
func periodPredicate(period domain.LeaderboardPeriod) string {
	switch period {
	case domain.PeriodDaily:
		return "r.run_date = CURRENT_DATE"
	case domain.PeriodWeekly:
		return "date_trunc('week', r.run_date) = date_trunc('week', CURRENT_DATE)"
	default:
		return "date_trunc('month', r.run_date) = date_trunc('month', CURRENT_DATE)"
	}
}

func (r *leaderboardRepository) Top(ctx context.Context, period domain.LeaderboardPeriod, limit int) ([]*domain.LeaderboardEntry, error) {
	var entries []*domain.LeaderboardEntry
	err := r.db.WithContext(ctx).
		Raw(`
			SELECT u.id AS user_id, u.display_name, u.profile_picture,
			       SUM(r.distance) AS total_distance
			FROM running_records r
			JOIN users u ON u.id = r.user_id
			WHERE `+periodPredicate(period)+`
			GROUP BY u.id, u.display_name, u.profile_picture
			ORDER BY total_distance DESC
			LIMIT ?`,
			limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *leaderboardRepository) UserRank(ctx context.Context, period domain.LeaderboardPeriod, userID uuid.UUID) (*domain.RankResult, error) {
	// Single window-function round trip; ties share a rank.
	row := r.db.WithContext(ctx).
		Raw(`
			SELECT rank, total_distance FROM (
				SELECT r.user_id,
				       SUM(r.distance) AS total_distance,
				       RANK() OVER (ORDER BY SUM(r.distance) DESC) AS rank
				FROM running_records r
				WHERE `+periodPredicate(period)+`
				GROUP BY r.user_id
			) ranked
			WHERE user_id = ?`,
			userID).
		Row()

	var (
		rank  int
		total float64
	)
	if err := row.Scan(&rank, &total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.RankResult{Rank: nil, TotalDistance: 0}, nil
		}
		return nil, err
	}
	return &domain.RankResult{Rank: &rank, TotalDistance: total}, nil
}
