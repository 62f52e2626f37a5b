package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/runclub/runtrack/internal/domain"
	"github.com/runclub/runtrack/internal/repository"
	"gorm.io/gorm"
)

// Columns the record listing may be sorted by. Anything else falls back
// to run_date.
var recordSortColumns = map[string]bool{
	"run_date":   true,
	"distance":   true,
	"duration":   true,
	"created_at": true,
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *recordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, record *domain.RunningRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *recordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RunningRecord, error) {
	var record domain.RunningRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *recordRepository) ListByUser(ctx context.Context, userID uuid.UUID, opts repository.ListOptions) ([]*domain.RunningRecord, int64, error) {
	sortBy := opts.SortBy
	if !recordSortColumns[sortBy] {
		sortBy = "run_date"
	}
	order := "desc"
	if opts.SortOrder == "asc" {
		order = "asc"
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.RunningRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	var records []*domain.RunningRecord
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(sortBy + " " + order).
		Limit(opts.Limit).
		Offset((opts.Page - 1) * opts.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, count, nil
}

func (r *recordRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.RunningRecord{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *recordRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.RunningRecord{})
	return res.RowsAffected, res.Error
}

func (r *recordRepository) TotalDistance(ctx context.Context, userID uuid.UUID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&domain.RunningRecord{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(distance), 0)").
		Scan(&total).Error
	return total, err
}

func (r *recordRepository) DailyDistance(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.DailyDistance, error) {
	var rows []domain.DailyDistance
	err := r.db.WithContext(ctx).
		Raw(`
			SELECT run_date, SUM(distance) AS distance
			FROM running_records
			WHERE user_id = ? AND run_date >= ?
			GROUP BY run_date
			ORDER BY run_date ASC`,
			userID, since.Format("2006-01-02")).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recordRepository) WeeklyDistance(ctx context.Context, userID uuid.UUID, weeks int) ([]domain.WeeklyDistance, error) {
	var rows []domain.WeeklyDistance
	err := r.db.WithContext(ctx).
		Raw(`
			SELECT date_trunc('week', run_date) AS week_start, SUM(distance) AS distance
			FROM running_records
			WHERE user_id = ?
			  AND run_date >= date_trunc('week', CURRENT_DATE) - ((? - 1) * INTERVAL '1 week')
			GROUP BY week_start
			ORDER BY week_start ASC`,
			userID, weeks).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
