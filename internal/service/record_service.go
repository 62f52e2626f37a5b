package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/runclub/runtrack/internal/domain"
	"github.com/runclub/runtrack/internal/repository"
	"github.com/runclub/runtrack/internal/storage"
	"gorm.io/gorm"
)

const (
	statsDailyWindowDays = 30
	statsWeeklyWindow    = 12
)

type RecordService struct {
	recordRepo repository.RecordRepository
	store      storage.ObjectStore
}

func NewRecordService(recordRepo repository.RecordRepository, store storage.ObjectStore) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		store:      store,
	}
}

type CreateRecordInput struct {
	RunDate          time.Time
	Distance         float64
	DurationMinutes  *int
	EvidenceImageURL *string
}

func (s *RecordService) Create(ctx context.Context, userID uuid.UUID, input CreateRecordInput) (*domain.RunningRecord, error) {
	record := &domain.RunningRecord{
		ID:               uuid.New(),
		UserID:           userID,
		RunDate:          input.RunDate,
		Distance:         input.Distance,
		EvidenceImageURL: input.EvidenceImageURL,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if input.DurationMinutes != nil {
		seconds := *input.DurationMinutes * 60
		record.Duration = &seconds
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get returns the record only to its owner: ErrRecordNotFound for unknown
// ids, ErrNotOwner when it belongs to someone else.
func (s *RecordService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.RunningRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	if record.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return record, nil
}

type RecordPage struct {
	Records    []*domain.RunningRecord `json:"records"`
	Count      int64                   `json:"count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"totalPages"`
}

func (s *RecordService) List(ctx context.Context, userID uuid.UUID, opts repository.ListOptions) (*RecordPage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 10
	}

	records, count, err := s.recordRepo.ListByUser(ctx, userID, opts)
	if err != nil {
		return nil, err
	}

	return &RecordPage{
		Records:    records,
		Count:      count,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: int(math.Ceil(float64(count) / float64(opts.Limit))),
	}, nil
}

type UpdateRecordInput struct {
	RunDate          *time.Time
	Distance         *float64
	DurationMinutes  *int
	EvidenceImageURL *string
	RemoveEvidence   bool // nulls out the stored evidence URL
}

// Update applies the supplied fields through a single statement scoped by
// id AND user_id, so an owner check can never race the write.
func (s *RecordService) Update(ctx context.Context, userID, id uuid.UUID, input UpdateRecordInput) (*domain.RunningRecord, error) {
	fields := map[string]any{
		"updated_at": time.Now(),
	}
	if input.RunDate != nil {
		fields["run_date"] = *input.RunDate
	}
	if input.Distance != nil {
		fields["distance"] = *input.Distance
	}
	if input.DurationMinutes != nil {
		fields["duration"] = *input.DurationMinutes * 60
	}
	if input.RemoveEvidence {
		fields["evidence_image_url"] = nil
	} else if input.EvidenceImageURL != nil {
		fields["evidence_image_url"] = *input.EvidenceImageURL
	}

	affected, err := s.recordRepo.UpdateOwned(ctx, id, userID, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, s.classifyMiss(ctx, id)
	}

	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes the record and best-effort deletes its evidence image from
// object storage. Storage failures are logged, never surfaced.
func (s *RecordService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecordNotFound
		}
		return err
	}

	affected, err := s.recordRepo.DeleteOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return s.classifyMiss(ctx, id)
	}

	if record.EvidenceImageURL != nil && s.store != nil {
		if key, ok := s.store.KeyFromURL(*record.EvidenceImageURL); ok {
			if err := s.store.Remove(ctx, key); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to delete evidence image")
			}
		}
	}
	return nil
}

// classifyMiss turns a zero-row mutation into the right sentinel: the record
// either never existed or belongs to another user.
func (s *RecordService) classifyMiss(ctx context.Context, id uuid.UUID) error {
	_, err := s.recordRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrRecordNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrNotOwner
}

func (s *RecordService) Stats(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	total, err := s.recordRepo.TotalDistance(ctx, userID)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -statsDailyWindowDays)
	daily, err := s.recordRepo.DailyDistance(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	weekly, err := s.recordRepo.WeeklyDistance(ctx, userID, statsWeeklyWindow)
	if err != nil {
		return nil, err
	}

	daysCount := len(daily)
	average := 0.0
	if daysCount > 0 {
		average = total / float64(daysCount)
	}

	if daily == nil {
		daily = []domain.DailyDistance{}
	}
	if weekly == nil {
		weekly = []domain.WeeklyDistance{}
	}

	return &domain.UserStats{
		TotalDistance:   total,
		AverageDistance: average,
		DaysCount:       daysCount,
		DailyDistance:   daily,
		WeeklyDistance:  weekly,
	}, nil
}
