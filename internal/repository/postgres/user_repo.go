package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/runclub/runtrack/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByLineID(ctx context.Context, lineID string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "line_id = ?", lineID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindOrCreateByLineID(ctx context.Context, user *domain.User) (*domain.User, error) {
	// ON CONFLICT DO NOTHING keeps concurrent first logins from creating
	// two rows for the same subject; the follow-up read returns whichever
	// insert won.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "line_id"}},
			DoNothing: true,
		}).
		Create(user).Error
	if err != nil {
		return nil, err
	}
	return r.GetByLineID(ctx, user.LineID)
}

func (r *userRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (*domain.User, error) {
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}
