package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/runclub/runtrack/internal/domain"
	"gorm.io/gorm"
)

// UserBuilder builds test users with sensible defaults
type UserBuilder struct {
	lineID         string
	displayName    string
	profilePicture string
	phoneNumber    *string
	birthDate      *time.Time
}

func NewUserBuilder() *UserBuilder {
	id := uuid.New().String()[:8]
	return &UserBuilder{
		lineID:      "U" + id,
		displayName: "runner_" + id,
	}
}

func (b *UserBuilder) WithLineID(lineID string) *UserBuilder {
	b.lineID = lineID
	return b
}

func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

func (b *UserBuilder) WithProfilePicture(url string) *UserBuilder {
	b.profilePicture = url
	return b
}

func (b *UserBuilder) WithPhoneNumber(phone string) *UserBuilder {
	b.phoneNumber = &phone
	return b
}

func (b *UserBuilder) WithBirthDate(birthDate time.Time) *UserBuilder {
	b.birthDate = &birthDate
	return b
}

func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:             uuid.New(),
		LineID:         b.lineID,
		DisplayName:    b.displayName,
		ProfilePicture: b.profilePicture,
		PhoneNumber:    b.phoneNumber,
		BirthDate:      b.birthDate,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// RecordBuilder builds running records with sensible defaults
type RecordBuilder struct {
	userID   uuid.UUID
	runDate  time.Time
	distance float64
	duration *int
	evidence *string
}

func NewRecordBuilder(userID uuid.UUID) *RecordBuilder {
	return &RecordBuilder{
		userID:   userID,
		runDate:  time.Now(),
		distance: 5,
	}
}

func (b *RecordBuilder) WithRunDate(runDate time.Time) *RecordBuilder {
	b.runDate = runDate
	return b
}

func (b *RecordBuilder) WithDistance(distance float64) *RecordBuilder {
	b.distance = distance
	return b
}

// WithDurationSeconds sets the stored duration (seconds, not minutes).
func (b *RecordBuilder) WithDurationSeconds(seconds int) *RecordBuilder {
	b.duration = &seconds
	return b
}

func (b *RecordBuilder) WithEvidenceURL(url string) *RecordBuilder {
	b.evidence = &url
	return b
}

func (b *RecordBuilder) Build(t *testing.T, db *gorm.DB) *domain.RunningRecord {
	t.Helper()

	record := &domain.RunningRecord{
		ID:               uuid.New(),
		UserID:           b.userID,
		RunDate:          b.runDate,
		Distance:         b.distance,
		Duration:         b.duration,
		EvidenceImageURL: b.evidence,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test record: %v", err)
	}
	return record
}

// BuildMany inserts n records, one per day counting back from runDate.
func (b *RecordBuilder) BuildMany(t *testing.T, db *gorm.DB, n int) []*domain.RunningRecord {
	t.Helper()

	records := make([]*domain.RunningRecord, 0, n)
	for i := 0; i < n; i++ {
		record := &domain.RunningRecord{
			ID:        uuid.New(),
			UserID:    b.userID,
			RunDate:   b.runDate.AddDate(0, 0, -i),
			Distance:  b.distance,
			Duration:  b.duration,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("failed to create test record %d: %v", i, err)
		}
		records = append(records, record)
	}
	return records
}
