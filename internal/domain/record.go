package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxDistance is the largest accepted single-run distance in kilometers.
const MaxDistance = 200.0

type RunningRecord struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	RunDate          time.Time `json:"runDate" gorm:"type:date;not null;index"`
	Distance         float64   `json:"distance" gorm:"not null"`
	Duration         *int      `json:"duration,omitempty"` // stored in seconds
	EvidenceImageURL *string   `json:"evidenceImageUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ValidDistance reports whether d is inside the accepted (0, 200] range.
func ValidDistance(d float64) bool {
	return d > 0 && d <= MaxDistance
}
