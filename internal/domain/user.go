package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LineID         string         `json:"lineId" gorm:"uniqueIndex;not null"`
	DisplayName    string         `json:"displayName" gorm:"not null"`
	ProfilePicture string         `json:"profilePicture"`
	PhoneNumber    *string        `json:"phoneNumber,omitempty"`
	BirthDate      *time.Time     `json:"birthDate,omitempty" gorm:"type:date"`
	LineProfile    datatypes.JSON `json:"-"` // raw verify payload from the identity provider
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}
