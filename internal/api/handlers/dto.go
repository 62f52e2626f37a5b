package handlers

import (
	"encoding/json"
	"time"

	"github.com/runclub/runtrack/internal/domain"
)

// dateLayout is the wire format for calendar dates (run dates, birth dates).
const dateLayout = "2006-01-02"

// optionalString separates an absent JSON field from an explicit null, so
// clients can clear a stored value by sending null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type UserResponse struct {
	ID             string    `json:"id"`
	LineID         string    `json:"lineId"`
	DisplayName    string    `json:"displayName"`
	ProfilePicture string    `json:"profilePicture"`
	PhoneNumber    *string   `json:"phoneNumber,omitempty"`
	BirthDate      *string   `json:"birthDate,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:             user.ID.String(),
		LineID:         user.LineID,
		DisplayName:    user.DisplayName,
		ProfilePicture: user.ProfilePicture,
		PhoneNumber:    user.PhoneNumber,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
	if user.BirthDate != nil {
		birthDate := user.BirthDate.Format(dateLayout)
		resp.BirthDate = &birthDate
	}
	return resp
}

type RecordResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	RunDate          string    `json:"runDate"`
	Distance         float64   `json:"distance"`
	Duration         *int      `json:"duration,omitempty"` // seconds
	EvidenceImageURL *string   `json:"evidenceImageUrl,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toRecordResponse(record *domain.RunningRecord) RecordResponse {
	return RecordResponse{
		ID:               record.ID.String(),
		UserID:           record.UserID.String(),
		RunDate:          record.RunDate.Format(dateLayout),
		Distance:         record.Distance,
		Duration:         record.Duration,
		EvidenceImageURL: record.EvidenceImageURL,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}

func toRecordResponses(records []*domain.RunningRecord) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toRecordResponse(record))
	}
	return out
}
