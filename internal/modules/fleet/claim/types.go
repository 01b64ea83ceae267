package claim

import (
	"errors"
	"time"

	"github.com/driveshare/core/internal/models"
)

// UpdateFNOLDTO carries the editable first-notice-of-loss details. Only
// claims still in an open state accept edits.
type UpdateFNOLDTO struct {
	Description  *string   `json:"description"`
	IncidentDate *string   `json:"incident_date"` // RFC 3339
	PhotoURLs    *[]string `json:"photo_urls"`
}

// TransitionDTO requests a status change on a claim.
type TransitionDTO struct {
	Status models.ClaimStatus `json:"status" binding:"required"`
	Reason string             `json:"reason"`
}

type claimResponse struct {
	ID           string              `json:"id"`
	BookingID    string              `json:"booking_id"`
	BookingCode  string              `json:"booking_code,omitempty"`
	VehicleID    string              `json:"vehicle_id,omitempty"`
	Type         models.ClaimType    `json:"type"`
	Status       models.ClaimStatus  `json:"status"`
	Description  string              `json:"description"`
	IncidentDate *time.Time          `json:"incident_date,omitempty"`
	PhotoURLs    []string            `json:"photo_urls"`
	ResolvedAt   *time.Time          `json:"resolved_at,omitempty"`
	Created      time.Time           `json:"created"`
	Modified     time.Time           `json:"modified"`
}

var (
	errClaimNotFound = errors.New("claim not found")
	errClaimClosed   = errors.New("claim is no longer editable")
)

func toResponse(c *models.ClaimModel) claimResponse {
	r := claimResponse{
		ID:           c.ID,
		BookingID:    c.BookingID,
		Type:         c.Type,
		Status:       c.Status,
		Description:  c.Description,
		IncidentDate: c.IncidentDate,
		PhotoURLs:    c.PhotoURLs,
		ResolvedAt:   c.ResolvedAt,
		Created:      c.CreatedAt,
		Modified:     c.UpdatedAt,
	}
	if r.PhotoURLs == nil {
		r.PhotoURLs = []string{}
	}
	if c.Booking != nil {
		r.BookingCode = c.Booking.Code
		r.VehicleID = c.Booking.VehicleID
	}
	return r
}
