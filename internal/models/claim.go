package models

import "time"

// ClaimStatus is the lifecycle state of an insurance claim.
type ClaimStatus string

const (
	ClaimPending     ClaimStatus = "PENDING"
	ClaimUnderReview ClaimStatus = "UNDER_REVIEW"
	ClaimApproved    ClaimStatus = "APPROVED"
	ClaimDenied      ClaimStatus = "DENIED"
)

// ClaimType categorizes the incident reported in the FNOL.
type ClaimType string

const (
	ClaimCollision ClaimType = "COLLISION"
	ClaimTheft     ClaimType = "THEFT"
	ClaimVandalism ClaimType = "VANDALISM"
	ClaimWeather   ClaimType = "WEATHER"
	ClaimOther     ClaimType = "OTHER"
)

// IsOpen reports whether a claim in this status blocks vehicle mutation.
func (s ClaimStatus) IsOpen() bool {
	return s == ClaimPending || s == ClaimUnderReview
}

// ClaimModel represents an insurance/incident claim tied to a booking.
type ClaimModel struct {
	Base
	BookingID    string      `json:"booking_id"   gorm:"index;not null"`
	Type         ClaimType   `json:"type"         gorm:"not null"`
	Status       ClaimStatus `json:"status"       gorm:"index;default:PENDING"`
	Description  string      `json:"description"  gorm:"type:text"`
	IncidentDate *time.Time  `json:"incident_date"`
	PhotoURLs    StringArray `json:"photo_urls"   gorm:"type:longtext"`
	ResolvedAt   *time.Time  `json:"resolved_at"`

	Booking *BookingModel `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

func (ClaimModel) TableName() string { return "claims" }
