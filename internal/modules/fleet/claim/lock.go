package claim

import (
	"github.com/driveshare/core/internal/models"
	"gorm.io/gorm"
)

// LockStatus is the result of a claim-lock check on a vehicle. A vehicle
// with any open claim cannot be mutated, activated, or deleted.
type LockStatus struct {
	Blocked     bool               `json:"blocked"`
	ClaimCount  int64              `json:"claim_count"`
	ActiveClaim *models.ClaimModel `json:"active_claim,omitempty"`
}

// CheckLock reports whether any claim on any booking of the vehicle is in an
// open state (PENDING or UNDER_REVIEW). Pure read, no side effects.
func CheckLock(db *gorm.DB, vehicleID string) (*LockStatus, error) {
	openStates := []models.ClaimStatus{models.ClaimPending, models.ClaimUnderReview}

	base := db.Model(&models.ClaimModel{}).
		Joins("JOIN bookings ON bookings.id = claims.booking_id").
		Where("bookings.vehicle_id = ? AND claims.status IN ?", vehicleID, openStates)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return &LockStatus{}, nil
	}

	var latest models.ClaimModel
	err := db.Model(&models.ClaimModel{}).
		Joins("JOIN bookings ON bookings.id = claims.booking_id").
		Where("bookings.vehicle_id = ? AND claims.status IN ?", vehicleID, openStates).
		Order("claims.created_at DESC").
		Preload("Booking").
		First(&latest).Error
	if err != nil {
		return nil, err
	}

	return &LockStatus{Blocked: true, ClaimCount: count, ActiveClaim: &latest}, nil
}
