package booking

import (
	"time"

	"github.com/driveshare/core/internal/models"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// UpcomingForVehicle returns CONFIRMED/ACTIVE bookings whose period has not
// ended yet, soonest first.
func (s *Service) UpcomingForVehicle(vehicleID string, limit int) ([]models.BookingModel, error) {
	if limit <= 0 {
		limit = 10
	}
	var items []models.BookingModel
	err := s.db.
		Where("vehicle_id = ? AND status IN ? AND end_date >= ?",
			vehicleID,
			[]models.BookingStatus{models.BookingConfirmed, models.BookingActive},
			time.Now()).
		Order("start_date ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// HasConfirmedFuture reports whether the vehicle has any CONFIRMED booking
// with a future or current start date. Gates deactivation.
func (s *Service) HasConfirmedFuture(vehicleID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.BookingModel{}).
		Where("vehicle_id = ? AND status = ? AND start_date >= ?",
			vehicleID, models.BookingConfirmed, time.Now()).
		Count(&count).Error
	return count > 0, err
}

// HasLive reports whether the vehicle has any booking in CONFIRMED or ACTIVE
// status. Gates deletion.
func (s *Service) HasLive(vehicleID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.BookingModel{}).
		Where("vehicle_id = ? AND status IN ?",
			vehicleID,
			[]models.BookingStatus{models.BookingConfirmed, models.BookingActive}).
		Count(&count).Error
	return count > 0, err
}

// HasHistory reports whether the vehicle has any booking row at all. A
// vehicle with history is soft-deleted rather than removed.
func (s *Service) HasHistory(vehicleID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.BookingModel{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	return count > 0, err
}

// SweepCompleted marks ACTIVE bookings whose period elapsed as COMPLETED.
// Runs on a schedule.
func (s *Service) SweepCompleted(now time.Time) (int64, error) {
	res := s.db.Model(&models.BookingModel{}).
		Where("status = ? AND end_date < ?", models.BookingActive, now).
		Update("status", models.BookingCompleted)
	return res.RowsAffected, res.Error
}
