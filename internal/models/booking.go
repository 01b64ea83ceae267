package models

import "time"

// BookingStatus is the lifecycle state of a rental booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingActive    BookingStatus = "ACTIVE"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// BookingModel links a vehicle to a rental period.
type BookingModel struct {
	Base
	Code      string        `json:"code"       gorm:"uniqueIndex;not null"`
	VehicleID string        `json:"vehicle_id" gorm:"index;not null"`
	GuestName string        `json:"guest_name"`
	StartDate time.Time     `json:"start_date" gorm:"index"`
	EndDate   time.Time     `json:"end_date"   gorm:"index"`
	Status    BookingStatus `json:"status"     gorm:"index;default:CONFIRMED"`
	TotalUSD  float64       `json:"total_usd"`
}

func (BookingModel) TableName() string { return "bookings" }
