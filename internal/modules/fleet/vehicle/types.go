package vehicle

import (
	"errors"

	"github.com/driveshare/core/internal/models"
	"github.com/driveshare/core/internal/modules/fleet/claim"
)

// UpdateVehicleDTO is the full-update payload of PUT /vehicles/:id. All
// fields are optional; absent fields are left untouched. Version, when set,
// must match the stored row or the update is rejected as stale.
type UpdateVehicleDTO struct {
	// Pricing
	DailyRate          *float64 `json:"daily_rate"`
	WeeklyRate         *float64 `json:"weekly_rate"`
	MonthlyRate        *float64 `json:"monthly_rate"`
	WeeklyDiscountPct  *float64 `json:"weekly_discount_pct"`
	MonthlyDiscountPct *float64 `json:"monthly_discount_pct"`

	// Availability / trip policy
	AdvanceNoticeHours *int  `json:"advance_notice_hours"`
	MinTripDays        *int  `json:"min_trip_days"`
	MaxTripDays        *int  `json:"max_trip_days"`
	InstantBook        *bool `json:"instant_book"`

	// Delivery
	DeliveryFee         *float64 `json:"delivery_fee"`
	DeliveryRadiusMiles *int     `json:"delivery_radius_miles"`
	AirportDelivery     *bool    `json:"airport_delivery"`
	HomePickup          *bool    `json:"home_pickup"`

	Features *[]string `json:"features"`

	// Registration / title
	VIN               *string             `json:"vin"`
	LicensePlate      *string             `json:"license_plate"`
	RegistrationState *string             `json:"registration_state"`
	TitleStatus       *models.TitleStatus `json:"title_status"`

	Version *int `json:"version"`
}

// SetActiveDTO is the payload of PATCH /vehicles/:id/active.
type SetActiveDTO struct {
	IsActive bool `json:"is_active"`
	Version  *int `json:"version"`
}

// Detail is the composed GET response: the vehicle plus its photos,
// upcoming bookings, availability blocks, reviews and claim-lock status.
type Detail struct {
	models.VehicleModel
	UpcomingBookings []models.BookingModel `json:"upcoming_bookings"`
	ClaimStatus      *claim.LockStatus     `json:"claim_status"`
}

// DeleteOutcome describes what DELETE actually did.
type DeleteOutcome struct {
	HardDeleted bool   `json:"hard_deleted"`
	Message     string `json:"message"`
}

// ClaimBlockedError carries the open claim that blocked a mutation.
type ClaimBlockedError struct {
	Lock *claim.LockStatus
}

func (e *ClaimBlockedError) Error() string {
	return "an open claim blocks this action"
}

var (
	errNotFound        = errors.New("vehicle not found")
	errNoEditCalendar  = errors.New("host may not edit the calendar")
	errRateOutOfBounds = errors.New("daily rate outside host bounds")
	errActiveBookings  = errors.New("vehicle has active bookings")
	errStaleVersion    = errors.New("vehicle was modified by someone else")
)
