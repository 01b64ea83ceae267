package models

import "time"

// TitleStatus describes the registration title state of a vehicle.
type TitleStatus string

const (
	TitleClean   TitleStatus = "clean"
	TitleSalvage TitleStatus = "salvage"
	TitleRebuilt TitleStatus = "rebuilt"
)

// VehicleModel represents a listed car owned by exactly one host.
// Mutations go through the vehicle service only; Version is the optimistic
// concurrency token, checked-and-incremented on every write.
type VehicleModel struct {
	Base
	HostID string `json:"host_id" gorm:"index;not null"`

	// Identity
	Make              string      `json:"make"               gorm:"not null"`
	Model             string      `json:"model"              gorm:"not null"`
	Year              int         `json:"year"`
	VIN               string      `json:"vin"                gorm:"uniqueIndex"`
	LicensePlate      string      `json:"license_plate"`
	RegistrationState string      `json:"registration_state"`
	TitleStatus       TitleStatus `json:"title_status"       gorm:"default:clean"`

	// Pricing
	DailyRate          float64 `json:"daily_rate"`
	WeeklyRate         float64 `json:"weekly_rate"`
	MonthlyRate        float64 `json:"monthly_rate"`
	WeeklyDiscountPct  float64 `json:"weekly_discount_pct"`
	MonthlyDiscountPct float64 `json:"monthly_discount_pct"`

	// Availability / trip policy
	AdvanceNoticeHours int  `json:"advance_notice_hours" gorm:"default:24"`
	MinTripDays        int  `json:"min_trip_days"        gorm:"default:1"`
	MaxTripDays        int  `json:"max_trip_days"        gorm:"default:30"`
	InstantBook        bool `json:"instant_book"`

	// Delivery
	DeliveryFee         float64 `json:"delivery_fee"`
	DeliveryRadiusMiles int     `json:"delivery_radius_miles"`
	AirportDelivery     bool    `json:"airport_delivery"`
	HomePickup          bool    `json:"home_pickup"`

	Features StringArray `json:"features" gorm:"type:longtext"`

	IsActive bool `json:"is_active" gorm:"default:true;index"`
	Version  int  `json:"version"   gorm:"default:1"`

	Photos       []VehiclePhotoModel        `json:"photos,omitempty"       gorm:"foreignKey:VehicleID"`
	Availability []VehicleAvailabilityModel `json:"availability,omitempty" gorm:"foreignKey:VehicleID"`
	Reviews      []VehicleReviewModel       `json:"reviews,omitempty"      gorm:"foreignKey:VehicleID"`
}

func (VehicleModel) TableName() string { return "vehicles" }

// VehiclePhotoModel is an ordered photo reference; the binary lives in
// external object storage.
type VehiclePhotoModel struct {
	Base
	VehicleID string `json:"vehicle_id" gorm:"index;not null"`
	URL       string `json:"url"        gorm:"not null"`
	Position  int    `json:"position"   gorm:"default:0"`
	IsPrimary bool   `json:"is_primary" gorm:"default:false"`
}

func (VehiclePhotoModel) TableName() string { return "vehicle_photos" }

// VehicleAvailabilityModel blocks out a date range from booking.
type VehicleAvailabilityModel struct {
	Base
	VehicleID string    `json:"vehicle_id" gorm:"index;not null"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
}

func (VehicleAvailabilityModel) TableName() string { return "vehicle_availability" }

// VehicleReviewModel is a guest review left after a completed trip.
type VehicleReviewModel struct {
	Base
	VehicleID string `json:"vehicle_id" gorm:"index;not null"`
	BookingID string `json:"booking_id" gorm:"index"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"       gorm:"type:text"`
}

func (VehicleReviewModel) TableName() string { return "vehicle_reviews" }
