package host

import (
	"errors"
	"time"

	"github.com/driveshare/core/internal/models"
)

type LoginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileDTO struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Avatar      *string `json:"avatar"`
	CompanyName *string `json:"company_name"`
}

type CreateTokenDTO struct {
	Name      string     `json:"name" binding:"required"`
	ExpiredAt *time.Time `json:"expired_at"`
}

type hostResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Avatar          string     `json:"avatar"`
	CompanyName     string     `json:"company_name"`
	CanEditCalendar bool       `json:"can_edit_calendar"`
	MinDailyRate    *float64   `json:"min_daily_rate,omitempty"`
	MaxDailyRate    *float64   `json:"max_daily_rate,omitempty"`
	LastLoginTime   *time.Time `json:"last_login_time,omitempty"`
	Created         time.Time  `json:"created"`
}

var (
	errHostNotFound  = errors.New("host not found")
	errWrongPassword = errors.New("wrong password")
)

func toResponse(h *models.HostModel) hostResponse {
	return hostResponse{
		ID:              h.ID,
		Email:           h.Email,
		Name:            h.Name,
		Phone:           h.Phone,
		Avatar:          h.Avatar,
		CompanyName:     h.CompanyName,
		CanEditCalendar: h.CanEditCalendar,
		MinDailyRate:    h.MinDailyRate,
		MaxDailyRate:    h.MaxDailyRate,
		LastLoginTime:   h.LastLoginTime,
		Created:         h.CreatedAt,
	}
}
