package models

import "time"

// HostModel represents a vehicle owner/lister in the marketplace.
type HostModel struct {
	Base
	Email           string     `json:"email"            gorm:"uniqueIndex;not null"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Avatar          string     `json:"avatar"`
	Password        string     `json:"-"                gorm:"not null"`
	CompanyName     string     `json:"company_name"`
	CanEditCalendar bool       `json:"can_edit_calendar" gorm:"default:true"`
	MinDailyRate    *float64   `json:"min_daily_rate"`
	MaxDailyRate    *float64   `json:"max_daily_rate"`
	LastLoginTime   *time.Time `json:"last_login_time"`
	LastLoginIP     string     `json:"last_login_ip"`
	APITokens       []APIToken `json:"api_tokens,omitempty" gorm:"foreignKey:HostID"`
}

func (HostModel) TableName() string { return "hosts" }

// HostSession is a DB-backed login session; JWTs are bound to a session id.
type HostSession struct {
	Base
	HostID    string     `json:"host_id"    gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"         gorm:"type:varchar(512)"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index"`
	RevokedAt *time.Time `json:"revoked_at"`
}

func (HostSession) TableName() string { return "host_sessions" }

// APIToken represents a personal API token for programmatic access.
type APIToken struct {
	Base
	HostID    string     `json:"-"          gorm:"index;not null"`
	Token     string     `json:"token"      gorm:"uniqueIndex;not null"`
	Name      string     `json:"name"`
	ExpiredAt *time.Time `json:"expired_at"`
}

func (APIToken) TableName() string { return "api_tokens" }
