package models

import "time"

// AdminNotificationType categorizes operator alerts.
type AdminNotificationType string

const (
	AdminCarDeleted     AdminNotificationType = "CAR_DELETED"
	AdminCarDeactivated AdminNotificationType = "CAR_DEACTIVATED"
	AdminClaimFiled     AdminNotificationType = "CLAIM_FILED"
)

// AdminNotificationModel is a fire-and-forget record alerting operators;
// never read back by the workflow that writes it.
type AdminNotificationModel struct {
	Base
	Type    AdminNotificationType  `json:"type"    gorm:"index;not null"`
	Title   string                 `json:"title"`
	Message string                 `json:"message" gorm:"type:text"`
	Meta    map[string]interface{} `json:"meta,omitempty" gorm:"serializer:json;type:longtext"`
}

func (AdminNotificationModel) TableName() string { return "admin_notifications" }

// HostNotificationModel backs the notification bell; clients poll the list
// and dismiss entries individually or all at once.
type HostNotificationModel struct {
	Base
	HostID      string     `json:"host_id" gorm:"index;not null"`
	Title       string     `json:"title"`
	Message     string     `json:"message" gorm:"type:text"`
	Link        string     `json:"link"`
	ReadAt      *time.Time `json:"read_at"`
	DismissedAt *time.Time `json:"dismissed_at" gorm:"index"`
}

func (HostNotificationModel) TableName() string { return "host_notifications" }
