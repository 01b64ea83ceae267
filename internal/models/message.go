package models

import "time"

// MessageThreadModel groups messages between a host and a guest, usually
// anchored to a booking.
type MessageThreadModel struct {
	Base
	HostID        string     `json:"host_id"    gorm:"index;not null"`
	VehicleID     string     `json:"vehicle_id" gorm:"index"`
	BookingID     string     `json:"booking_id" gorm:"index"`
	GuestName     string     `json:"guest_name"`
	Subject       string     `json:"subject"`
	LastMessageAt *time.Time `json:"last_message_at" gorm:"index"`
	Archived      bool       `json:"archived"        gorm:"default:false"`

	Messages []MessageModel `json:"messages,omitempty" gorm:"foreignKey:ThreadID"`
}

func (MessageThreadModel) TableName() string { return "message_threads" }

// MessageSender identifies which side of a thread wrote a message.
type MessageSender string

const (
	SenderHost  MessageSender = "host"
	SenderGuest MessageSender = "guest"
)

// MessageModel is one message in a thread. Text is markdown; HTML renders
// are produced on read, never stored.
type MessageModel struct {
	Base
	ThreadID string        `json:"thread_id" gorm:"index;not null"`
	Sender   MessageSender `json:"sender"    gorm:"not null"`
	Text     string        `json:"text"      gorm:"type:text;not null"`
	ReadAt   *time.Time    `json:"read_at"`
}

func (MessageModel) TableName() string { return "messages" }
