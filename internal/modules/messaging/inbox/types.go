package inbox

import (
	"errors"
	"time"

	"github.com/driveshare/core/internal/models"
)

// SendMessageDTO posts one host reply into a thread.
type SendMessageDTO struct {
	Text string `json:"text" binding:"required"`
}

type messageResponse struct {
	ID      string               `json:"id"`
	Sender  models.MessageSender `json:"sender"`
	Text    string               `json:"text"`
	HTML    string               `json:"html"`
	ReadAt  *time.Time           `json:"read_at,omitempty"`
	Created time.Time            `json:"created"`
}

type threadResponse struct {
	ID            string            `json:"id"`
	VehicleID     string            `json:"vehicle_id,omitempty"`
	BookingID     string            `json:"booking_id,omitempty"`
	GuestName     string            `json:"guest_name"`
	Subject       string            `json:"subject"`
	LastMessageAt *time.Time        `json:"last_message_at,omitempty"`
	Archived      bool              `json:"archived"`
	Unread        int64             `json:"unread"`
	Created       time.Time         `json:"created"`
	Messages      []messageResponse `json:"messages,omitempty"`
}

var errThreadNotFound = errors.New("thread not found")
