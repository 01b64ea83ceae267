package inbox

import (
	"bytes"
	"errors"
	"time"

	"github.com/driveshare/core/internal/models"
	"github.com/driveshare/core/internal/pkg/pagination"
	"github.com/driveshare/core/internal/pkg/response"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

// md renders message bodies. Raw HTML in messages is never passed through.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

func renderMarkdown(text string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return text
	}
	return buf.String()
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// ListThreads returns the host's inbox, most recent conversation first.
func (s *Service) ListThreads(hostID string, includeArchived bool, q pagination.Query) ([]threadResponse, response.Pagination, error) {
	tx := s.db.Model(&models.MessageThreadModel{}).
		Where("host_id = ?", hostID).
		Order("last_message_at DESC")
	if !includeArchived {
		tx = tx.Where("archived = ?", false)
	}

	var threads []models.MessageThreadModel
	pag, err := pagination.Paginate(tx, q, &threads)
	if err != nil {
		return nil, pag, err
	}

	out := make([]threadResponse, len(threads))
	for i := range threads {
		unread, _ := s.threadUnread(threads[i].ID)
		out[i] = toThreadResponse(&threads[i], unread, nil)
	}
	return out, pag, nil
}

// GetThread loads one conversation with all messages rendered.
func (s *Service) GetThread(hostID, id string) (*threadResponse, error) {
	var t models.MessageThreadModel
	err := s.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ? AND host_id = ?", id, hostID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errThreadNotFound
		}
		return nil, err
	}

	unread, _ := s.threadUnread(t.ID)
	resp := toThreadResponse(&t, unread, t.Messages)
	return &resp, nil
}

// SendMessage appends a host reply and bumps the thread's last activity.
func (s *Service) SendMessage(hostID, threadID string, dto *SendMessageDTO) (*messageResponse, error) {
	var t models.MessageThreadModel
	err := s.db.Where("id = ? AND host_id = ?", threadID, hostID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errThreadNotFound
		}
		return nil, err
	}

	m := models.MessageModel{ThreadID: t.ID, Sender: models.SenderHost, Text: dto.Text}
	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return tx.Model(&t).Updates(map[string]interface{}{
			"last_message_at": now,
			"archived":        false,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	resp := toMessageResponse(&m)
	return &resp, nil
}

// MarkThreadRead stamps all unread guest messages in a thread.
func (s *Service) MarkThreadRead(hostID, threadID string) error {
	var t models.MessageThreadModel
	err := s.db.Where("id = ? AND host_id = ?", threadID, hostID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errThreadNotFound
		}
		return err
	}
	return s.db.Model(&models.MessageModel{}).
		Where("thread_id = ? AND sender = ? AND read_at IS NULL", threadID, models.SenderGuest).
		Update("read_at", time.Now()).Error
}

// SetArchived toggles a thread's archived flag.
func (s *Service) SetArchived(hostID, threadID string, archived bool) error {
	res := s.db.Model(&models.MessageThreadModel{}).
		Where("id = ? AND host_id = ?", threadID, hostID).
		Update("archived", archived)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errThreadNotFound
	}
	return nil
}

// UnreadCount returns unread guest messages across the host's inbox.
func (s *Service) UnreadCount(hostID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.MessageModel{}).
		Joins("JOIN message_threads ON message_threads.id = messages.thread_id").
		Where("message_threads.host_id = ? AND messages.sender = ? AND messages.read_at IS NULL",
			hostID, models.SenderGuest).
		Count(&count).Error
	return count, err
}

func (s *Service) threadUnread(threadID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.MessageModel{}).
		Where("thread_id = ? AND sender = ? AND read_at IS NULL", threadID, models.SenderGuest).
		Count(&count).Error
	return count, err
}

func toThreadResponse(t *models.MessageThreadModel, unread int64, msgs []models.MessageModel) threadResponse {
	r := threadResponse{
		ID:            t.ID,
		VehicleID:     t.VehicleID,
		BookingID:     t.BookingID,
		GuestName:     t.GuestName,
		Subject:       t.Subject,
		LastMessageAt: t.LastMessageAt,
		Archived:      t.Archived,
		Unread:        unread,
		Created:       t.CreatedAt,
	}
	for i := range msgs {
		r.Messages = append(r.Messages, toMessageResponse(&msgs[i]))
	}
	return r
}

func toMessageResponse(m *models.MessageModel) messageResponse {
	return messageResponse{
		ID:      m.ID,
		Sender:  m.Sender,
		Text:    m.Text,
		HTML:    renderMarkdown(m.Text),
		ReadAt:  m.ReadAt,
		Created: m.CreatedAt,
	}
}
