package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/driveshare/core/internal/config"
	"github.com/driveshare/core/internal/models"
	"github.com/driveshare/core/internal/pkg/bark"
	pkgmail "github.com/driveshare/core/internal/pkg/mail"
	"github.com/driveshare/core/internal/pkg/pagination"
	"github.com/driveshare/core/internal/pkg/response"
	"github.com/driveshare/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service fans marketplace events out to operator channels (admin rows, Bark
// push, task queue) and to the host-facing notification bell.
type Service struct {
	db      *gorm.DB
	cfg     *config.AppConfig
	barkSvc *bark.Service
	taskSvc *taskqueue.Service
	logger  *zap.Logger
}

func New(db *gorm.DB, cfg *config.AppConfig, barkSvc *bark.Service, taskSvc *taskqueue.Service, logger *zap.Logger) *Service {
	return &Service{db: db, cfg: cfg, barkSvc: barkSvc, taskSvc: taskSvc, logger: logger.Named("NotifyService")}
}

// VehicleDeactivated records an operator notification for a deactivation.
// Fire and forget: errors are logged, never surfaced to the caller.
func (s *Service) VehicleDeactivated(v *models.VehicleModel, actorID, reason string) {
	s.adminNotify(models.AdminCarDeactivated,
		"Vehicle deactivated",
		fmt.Sprintf("%d %s %s was deactivated (%s)", v.Year, v.Make, v.Model, reason),
		map[string]interface{}{"vehicle_id": v.ID, "host_id": v.HostID, "actor_id": actorID, "reason": reason},
	)
}

// VehicleDeleted records an operator notification for a hard delete.
func (s *Service) VehicleDeleted(v *models.VehicleModel, actorID string) {
	s.adminNotify(models.AdminCarDeleted,
		"Vehicle deleted",
		fmt.Sprintf("%d %s %s (VIN %s) was permanently deleted", v.Year, v.Make, v.Model, v.VIN),
		map[string]interface{}{"vehicle_id": v.ID, "host_id": v.HostID, "actor_id": actorID},
	)
}

// ClaimStatusChanged mails the host and drops a bell notification when a
// claim moves through its state machine.
func (s *Service) ClaimStatusChanged(cl *models.ClaimModel, hostID string) {
	var host models.HostModel
	if err := s.db.First(&host, "id = ?", hostID).Error; err != nil {
		s.logger.Warn("claim notify: host lookup failed", zap.Error(err))
		return
	}

	bookingCode := ""
	vehicleName := "your vehicle"
	if cl.Booking != nil {
		bookingCode = cl.Booking.Code
		var v models.VehicleModel
		if err := s.db.First(&v, "id = ?", cl.Booking.VehicleID).Error; err == nil {
			vehicleName = fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
		}
	}

	s.NotifyHost(hostID,
		"Claim "+string(cl.Status),
		fmt.Sprintf("The %s claim on booking %s is now %s", cl.Type, bookingCode, cl.Status),
		"/claims/"+cl.ID)

	if s.cfg != nil && s.cfg.Mail.Enable && host.Email != "" {
		sender := pkgmail.New(pkgmail.Config{
			Enable:    true,
			Host:      s.cfg.Mail.Host,
			Port:      s.cfg.Mail.Port,
			User:      s.cfg.Mail.User,
			Pass:      s.cfg.Mail.Pass,
			From:      s.cfg.Mail.From,
			ReplyTo:   s.cfg.Mail.ReplyTo,
			UseResend: s.cfg.Mail.ResendKey != "",
			ResendKey: s.cfg.Mail.ResendKey,
		})
		err := sender.SendClaimStatus(host.Email, pkgmail.ClaimStatusData{
			HostName:    host.Name,
			VehicleName: vehicleName,
			BookingCode: bookingCode,
			ClaimType:   string(cl.Type),
			Status:      string(cl.Status),
		})
		if err != nil {
			s.logger.Warn("claim notify: mail send failed", zap.Error(err))
		}
	}
}

// NotifyHost creates one bell notification for a host.
func (s *Service) NotifyHost(hostID, title, message, link string) {
	n := models.HostNotificationModel{HostID: hostID, Title: title, Message: message, Link: link}
	if err := s.db.Create(&n).Error; err != nil {
		s.logger.Warn("host notification write failed", zap.Error(err))
	}
}

// adminNotify writes the operator row, pushes via Bark and leaves a task
// trail in Redis for the ops dashboard.
func (s *Service) adminNotify(typ models.AdminNotificationType, title, message string, meta map[string]interface{}) {
	row := models.AdminNotificationModel{Type: typ, Title: title, Message: message, Meta: meta}
	if err := s.db.Create(&row).Error; err != nil {
		s.logger.Warn("admin notification write failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var task *taskqueue.Task
	if s.taskSvc != nil {
		var err error
		task, err = s.taskSvc.Enqueue(ctx, "admin_notify", map[string]interface{}{
			"notification_id": row.ID,
			"type":            typ,
		}, "", string(typ))
		if err != nil {
			s.logger.Debug("notify task enqueue failed", zap.Error(err))
			task = nil
		} else {
			_ = s.taskSvc.UpdateStatus(ctx, task.ID, taskqueue.TaskRunning, nil, "")
		}
	}

	var pushErr error
	if s.barkSvc != nil {
		if pushErr = s.barkSvc.Push(title, message); pushErr != nil {
			s.logger.Debug("bark push skipped", zap.Error(pushErr))
		}
	}

	if task != nil {
		if pushErr != nil {
			_ = s.taskSvc.UpdateStatus(ctx, task.ID, taskqueue.TaskFailed, nil, pushErr.Error())
		} else {
			result := map[string]interface{}{"notification_id": row.ID, "pushed": s.barkSvc != nil}
			_ = s.taskSvc.UpdateStatus(ctx, task.ID, taskqueue.TaskCompleted, result, "")
		}
	}
}

// ListForHost returns undismissed notifications, newest first.
func (s *Service) ListForHost(hostID string, q pagination.Query) ([]models.HostNotificationModel, response.Pagination, error) {
	tx := s.db.Model(&models.HostNotificationModel{}).
		Where("host_id = ? AND dismissed_at IS NULL", hostID).
		Order("created_at DESC")
	var items []models.HostNotificationModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// UnreadCount returns the badge number for the bell.
func (s *Service) UnreadCount(hostID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.HostNotificationModel{}).
		Where("host_id = ? AND read_at IS NULL AND dismissed_at IS NULL", hostID).
		Count(&count).Error
	return count, err
}

// MarkRead stamps one notification as read.
func (s *Service) MarkRead(hostID, id string) error {
	return s.db.Model(&models.HostNotificationModel{}).
		Where("id = ? AND host_id = ? AND read_at IS NULL", id, hostID).
		Update("read_at", time.Now()).Error
}

// Dismiss hides one notification from the bell.
func (s *Service) Dismiss(hostID, id string) error {
	return s.db.Model(&models.HostNotificationModel{}).
		Where("id = ? AND host_id = ? AND dismissed_at IS NULL", id, hostID).
		Update("dismissed_at", time.Now()).Error
}

// DismissAll clears the bell.
func (s *Service) DismissAll(hostID string) (int64, error) {
	res := s.db.Model(&models.HostNotificationModel{}).
		Where("host_id = ? AND dismissed_at IS NULL", hostID).
		Update("dismissed_at", time.Now())
	return res.RowsAffected, res.Error
}
