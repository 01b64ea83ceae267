package app

import (
	"context"
	"fmt"
	"time"

	"github.com/driveshare/core/internal/models"
	"github.com/driveshare/core/internal/modules/fleet/booking"
	pkgcron "github.com/driveshare/core/internal/pkg/cron"
	"github.com/driveshare/core/internal/pkg/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")
	bookingSvc := booking.NewService(db)

	sched.Register(pkgcron.Job{
		Name:        "sweep_completed_bookings",
		Description: "mark confirmed bookings as completed once their end date passes",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := bookingSvc.SweepCompleted(time.Now())
			if err != nil {
				cronLogger.Warn("booking sweep failed", zap.Error(err))
				return err
			}
			if n > 0 {
				cronLogger.Info(fmt.Sprintf("booking sweep completed %d bookings", n))
			}
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "prune_expired_sessions",
		Description: "delete host portal sessions past their expiry",
		Interval:    12 * time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := session.PruneExpired(db, time.Now())
			if err != nil {
				cronLogger.Warn("session prune failed", zap.Error(err))
				return err
			}
			if n > 0 {
				cronLogger.Info(fmt.Sprintf("pruned %d expired sessions", n))
			}
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "cleanup_dismissed_notifications",
		Description: "delete host notifications dismissed more than 90 days ago",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -90)
			result := db.Where("dismissed_at IS NOT NULL AND dismissed_at < ?", cutoff).
				Delete(&models.HostNotificationModel{})
			if result.Error != nil {
				cronLogger.Warn("notification cleanup failed", zap.Error(result.Error))
				return result.Error
			}
			if result.RowsAffected > 0 {
				cronLogger.Info(fmt.Sprintf("deleted %d dismissed notifications", result.RowsAffected))
			}
			return nil
		},
	})
}
