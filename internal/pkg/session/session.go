package session

import (
	"strings"
	"time"

	"github.com/driveshare/core/internal/models"
	jwtpkg "github.com/driveshare/core/internal/pkg/jwt"
	"gorm.io/gorm"
)

const DefaultTTL = 30 * 24 * time.Hour

// Issue creates a DB session and signs a JWT bound to that session.
func Issue(db *gorm.DB, hostID, ip, ua string, ttl time.Duration) (string, *models.HostSession, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	s := &models.HostSession{
		HostID:    hostID,
		IP:        strings.TrimSpace(ip),
		UA:        strings.TrimSpace(ua),
		ExpiresAt: now.Add(ttl),
	}
	if err := db.Create(s).Error; err != nil {
		return "", nil, err
	}

	token, err := jwtpkg.SignSession(hostID, s.ID, ttl)
	if err != nil {
		_ = db.Delete(s).Error
		return "", nil, err
	}
	return token, s, nil
}

// IsActive reports whether the session exists, is unexpired and unrevoked.
func IsActive(db *gorm.DB, hostID, sessionID string) (bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		// Legacy token without sid.
		return true, nil
	}

	var count int64
	err := db.Model(&models.HostSession{}).
		Where("id = ? AND host_id = ? AND revoked_at IS NULL AND expires_at > ?", sessionID, hostID, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Touch bumps the session's updated_at so idle-time reporting stays fresh.
// Best effort; failures are ignored.
func Touch(db *gorm.DB, hostID, sessionID string) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return
	}
	db.Model(&models.HostSession{}).
		Where("id = ? AND host_id = ?", sessionID, hostID).
		Update("updated_at", time.Now())
}

// Revoke marks a session revoked. Used by logout.
func Revoke(db *gorm.DB, hostID, sessionID string) error {
	now := time.Now()
	return db.Model(&models.HostSession{}).
		Where("id = ? AND host_id = ? AND revoked_at IS NULL", sessionID, hostID).
		Update("revoked_at", now).Error
}

// PruneExpired hard-deletes sessions that expired before cutoff.
func PruneExpired(db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.Unscoped().
		Where("expires_at < ?", cutoff).
		Delete(&models.HostSession{})
	return res.RowsAffected, res.Error
}
