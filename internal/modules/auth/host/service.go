package host

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/driveshare/core/internal/models"
	sessionpkg "github.com/driveshare/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) GetByID(id string) (*models.HostModel, error) {
	var h models.HostModel
	if err := s.db.First(&h, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errHostNotFound
		}
		return nil, err
	}
	return &h, nil
}

// Login verifies credentials and issues a session-bound token. A missing
// account delays the response the same way a wrong password does, so the
// portal form cannot be used to probe for registered emails.
func (s *Service) Login(email, password, ip, ua string) (string, *models.HostModel, error) {
	var h models.HostModel
	if err := s.db.Where("email = ?", email).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(3 * time.Second)
			return "", nil, errHostNotFound
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.Password), []byte(password)); err != nil {
		time.Sleep(3 * time.Second)
		return "", nil, errWrongPassword
	}

	now := time.Now()
	s.db.Model(&h).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	})
	h.LastLoginTime = &now
	h.LastLoginIP = ip

	token, _, err := sessionpkg.Issue(s.db, h.ID, ip, ua, sessionpkg.DefaultTTL)
	return token, &h, err
}

// Logout revokes the current session.
func (s *Service) Logout(hostID, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return sessionpkg.Revoke(s.db, hostID, sessionID)
}

func (s *Service) UpdateProfile(id string, dto *UpdateProfileDTO) (*models.HostModel, error) {
	h, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
		h.Name = *dto.Name
	}
	if dto.Phone != nil {
		updates["phone"] = *dto.Phone
		h.Phone = *dto.Phone
	}
	if dto.Avatar != nil {
		updates["avatar"] = *dto.Avatar
		h.Avatar = *dto.Avatar
	}
	if dto.CompanyName != nil {
		updates["company_name"] = *dto.CompanyName
		h.CompanyName = *dto.CompanyName
	}
	if len(updates) == 0 {
		return h, nil
	}
	return h, s.db.Model(h).Updates(updates).Error
}

// CreateAPIToken mints a dsk-prefixed token for programmatic access.
func (s *Service) CreateAPIToken(hostID string, dto *CreateTokenDTO) (*models.APIToken, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	t := models.APIToken{
		HostID:    hostID,
		Token:     "dsk" + hex.EncodeToString(buf),
		Name:      dto.Name,
		ExpiredAt: dto.ExpiredAt,
	}
	return &t, s.db.Create(&t).Error
}

func (s *Service) ListAPITokens(hostID string) ([]models.APIToken, error) {
	var tokens []models.APIToken
	err := s.db.Where("host_id = ?", hostID).Order("created_at DESC").Find(&tokens).Error
	return tokens, err
}

func (s *Service) DeleteAPIToken(hostID, id string) error {
	return s.db.Where("id = ? AND host_id = ?", id, hostID).Delete(&models.APIToken{}).Error
}
