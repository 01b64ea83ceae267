package claim

import (
	"errors"
	"time"

	"github.com/driveshare/core/internal/models"
	"github.com/driveshare/core/internal/modules/fleet/activity"
	"github.com/driveshare/core/internal/pkg/pagination"
	"github.com/driveshare/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Notifier receives claim lifecycle events after they commit. May be nil.
type Notifier interface {
	ClaimStatusChanged(cl *models.ClaimModel, hostID string)
}

type Service struct {
	db          *gorm.DB
	activitySvc *activity.Service
	notifier    Notifier
}

func NewService(db *gorm.DB, activitySvc *activity.Service, notifier Notifier) *Service {
	return &Service{db: db, activitySvc: activitySvc, notifier: notifier}
}

// ListByHost returns claims on any booking of the host's vehicles.
func (s *Service) ListByHost(hostID string, status *models.ClaimStatus, q pagination.Query) ([]models.ClaimModel, response.Pagination, error) {
	tx := s.db.Model(&models.ClaimModel{}).
		Joins("JOIN bookings ON bookings.id = claims.booking_id").
		Joins("JOIN vehicles ON vehicles.id = bookings.vehicle_id").
		Where("vehicles.host_id = ?", hostID).
		Preload("Booking").
		Order("claims.created_at DESC")
	if status != nil {
		tx = tx.Where("claims.status = ?", *status)
	}
	var items []models.ClaimModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// GetByID fetches one claim, enforcing host ownership through the booking's
// vehicle. Returns errClaimNotFound when absent or not owned.
func (s *Service) GetByID(hostID, id string) (*models.ClaimModel, error) {
	var cl models.ClaimModel
	err := s.db.Model(&models.ClaimModel{}).
		Joins("JOIN bookings ON bookings.id = claims.booking_id").
		Joins("JOIN vehicles ON vehicles.id = bookings.vehicle_id").
		Where("claims.id = ? AND vehicles.host_id = ?", id, hostID).
		Preload("Booking").
		First(&cl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errClaimNotFound
		}
		return nil, err
	}
	return &cl, nil
}

// UpdateFNOL edits first-notice-of-loss details. Closed claims reject edits.
func (s *Service) UpdateFNOL(hostID, id string, dto *UpdateFNOLDTO) (*models.ClaimModel, error) {
	cl, err := s.GetByID(hostID, id)
	if err != nil {
		return nil, err
	}
	if !cl.Status.IsOpen() {
		return nil, errClaimClosed
	}

	updates := map[string]interface{}{}
	oldValues := map[string]interface{}{}
	newValues := map[string]interface{}{}

	if dto.Description != nil && *dto.Description != cl.Description {
		oldValues["description"] = cl.Description
		newValues["description"] = *dto.Description
		updates["description"] = *dto.Description
		cl.Description = *dto.Description
	}
	if dto.IncidentDate != nil {
		t, parseErr := time.Parse(time.RFC3339, *dto.IncidentDate)
		if parseErr != nil {
			return nil, parseErr
		}
		if cl.IncidentDate == nil || !cl.IncidentDate.Equal(t) {
			oldValues["incident_date"] = cl.IncidentDate
			newValues["incident_date"] = t
			updates["incident_date"] = t
			cl.IncidentDate = &t
		}
	}
	if dto.PhotoURLs != nil && !samePhotoSet(cl.PhotoURLs, *dto.PhotoURLs) {
		oldValues["photo_urls"] = []string(cl.PhotoURLs)
		newValues["photo_urls"] = *dto.PhotoURLs
		updates["photo_urls"] = models.StringArray(*dto.PhotoURLs)
		cl.PhotoURLs = *dto.PhotoURLs
	}

	if len(updates) == 0 {
		return cl, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ClaimModel{}).Where("id = ?", cl.ID).Updates(updates).Error; err != nil {
			return err
		}
		return s.activitySvc.Record(tx, activity.Entry{
			EntityType:  "claim",
			EntityID:    cl.ID,
			ActorID:     hostID,
			Action:      models.ActionClaimUpdated,
			Description: "FNOL details updated",
			OldValues:   oldValues,
			NewValues:   newValues,
		})
	})
	if err != nil {
		return nil, err
	}
	return cl, nil
}

// samePhotoSet compares photo lists ignoring order and duplicates, so a
// resubmitted identical list does not produce an audit row.
func samePhotoSet(a, b []string) bool {
	inA := make(map[string]struct{}, len(a))
	for _, s := range a {
		inA[s] = struct{}{}
	}
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}
	if len(inA) != len(inB) {
		return false
	}
	for s := range inB {
		if _, ok := inA[s]; !ok {
			return false
		}
	}
	return true
}

// Transition moves a claim through its status state machine.
func (s *Service) Transition(hostID, id string, to models.ClaimStatus, reason string) (*models.ClaimModel, error) {
	cl, err := s.GetByID(hostID, id)
	if err != nil {
		return nil, err
	}
	from := cl.Status
	if err := ApplyTransition(cl, to, time.Now()); err != nil {
		return nil, err
	}
	if from == to {
		return cl, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": cl.Status}
		if cl.ResolvedAt != nil {
			updates["resolved_at"] = cl.ResolvedAt
		}
		if err := tx.Model(&models.ClaimModel{}).Where("id = ?", cl.ID).Updates(updates).Error; err != nil {
			return err
		}
		desc := "Claim status changed: " + string(from) + " → " + string(to)
		if reason != "" {
			desc += " (" + reason + ")"
		}
		return s.activitySvc.Record(tx, activity.Entry{
			EntityType:  "claim",
			EntityID:    cl.ID,
			ActorID:     hostID,
			Action:      models.ActionClaimUpdated,
			Description: desc,
			OldValues:   map[string]interface{}{"status": from},
			NewValues:   map[string]interface{}{"status": to},
		})
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.ClaimStatusChanged(cl, hostID)
	}
	return cl, nil
}
