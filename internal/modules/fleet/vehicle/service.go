package vehicle

import (
	"errors"

	"github.com/driveshare/core/internal/models"
	"github.com/driveshare/core/internal/modules/fleet/activity"
	"github.com/driveshare/core/internal/modules/fleet/booking"
	"github.com/driveshare/core/internal/modules/fleet/claim"
	"github.com/driveshare/core/internal/pkg/pagination"
	"github.com/driveshare/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Notifier receives vehicle lifecycle events after they commit.
// Implementations must be fire-and-forget; failures never roll back the
// mutation that triggered them.
type Notifier interface {
	VehicleDeactivated(v *models.VehicleModel, actorID, reason string)
	VehicleDeleted(v *models.VehicleModel, actorID string)
}

type Service struct {
	db          *gorm.DB
	activitySvc *activity.Service
	bookingSvc  *booking.Service
	notifier    Notifier
}

func NewService(db *gorm.DB, activitySvc *activity.Service, bookingSvc *booking.Service, notifier Notifier) *Service {
	return &Service{db: db, activitySvc: activitySvc, bookingSvc: bookingSvc, notifier: notifier}
}

// List returns the host's vehicles, newest first.
func (s *Service) List(hostID string, q pagination.Query) ([]models.VehicleModel, response.Pagination, error) {
	tx := s.db.Model(&models.VehicleModel{}).
		Where("host_id = ?", hostID).
		Order("created_at DESC")
	var items []models.VehicleModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// getOwned loads a vehicle and enforces host ownership. Not-owned reads as
// not-found so the API does not leak other hosts' inventory.
func (s *Service) getOwned(hostID, id string) (*models.VehicleModel, error) {
	var v models.VehicleModel
	err := s.db.Where("id = ? AND host_id = ?", id, hostID).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Get composes the vehicle detail: record, photos, availability, reviews,
// upcoming bookings and claim-lock status.
func (s *Service) Get(hostID, id string) (*Detail, error) {
	var v models.VehicleModel
	err := s.db.
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Availability", func(db *gorm.DB) *gorm.DB { return db.Order("start_date ASC") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Where("id = ? AND host_id = ?", id, hostID).
		First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound
		}
		return nil, err
	}

	upcoming, err := s.bookingSvc.UpcomingForVehicle(id, 10)
	if err != nil {
		return nil, err
	}
	lock, err := claim.CheckLock(s.db, id)
	if err != nil {
		return nil, err
	}

	return &Detail{VehicleModel: v, UpcomingBookings: upcoming, ClaimStatus: lock}, nil
}

// Update applies a full field update. Order of gates: ownership, claim lock,
// edit permission, rate bounds, version. No gate failure leaves partial
// state behind; the mutation plus its audit rows commit in one transaction.
func (s *Service) Update(hostID, id string, dto *UpdateVehicleDTO) (*models.VehicleModel, Diff, error) {
	v, err := s.getOwned(hostID, id)
	if err != nil {
		return nil, Diff{}, err
	}

	lock, err := claim.CheckLock(s.db, id)
	if err != nil {
		return nil, Diff{}, err
	}
	if lock.Blocked {
		return nil, Diff{}, &ClaimBlockedError{Lock: lock}
	}

	var host models.HostModel
	if err := s.db.First(&host, "id = ?", hostID).Error; err != nil {
		return nil, Diff{}, err
	}

	diff := DetectChanges(v, dto)
	if !diff.HasChanges() {
		return v, diff, nil
	}

	for _, cs := range diff.Groups {
		if cs.Group == GroupAvailability && !host.CanEditCalendar {
			return nil, Diff{}, errNoEditCalendar
		}
	}

	if dto.DailyRate != nil {
		if host.MinDailyRate != nil && *dto.DailyRate < *host.MinDailyRate {
			return nil, Diff{}, errRateOutOfBounds
		}
		if host.MaxDailyRate != nil && *dto.DailyRate > *host.MaxDailyRate {
			return nil, Diff{}, errRateOutOfBounds
		}
	}

	if dto.Version != nil && *dto.Version != v.Version {
		return nil, Diff{}, errStaleVersion
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := make(map[string]interface{}, len(diff.Updates)+1)
		for k, val := range diff.Updates {
			updates[k] = val
		}
		updates["version"] = v.Version + 1

		res := tx.Model(&models.VehicleModel{}).
			Where("id = ? AND version = ?", v.ID, v.Version).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStaleVersion
		}

		for _, cs := range diff.Groups {
			entry := activity.Entry{
				EntityType: "vehicle",
				EntityID:   v.ID,
				ActorID:    hostID,
				OldValues:  cs.Old,
				NewValues:  cs.New,
			}
			switch cs.Group {
			case GroupPricing:
				entry.Action = models.ActionPricingUpdated
				entry.Description = activity.PricingDescription(cs.Old, cs.New)
			case GroupAvailability:
				entry.Action = models.ActionAvailabilityUpdated
				entry.Description = activity.GroupDescription("Availability settings", cs.New)
			case GroupDelivery:
				entry.Action = models.ActionDeliveryUpdated
				entry.Description = activity.GroupDescription("Delivery options", cs.New)
			case GroupFeatures:
				entry.Action = models.ActionFeaturesUpdated
				entry.Description = activity.FeaturesDescription(diff.FeaturesAdded, diff.FeaturesRemoved)
			case GroupRegistration:
				entry.Action = models.ActionRegistrationUpdated
				entry.Description = activity.GroupDescription("Registration details", cs.New)
			}
			if err := s.activitySvc.Record(tx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, Diff{}, err
	}

	updated, err := s.getOwned(hostID, id)
	if err != nil {
		return nil, Diff{}, err
	}
	return updated, diff, nil
}

// SetActive drives the isActive state machine. Activation requires no open
// claim; deactivation requires no CONFIRMED booking with a future start.
func (s *Service) SetActive(hostID, id string, dto *SetActiveDTO) (*models.VehicleModel, error) {
	v, err := s.getOwned(hostID, id)
	if err != nil {
		return nil, err
	}
	if v.IsActive == dto.IsActive {
		return v, nil
	}
	if dto.Version != nil && *dto.Version != v.Version {
		return nil, errStaleVersion
	}

	if dto.IsActive {
		lock, err := claim.CheckLock(s.db, id)
		if err != nil {
			return nil, err
		}
		if lock.Blocked {
			return nil, &ClaimBlockedError{Lock: lock}
		}
	} else {
		busy, err := s.bookingSvc.HasConfirmedFuture(id)
		if err != nil {
			return nil, err
		}
		if busy {
			return nil, errActiveBookings
		}
	}

	action := models.ActionVehicleDeactivated
	desc := "Vehicle deactivated"
	if dto.IsActive {
		action = models.ActionVehicleActivated
		desc = "Vehicle activated"
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.VehicleModel{}).
			Where("id = ? AND version = ?", v.ID, v.Version).
			Updates(map[string]interface{}{"is_active": dto.IsActive, "version": v.Version + 1})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStaleVersion
		}
		return s.activitySvc.Record(tx, activity.Entry{
			EntityType:  "vehicle",
			EntityID:    v.ID,
			ActorID:     hostID,
			Action:      action,
			Description: desc,
			OldValues:   map[string]interface{}{"is_active": v.IsActive},
			NewValues:   map[string]interface{}{"is_active": dto.IsActive},
		})
	})
	if err != nil {
		return nil, err
	}

	v.IsActive = dto.IsActive
	v.Version++
	if !dto.IsActive && s.notifier != nil {
		s.notifier.VehicleDeactivated(v, hostID, "host_deactivated")
	}
	return v, nil
}

// Delete removes a vehicle. With booking history the delete downgrades to a
// soft delete (deactivation); with no history at all the row and its photo,
// availability and review children are removed, in that order.
func (s *Service) Delete(hostID, id string) (*DeleteOutcome, error) {
	v, err := s.getOwned(hostID, id)
	if err != nil {
		return nil, err
	}

	lock, err := claim.CheckLock(s.db, id)
	if err != nil {
		return nil, err
	}
	if lock.Blocked {
		return nil, &ClaimBlockedError{Lock: lock}
	}

	live, err := s.bookingSvc.HasLive(id)
	if err != nil {
		return nil, err
	}
	if live {
		return nil, errActiveBookings
	}

	history, err := s.bookingSvc.HasHistory(id)
	if err != nil {
		return nil, err
	}

	if history {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.VehicleModel{}).
				Where("id = ? AND version = ?", v.ID, v.Version).
				Updates(map[string]interface{}{"is_active": false, "version": v.Version + 1})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errStaleVersion
			}
			return s.activitySvc.Record(tx, activity.Entry{
				EntityType:  "vehicle",
				EntityID:    v.ID,
				ActorID:     hostID,
				Action:      models.ActionVehicleDeactivated,
				Description: "Vehicle deactivated instead of deleted: booking history must be retained",
				OldValues:   map[string]interface{}{"is_active": v.IsActive},
				NewValues:   map[string]interface{}{"is_active": false, "reason": "soft_delete_has_history"},
			})
		})
		if err != nil {
			return nil, err
		}
		if s.notifier != nil {
			s.notifier.VehicleDeactivated(v, hostID, "soft_delete_has_history")
		}
		return &DeleteOutcome{
			HardDeleted: false,
			Message:     "vehicle has booking history and was deactivated instead of deleted",
		}, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("vehicle_id = ?", v.ID).Delete(&models.VehiclePhotoModel{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("vehicle_id = ?", v.ID).Delete(&models.VehicleAvailabilityModel{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("vehicle_id = ?", v.ID).Delete(&models.VehicleReviewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&models.VehicleModel{}, "id = ?", v.ID).Error; err != nil {
			return err
		}
		return s.activitySvc.Record(tx, activity.Entry{
			EntityType:  "vehicle",
			EntityID:    v.ID,
			ActorID:     hostID,
			Action:      models.ActionVehicleDeleted,
			Description: "Vehicle permanently deleted",
			OldValues: map[string]interface{}{
				"make": v.Make, "model": v.Model, "year": v.Year, "vin": v.VIN,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.VehicleDeleted(v, hostID)
	}
	return &DeleteOutcome{HardDeleted: true, Message: "vehicle deleted"}, nil
}
