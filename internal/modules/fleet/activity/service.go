package activity

import (
	"github.com/driveshare/core/internal/models"
	"github.com/driveshare/core/internal/pkg/pagination"
	"github.com/driveshare/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Entry is one audit event to record.
type Entry struct {
	EntityType  string
	EntityID    string
	ActorID     string
	Action      models.ActivityAction
	Description string
	OldValues   map[string]interface{}
	NewValues   map[string]interface{}
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Record persists one append-only audit row. Pass a transaction handle to
// make the write part of the surrounding unit of work.
func (s *Service) Record(tx *gorm.DB, e Entry) error {
	if tx == nil {
		tx = s.db
	}
	row := models.ActivityLogModel{
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		ActorID:     e.ActorID,
		Action:      e.Action,
		Description: e.Description,
		OldValues:   e.OldValues,
		NewValues:   e.NewValues,
	}
	return tx.Create(&row).Error
}

// ListForEntity returns the audit trail for one entity, newest first.
func (s *Service) ListForEntity(entityType, entityID string, q pagination.Query) ([]models.ActivityLogModel, response.Pagination, error) {
	tx := s.db.Model(&models.ActivityLogModel{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC")
	var items []models.ActivityLogModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}
