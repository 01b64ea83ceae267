package models

// ActivityAction names an auditable event on an entity.
type ActivityAction string

const (
	ActionPricingUpdated      ActivityAction = "PRICING_UPDATED"
	ActionAvailabilityUpdated ActivityAction = "AVAILABILITY_UPDATED"
	ActionDeliveryUpdated     ActivityAction = "DELIVERY_UPDATED"
	ActionFeaturesUpdated     ActivityAction = "FEATURES_UPDATED"
	ActionRegistrationUpdated ActivityAction = "REGISTRATION_UPDATED"
	ActionVehicleActivated    ActivityAction = "VEHICLE_ACTIVATED"
	ActionVehicleDeactivated  ActivityAction = "VEHICLE_DEACTIVATED"
	ActionVehicleDeleted      ActivityAction = "VEHICLE_DELETED"
	ActionClaimUpdated        ActivityAction = "CLAIM_UPDATED"
)

// ActivityLogModel is an append-only audit record. Rows are created alongside
// every mutation and never modified afterward.
type ActivityLogModel struct {
	Base
	EntityType  string                 `json:"entity_type" gorm:"index;not null;index:idx_entity,composite:1"`
	EntityID    string                 `json:"entity_id"   gorm:"index;not null;index:idx_entity,composite:2"`
	ActorID     string                 `json:"actor_id"    gorm:"index"`
	Action      ActivityAction         `json:"action"      gorm:"index;not null"`
	Description string                 `json:"description" gorm:"type:text"`
	OldValues   map[string]interface{} `json:"old_values,omitempty" gorm:"serializer:json;type:longtext"`
	NewValues   map[string]interface{} `json:"new_values,omitempty" gorm:"serializer:json;type:longtext"`
}

func (ActivityLogModel) TableName() string { return "activity_logs" }
