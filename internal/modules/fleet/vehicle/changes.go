package vehicle

import (
	"sort"

	"github.com/driveshare/core/internal/models"
)

// FieldGroup names a non-overlapping subset of a vehicle's editable
// attributes, used to scope change detection and audit logging.
type FieldGroup string

const (
	GroupPricing      FieldGroup = "pricing"
	GroupAvailability FieldGroup = "availability"
	GroupDelivery     FieldGroup = "delivery"
	GroupFeatures     FieldGroup = "features"
	GroupRegistration FieldGroup = "registration"
)

// groupOrder fixes the order change-sets are produced and logged in.
var groupOrder = []FieldGroup{
	GroupPricing, GroupAvailability, GroupDelivery, GroupFeatures, GroupRegistration,
}

// fieldSpec binds one editable column to its group, its stored value and its
// proposed value. The table below is the single source of truth consumed by
// both update assembly and change detection.
type fieldSpec struct {
	column   string
	group    FieldGroup
	current  func(v *models.VehicleModel) interface{}
	proposed func(d *UpdateVehicleDTO) (interface{}, bool)
}

func f64(p *float64) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

func i(p *int) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

func b(p *bool) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

func str(p *string) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

var fieldTable = []fieldSpec{
	// Pricing
	{"daily_rate", GroupPricing,
		func(v *models.VehicleModel) interface{} { return v.DailyRate },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return f64(d.DailyRate) }},
	{"weekly_rate", GroupPricing,
		func(v *models.VehicleModel) interface{} { return v.WeeklyRate },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return f64(d.WeeklyRate) }},
	{"monthly_rate", GroupPricing,
		func(v *models.VehicleModel) interface{} { return v.MonthlyRate },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return f64(d.MonthlyRate) }},
	{"weekly_discount_pct", GroupPricing,
		func(v *models.VehicleModel) interface{} { return v.WeeklyDiscountPct },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return f64(d.WeeklyDiscountPct) }},
	{"monthly_discount_pct", GroupPricing,
		func(v *models.VehicleModel) interface{} { return v.MonthlyDiscountPct },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return f64(d.MonthlyDiscountPct) }},

	// Availability / trip policy
	{"advance_notice_hours", GroupAvailability,
		func(v *models.VehicleModel) interface{} { return v.AdvanceNoticeHours },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return i(d.AdvanceNoticeHours) }},
	{"min_trip_days", GroupAvailability,
		func(v *models.VehicleModel) interface{} { return v.MinTripDays },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return i(d.MinTripDays) }},
	{"max_trip_days", GroupAvailability,
		func(v *models.VehicleModel) interface{} { return v.MaxTripDays },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return i(d.MaxTripDays) }},
	{"instant_book", GroupAvailability,
		func(v *models.VehicleModel) interface{} { return v.InstantBook },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return b(d.InstantBook) }},

	// Delivery
	{"delivery_fee", GroupDelivery,
		func(v *models.VehicleModel) interface{} { return v.DeliveryFee },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return f64(d.DeliveryFee) }},
	{"delivery_radius_miles", GroupDelivery,
		func(v *models.VehicleModel) interface{} { return v.DeliveryRadiusMiles },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return i(d.DeliveryRadiusMiles) }},
	{"airport_delivery", GroupDelivery,
		func(v *models.VehicleModel) interface{} { return v.AirportDelivery },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return b(d.AirportDelivery) }},
	{"home_pickup", GroupDelivery,
		func(v *models.VehicleModel) interface{} { return v.HomePickup },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return b(d.HomePickup) }},

	// Features (set-style comparison, see DetectChanges)
	{"features", GroupFeatures,
		func(v *models.VehicleModel) interface{} { return []string(v.Features) },
		func(d *UpdateVehicleDTO) (interface{}, bool) {
			if d.Features == nil {
				return nil, false
			}
			return *d.Features, true
		}},

	// Registration / title
	{"vin", GroupRegistration,
		func(v *models.VehicleModel) interface{} { return v.VIN },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return str(d.VIN) }},
	{"license_plate", GroupRegistration,
		func(v *models.VehicleModel) interface{} { return v.LicensePlate },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return str(d.LicensePlate) }},
	{"registration_state", GroupRegistration,
		func(v *models.VehicleModel) interface{} { return v.RegistrationState },
		func(d *UpdateVehicleDTO) (interface{}, bool) { return str(d.RegistrationState) }},
	{"title_status", GroupRegistration,
		func(v *models.VehicleModel) interface{} { return string(v.TitleStatus) },
		func(d *UpdateVehicleDTO) (interface{}, bool) {
			if d.TitleStatus == nil {
				return nil, false
			}
			return string(*d.TitleStatus), true
		}},
}

// ChangeSet holds the changed fields of one group with old/new values
// restricted to exactly those fields.
type ChangeSet struct {
	Group FieldGroup
	Old   map[string]interface{}
	New   map[string]interface{}
}

// Diff is the result of diffing a proposed update against the stored record.
type Diff struct {
	// Updates maps column name to new value, ready for a GORM Updates call.
	Updates map[string]interface{}
	// Groups lists change-sets in groupOrder, only for groups with changes.
	Groups []ChangeSet

	FeaturesAdded   []string
	FeaturesRemoved []string
}

// HasChanges reports whether any allow-listed field differs.
func (d Diff) HasChanges() bool { return len(d.Updates) > 0 }

// DetectChanges diffs dto against the stored vehicle per field group.
// Comparison is strict except features, which compare as sets.
func DetectChanges(v *models.VehicleModel, dto *UpdateVehicleDTO) Diff {
	diff := Diff{Updates: map[string]interface{}{}}
	byGroup := map[FieldGroup]*ChangeSet{}

	for _, spec := range fieldTable {
		proposed, present := spec.proposed(dto)
		if !present {
			continue
		}
		current := spec.current(v)

		if spec.group == GroupFeatures {
			oldSet, _ := current.([]string)
			newSet, _ := proposed.([]string)
			added, removed := diffStringSets(oldSet, newSet)
			if len(added) == 0 && len(removed) == 0 {
				continue
			}
			diff.FeaturesAdded = added
			diff.FeaturesRemoved = removed
			diff.Updates[spec.column] = models.StringArray(newSet)
			cs := ensureChangeSet(byGroup, spec.group)
			cs.Old[spec.column] = oldSet
			cs.New[spec.column] = newSet
			continue
		}

		if proposed == current {
			continue
		}
		diff.Updates[spec.column] = proposed
		cs := ensureChangeSet(byGroup, spec.group)
		cs.Old[spec.column] = current
		cs.New[spec.column] = proposed
	}

	for _, g := range groupOrder {
		if cs, ok := byGroup[g]; ok {
			diff.Groups = append(diff.Groups, *cs)
		}
	}
	return diff
}

func ensureChangeSet(m map[FieldGroup]*ChangeSet, g FieldGroup) *ChangeSet {
	cs, ok := m[g]
	if !ok {
		cs = &ChangeSet{
			Group: g,
			Old:   map[string]interface{}{},
			New:   map[string]interface{}{},
		}
		m[g] = cs
	}
	return cs
}

// diffStringSets returns elements only in b (added) and only in a (removed),
// sorted for determinism. Duplicates collapse.
func diffStringSets(a, b []string) (added, removed []string) {
	inA := make(map[string]bool, len(a))
	for _, s := range a {
		inA[s] = true
	}
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	for s := range inB {
		if !inA[s] {
			added = append(added, s)
		}
	}
	for s := range inA {
		if !inB[s] {
			removed = append(removed, s)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}
