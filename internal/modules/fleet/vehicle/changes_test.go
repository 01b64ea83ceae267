package vehicle

import (
	"reflect"
	"testing"

	"github.com/driveshare/core/internal/models"
)

func f64p(v float64) *float64 { return &v }
func intp(v int) *int         { return &v }
func boolp(v bool) *bool      { return &v }
func strp(v string) *string   { return &v }

func testVehicle() *models.VehicleModel {
	return &models.VehicleModel{
		Make:               "Toyota",
		Model:              "Camry",
		Year:               2021,
		VIN:                "4T1BF1FK5HU999999",
		LicensePlate:       "ABC123",
		RegistrationState:  "CA",
		TitleStatus:        models.TitleClean,
		DailyRate:          100,
		WeeklyRate:         600,
		MonthlyRate:        2100,
		AdvanceNoticeHours: 24,
		MinTripDays:        1,
		MaxTripDays:        30,
		InstantBook:        false,
		DeliveryFee:        25,
		Features:           models.StringArray{"bluetooth", "backup_camera"},
		IsActive:           true,
		Version:            1,
	}
}

func TestDetectChangesEmptyDTO(t *testing.T) {
	diff := DetectChanges(testVehicle(), &UpdateVehicleDTO{})
	if diff.HasChanges() {
		t.Fatalf("expected no changes, got updates %v", diff.Updates)
	}
	if len(diff.Groups) != 0 {
		t.Fatalf("expected no change-sets, got %d", len(diff.Groups))
	}
}

func TestDetectChangesSameValuesIgnored(t *testing.T) {
	v := testVehicle()
	dto := &UpdateVehicleDTO{
		DailyRate:   f64p(100),
		MinTripDays: intp(1),
		InstantBook: boolp(false),
		VIN:         strp("4T1BF1FK5HU999999"),
		Features:    &[]string{"backup_camera", "bluetooth"},
	}
	diff := DetectChanges(v, dto)
	if diff.HasChanges() {
		t.Fatalf("identical values must not register as changes: %v", diff.Updates)
	}
}

func TestDetectChangesSingleGroup(t *testing.T) {
	v := testVehicle()
	diff := DetectChanges(v, &UpdateVehicleDTO{DailyRate: f64p(120)})

	if len(diff.Groups) != 1 {
		t.Fatalf("expected exactly one change-set, got %d", len(diff.Groups))
	}
	cs := diff.Groups[0]
	if cs.Group != GroupPricing {
		t.Fatalf("expected pricing group, got %s", cs.Group)
	}
	if got := cs.Old["daily_rate"]; got != float64(100) {
		t.Fatalf("old daily_rate = %v, want 100", got)
	}
	if got := cs.New["daily_rate"]; got != float64(120) {
		t.Fatalf("new daily_rate = %v, want 120", got)
	}
	if len(cs.Old) != 1 || len(cs.New) != 1 {
		t.Fatalf("change-set must hold only changed fields, got old=%v new=%v", cs.Old, cs.New)
	}
	if got := diff.Updates["daily_rate"]; got != float64(120) {
		t.Fatalf("updates daily_rate = %v, want 120", got)
	}
}

func TestDetectChangesGroupOrder(t *testing.T) {
	v := testVehicle()
	dto := &UpdateVehicleDTO{
		VIN:         strp("NEWVIN0000000000X"),
		DeliveryFee: f64p(35),
		DailyRate:   f64p(110),
		InstantBook: boolp(true),
	}
	diff := DetectChanges(v, dto)

	want := []FieldGroup{GroupPricing, GroupAvailability, GroupDelivery, GroupRegistration}
	if len(diff.Groups) != len(want) {
		t.Fatalf("expected %d change-sets, got %d", len(want), len(diff.Groups))
	}
	for i, g := range want {
		if diff.Groups[i].Group != g {
			t.Fatalf("group[%d] = %s, want %s", i, diff.Groups[i].Group, g)
		}
	}
}

func TestDetectChangesFeaturesAsSet(t *testing.T) {
	v := testVehicle()
	dto := &UpdateVehicleDTO{
		Features: &[]string{"bluetooth", "heated_seats", "heated_seats", "sunroof"},
	}
	diff := DetectChanges(v, dto)

	if !reflect.DeepEqual(diff.FeaturesAdded, []string{"heated_seats", "sunroof"}) {
		t.Fatalf("added = %v, want [heated_seats sunroof]", diff.FeaturesAdded)
	}
	if !reflect.DeepEqual(diff.FeaturesRemoved, []string{"backup_camera"}) {
		t.Fatalf("removed = %v, want [backup_camera]", diff.FeaturesRemoved)
	}
	if len(diff.Groups) != 1 || diff.Groups[0].Group != GroupFeatures {
		t.Fatalf("expected a single features change-set, got %v", diff.Groups)
	}
}

func TestDetectChangesFeaturesReorderIsNoop(t *testing.T) {
	v := testVehicle()
	dto := &UpdateVehicleDTO{Features: &[]string{"backup_camera", "bluetooth"}}
	diff := DetectChanges(v, dto)
	if diff.HasChanges() {
		t.Fatalf("reordering features must not be a change: %v", diff.Updates)
	}
}

func TestDetectChangesIdempotent(t *testing.T) {
	v := testVehicle()
	dto := &UpdateVehicleDTO{
		DailyRate: f64p(120),
		Features:  &[]string{"bluetooth"},
	}
	first := DetectChanges(v, dto)
	if !first.HasChanges() {
		t.Fatalf("expected changes on first diff")
	}

	// Apply the diff, then diff the same payload again.
	v.DailyRate = 120
	v.Features = models.StringArray{"bluetooth"}
	second := DetectChanges(v, dto)
	if second.HasChanges() {
		t.Fatalf("second diff of the same payload must be empty, got %v", second.Updates)
	}
}

func TestDiffStringSets(t *testing.T) {
	added, removed := diffStringSets([]string{"a", "b"}, []string{"b", "c", "c"})
	if !reflect.DeepEqual(added, []string{"c"}) {
		t.Fatalf("added = %v, want [c]", added)
	}
	if !reflect.DeepEqual(removed, []string{"a"}) {
		t.Fatalf("removed = %v, want [a]", removed)
	}
}
