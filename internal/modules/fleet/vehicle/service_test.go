package vehicle

import (
	"errors"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/driveshare/core/internal/models"
	"github.com/driveshare/core/internal/modules/fleet/activity"
	"github.com/driveshare/core/internal/modules/fleet/booking"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.HostModel{},
		&models.VehicleModel{},
		&models.VehiclePhotoModel{},
		&models.VehicleAvailabilityModel{},
		&models.VehicleReviewModel{},
		&models.BookingModel{},
		&models.ClaimModel{},
		&models.ActivityLogModel{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type recordingNotifier struct {
	deactivatedReasons []string
	deletedIDs         []string
}

func (n *recordingNotifier) VehicleDeactivated(v *models.VehicleModel, actorID, reason string) {
	n.deactivatedReasons = append(n.deactivatedReasons, reason)
}

func (n *recordingNotifier) VehicleDeleted(v *models.VehicleModel, actorID string) {
	n.deletedIDs = append(n.deletedIDs, v.ID)
}

func newServiceForTest(t *testing.T) (*Service, *gorm.DB, *recordingNotifier) {
	t.Helper()
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewService(db, activity.NewService(db), booking.NewService(db), notifier)
	return svc, db, notifier
}

func seedHost(t *testing.T, db *gorm.DB) *models.HostModel {
	t.Helper()
	h := &models.HostModel{
		Email:           "pat@example.com",
		Name:            "Pat",
		Password:        "x",
		CanEditCalendar: true,
		MinDailyRate:    f64p(50),
		MaxDailyRate:    f64p(200),
	}
	if err := db.Create(h).Error; err != nil {
		t.Fatalf("seed host: %v", err)
	}
	return h
}

func seedVehicle(t *testing.T, db *gorm.DB, hostID string) *models.VehicleModel {
	t.Helper()
	v := &models.VehicleModel{
		HostID:    hostID,
		Make:      "Toyota",
		Model:     "Camry",
		Year:      2021,
		VIN:       "4T1BF1FK5HU123456",
		DailyRate: 100,
		Features:  models.StringArray{"bluetooth"},
		IsActive:  true,
		Version:   1,
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return v
}

func seedBooking(t *testing.T, db *gorm.DB, vehicleID, code string, status models.BookingStatus, start, end time.Time) *models.BookingModel {
	t.Helper()
	b := &models.BookingModel{
		Code:      code,
		VehicleID: vehicleID,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b
}

func seedOpenClaim(t *testing.T, db *gorm.DB, bookingID string) *models.ClaimModel {
	t.Helper()
	cl := &models.ClaimModel{
		BookingID: bookingID,
		Type:      models.ClaimCollision,
		Status:    models.ClaimPending,
	}
	if err := db.Create(cl).Error; err != nil {
		t.Fatalf("seed claim: %v", err)
	}
	return cl
}

func activityCount(t *testing.T, db *gorm.DB, entityID string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.ActivityLogModel{}).
		Where("entity_type = ? AND entity_id = ?", "vehicle", entityID).
		Count(&n).Error; err != nil {
		t.Fatalf("count activity: %v", err)
	}
	return n
}

func TestUpdateBlockedByOpenClaim(t *testing.T) {
	svc, db, _ := newServiceForTest(t)
	h := seedHost(t, db)
	v := seedVehicle(t, db, h.ID)
	past := time.Now().AddDate(0, 0, -10)
	b := seedBooking(t, db, v.ID, "BK-1001", models.BookingCompleted, past, past.AddDate(0, 0, 3))
	seedOpenClaim(t, db, b.ID)

	_, _, err := svc.Update(h.ID, v.ID, &UpdateVehicleDTO{DailyRate: f64p(150)})
	var blocked *ClaimBlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("err = %v, want ClaimBlockedError", err)
	}
	if blocked.Lock == nil || !blocked.Lock.Blocked || blocked.Lock.ClaimCount != 1 {
		t.Fatalf("lock = %+v", blocked.Lock)
	}

	var got models.VehicleModel
	if err := db.First(&got, "id = ?", v.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.DailyRate != 100 || got.Version != 1 {
		t.Fatalf("record changed behind a claim lock: rate=%v version=%d", got.DailyRate, got.Version)
	}
	if n := activityCount(t, db, v.ID); n != 0 {
		t.Fatalf("activity rows = %d, want 0", n)
	}
}

func TestUpdateRateOutOfBounds(t *testing.T) {
	svc, db, _ := newServiceForTest(t)
	h := seedHost(t, db)
	v := seedVehicle(t, db, h.ID)

	for _, rate := range []float64{10, 500} {
		_, _, err := svc.Update(h.ID, v.ID, &UpdateVehicleDTO{DailyRate: f64p(rate)})
		if !errors.Is(err, errRateOutOfBounds) {
			t.Fatalf("rate %v: err = %v, want errRateOutOfBounds", rate, err)
		}
	}

	var got models.VehicleModel
	db.First(&got, "id = ?", v.ID)
	if got.DailyRate != 100 || got.Version != 1 {
		t.Fatalf("record changed: rate=%v version=%d", got.DailyRate, got.Version)
	}
}

func TestUpdateOneActivityRowPerGroup(t *testing.T) {
	svc, db, _ := newServiceForTest(t)
	h := seedHost(t, db)
	v := seedVehicle(t, db, h.ID)

	updated, diff, err := svc.Update(h.ID, v.ID, &UpdateVehicleDTO{
		DailyRate:   f64p(150),
		InstantBook: boolp(true),
		VIN:         strp("4T1BF1FK5HU999999"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(diff.Groups) != 3 {
		t.Fatalf("changed groups = %d, want 3", len(diff.Groups))
	}
	if updated.Version != 2 {
		t.Fatalf("version = %d, want 2", updated.Version)
	}

	var rows []models.ActivityLogModel
	if err := db.Where("entity_type = ? AND entity_id = ?", "vehicle", v.ID).Find(&rows).Error; err != nil {
		t.Fatalf("load activity: %v", err)
	}
	seen := map[models.ActivityAction]int{}
	for _, row := range rows {
		seen[row.Action]++
	}
	want := []models.ActivityAction{
		models.ActionPricingUpdated,
		models.ActionAvailabilityUpdated,
		models.ActionRegistrationUpdated,
	}
	if len(rows) != len(want) {
		t.Fatalf("activity rows = %d, want %d", len(rows), len(want))
	}
	for _, action := range want {
		if seen[action] != 1 {
			t.Fatalf("action %s recorded %d times, want 1", action, seen[action])
		}
	}
}

func TestUpdateStaleVersion(t *testing.T) {
	svc, db, _ := newServiceForTest(t)
	h := seedHost(t, db)
	v := seedVehicle(t, db, h.ID)

	_, _, err := svc.Update(h.ID, v.ID, &UpdateVehicleDTO{
		DailyRate: f64p(150),
		Version:   intp(5),
	})
	if !errors.Is(err, errStaleVersion) {
		t.Fatalf("err = %v, want errStaleVersion", err)
	}

	var got models.VehicleModel
	db.First(&got, "id = ?", v.ID)
	if got.DailyRate != 100 || got.Version != 1 {
		t.Fatalf("record changed: rate=%v version=%d", got.DailyRate, got.Version)
	}
}

func TestActivateBlockedByOpenClaim(t *testing.T) {
	svc, db, _ := newServiceForTest(t)
	h := seedHost(t, db)
	v := seedVehicle(t, db, h.ID)
	db.Model(v).Updates(map[string]interface{}{"is_active": false})
	past := time.Now().AddDate(0, 0, -10)
	b := seedBooking(t, db, v.ID, "BK-1002", models.BookingCompleted, past, past.AddDate(0, 0, 3))
	seedOpenClaim(t, db, b.ID)

	_, err := svc.SetActive(h.ID, v.ID, &SetActiveDTO{IsActive: true})
	var blocked *ClaimBlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("err = %v, want ClaimBlockedError", err)
	}

	var got models.VehicleModel
	db.First(&got, "id = ?", v.ID)
	if got.IsActive {
		t.Fatal("vehicle activated behind a claim lock")
	}
}

func TestDeactivateBlockedByConfirmedFutureBooking(t *testing.T) {
	svc, db, _ := newServiceForTest(t)
	h := seedHost(t, db)
	v := seedVehicle(t, db, h.ID)
	start := time.Now().AddDate(0, 0, 7)
	seedBooking(t, db, v.ID, "BK-1003", models.BookingConfirmed, start, start.AddDate(0, 0, 3))

	_, err := svc.SetActive(h.ID, v.ID, &SetActiveDTO{IsActive: false})
	if !errors.Is(err, errActiveBookings) {
		t.Fatalf("err = %v, want errActiveBookings", err)
	}

	var got models.VehicleModel
	db.First(&got, "id = ?", v.ID)
	if !got.IsActive {
		t.Fatal("vehicle deactivated despite a confirmed future booking")
	}
}

func TestDeleteBlockedByOpenClaim(t *testing.T) {
	svc, db, _ := newServiceForTest(t)
	h := seedHost(t, db)
	v := seedVehicle(t, db, h.ID)
	past := time.Now().AddDate(0, 0, -10)
	b := seedBooking(t, db, v.ID, "BK-1004", models.BookingCompleted, past, past.AddDate(0, 0, 3))
	seedOpenClaim(t, db, b.ID)

	_, err := svc.Delete(h.ID, v.ID)
	var blocked *ClaimBlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("err = %v, want ClaimBlockedError", err)
	}

	var got models.VehicleModel
	if err := db.First(&got, "id = ?", v.ID).Error; err != nil {
		t.Fatalf("vehicle gone after blocked delete: %v", err)
	}
}

func TestDeleteSoftensWithBookingHistory(t *testing.T) {
	svc, db, notifier := newServiceForTest(t)
	h := seedHost(t, db)
	v := seedVehicle(t, db, h.ID)
	past := time.Now().AddDate(0, 0, -30)
	seedBooking(t, db, v.ID, "BK-1005", models.BookingCompleted, past, past.AddDate(0, 0, 3))

	outcome, err := svc.Delete(h.ID, v.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if outcome.HardDeleted {
		t.Fatal("delete with booking history must downgrade to deactivation")
	}

	var got models.VehicleModel
	if err := db.First(&got, "id = ?", v.ID).Error; err != nil {
		t.Fatalf("vehicle row must survive a soft delete: %v", err)
	}
	if got.IsActive || got.Version != 2 {
		t.Fatalf("is_active=%v version=%d after soft delete", got.IsActive, got.Version)
	}

	var row models.ActivityLogModel
	err = db.Where("entity_id = ? AND action = ?", v.ID, models.ActionVehicleDeactivated).First(&row).Error
	if err != nil {
		t.Fatalf("missing deactivation audit row: %v", err)
	}
	if reason, _ := row.NewValues["reason"].(string); reason != "soft_delete_has_history" {
		t.Fatalf("audit reason = %v", row.NewValues["reason"])
	}

	if len(notifier.deactivatedReasons) != 1 || notifier.deactivatedReasons[0] != "soft_delete_has_history" {
		t.Fatalf("notifier reasons = %v", notifier.deactivatedReasons)
	}
	if len(notifier.deletedIDs) != 0 {
		t.Fatalf("hard-delete notification sent for a soft delete: %v", notifier.deletedIDs)
	}
}

func TestDeleteHardWithoutHistory(t *testing.T) {
	svc, db, notifier := newServiceForTest(t)
	h := seedHost(t, db)
	v := seedVehicle(t, db, h.ID)
	photo := models.VehiclePhotoModel{VehicleID: v.ID, URL: "https://cdn.example.com/p1.jpg"}
	if err := db.Create(&photo).Error; err != nil {
		t.Fatalf("seed photo: %v", err)
	}

	outcome, err := svc.Delete(h.ID, v.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !outcome.HardDeleted {
		t.Fatal("delete without history must remove the row")
	}

	var n int64
	db.Unscoped().Model(&models.VehicleModel{}).Where("id = ?", v.ID).Count(&n)
	if n != 0 {
		t.Fatal("vehicle row survived a hard delete")
	}
	db.Unscoped().Model(&models.VehiclePhotoModel{}).Where("vehicle_id = ?", v.ID).Count(&n)
	if n != 0 {
		t.Fatal("photo rows survived a hard delete")
	}

	var row models.ActivityLogModel
	if err := db.Where("entity_id = ? AND action = ?", v.ID, models.ActionVehicleDeleted).First(&row).Error; err != nil {
		t.Fatalf("missing deletion audit row: %v", err)
	}

	if len(notifier.deletedIDs) != 1 || notifier.deletedIDs[0] != v.ID {
		t.Fatalf("notifier deletions = %v", notifier.deletedIDs)
	}
}
