package claim

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
		&models.BookingModel{},
		&models.ClaimModel{},
		&models.ActivityLogModel{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedClaim(t *testing.T, db *gorm.DB) (hostID string, cl *models.ClaimModel) {
	t.Helper()
	h := &models.HostModel{Email: "pat@example.com", Name: "Pat", Password: "x"}
	if err := db.Create(h).Error; err != nil {
		t.Fatalf("seed host: %v", err)
	}
	v := &models.VehicleModel{HostID: h.ID, Make: "Honda", Model: "Civic", Year: 2020, VIN: "2HGFC2F59LH123456", DailyRate: 80}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	past := time.Now().AddDate(0, 0, -14)
	b := &models.BookingModel{Code: "BK-2001", VehicleID: v.ID, StartDate: past, EndDate: past.AddDate(0, 0, 4), Status: models.BookingCompleted}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	cl = &models.ClaimModel{
		BookingID:   b.ID,
		Type:        models.ClaimCollision,
		Status:      models.ClaimPending,
		Description: "Rear bumper damage",
		PhotoURLs:   models.StringArray{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	}
	if err := db.Create(cl).Error; err != nil {
		t.Fatalf("seed claim: %v", err)
	}
	return h.ID, cl
}

func claimActivityCount(t *testing.T, db *gorm.DB, claimID string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.ActivityLogModel{}).
		Where("entity_type = ? AND entity_id = ?", "claim", claimID).
		Count(&n).Error; err != nil {
		t.Fatalf("count activity: %v", err)
	}
	return n
}

func TestUpdateFNOLIdenticalPhotosNoAudit(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, activity.NewService(db), nil)
	hostID, cl := seedClaim(t, db)

	// Same list, different order: the resubmission must be a no-op.
	photos := []string{"https://cdn.example.com/b.jpg", "https://cdn.example.com/a.jpg"}
	got, err := svc.UpdateFNOL(hostID, cl.ID, &UpdateFNOLDTO{PhotoURLs: &photos})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ID != cl.ID {
		t.Fatalf("got claim %s, want %s", got.ID, cl.ID)
	}
	if n := claimActivityCount(t, db, cl.ID); n != 0 {
		t.Fatalf("activity rows = %d, want 0 for an unchanged photo list", n)
	}

	var reloaded models.ClaimModel
	if err := db.First(&reloaded, "id = ?", cl.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.PhotoURLs) != 2 {
		t.Fatalf("photo_urls = %v", reloaded.PhotoURLs)
	}
}

func TestUpdateFNOLChangedPhotosAudited(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, activity.NewService(db), nil)
	hostID, cl := seedClaim(t, db)

	photos := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/c.jpg"}
	got, err := svc.UpdateFNOL(hostID, cl.ID, &UpdateFNOLDTO{PhotoURLs: &photos})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got.PhotoURLs) != 2 || got.PhotoURLs[1] != "https://cdn.example.com/c.jpg" {
		t.Fatalf("photo_urls = %v", got.PhotoURLs)
	}
	if n := claimActivityCount(t, db, cl.ID); n != 1 {
		t.Fatalf("activity rows = %d, want 1", n)
	}
}

func TestUpdateFNOLUnchangedDescriptionNoAudit(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, activity.NewService(db), nil)
	hostID, cl := seedClaim(t, db)

	desc := cl.Description
	if _, err := svc.UpdateFNOL(hostID, cl.ID, &UpdateFNOLDTO{Description: &desc}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if n := claimActivityCount(t, db, cl.ID); n != 0 {
		t.Fatalf("activity rows = %d, want 0", n)
	}
}

func TestUpdateFNOLClosedClaimRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, activity.NewService(db), nil)
	hostID, cl := seedClaim(t, db)
	if err := db.Model(cl).Update("status", models.ClaimApproved).Error; err != nil {
		t.Fatalf("close claim: %v", err)
	}

	desc := "tampered"
	_, err := svc.UpdateFNOL(hostID, cl.ID, &UpdateFNOLDTO{Description: &desc})
	if !errors.Is(err, errClaimClosed) {
		t.Fatalf("err = %v, want errClaimClosed", err)
	}
}
